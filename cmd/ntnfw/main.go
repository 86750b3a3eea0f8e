// Command ntnfw updates the firmware of an NTN dongle MCU: it unlocks the
// device over Modbus RTU, drops it into bootloader mode, and hands the
// serial port to the pymdfu transfer tool.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/moffa90/go-ntnfw/update"
)

// zeroLogger adapts zerolog to the Logger interfaces of the library
// packages.
type zeroLogger struct {
	log zerolog.Logger
}

func (l zeroLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l zeroLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Fields(keysAndValues).Msg(msg)
}

func (l zeroLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Fields(keysAndValues).Msg(msg)
}

func main() {
	image := flag.String("image", "", "firmware image file path")
	port := flag.String("port", "/dev/ttyUSB0", "device port, default is /dev/ttyUSB0")
	devID := flag.Int("dev_id", 1, "device Modbus ID, default is 1")
	retry := flag.Bool("retry", false, "use when the MCU is already in bootloader mode")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	logger := zeroLogger{log: log.Logger}

	logger.Info("starting firmware update",
		"image", *image,
		"port", *port,
		"dev_id", *devID,
		"retry", *retry,
	)

	if *devID < 1 || *devID > 247 {
		log.Error().Int("dev_id", *devID).Msg("device Modbus ID must be in 1..247")
		os.Exit(1)
	}

	o := update.New(update.Attempt{
		Image:    *image,
		Port:     *port,
		DeviceID: byte(*devID),
		Retry:    *retry,
	}, update.WithLogger(logger))

	if err := o.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("firmware update failed")
		os.Exit(1)
	}
}
