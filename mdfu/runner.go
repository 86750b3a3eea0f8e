package mdfu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Runner invokes the transfer tool as a child process and relays its output.
type Runner struct {
	config Config
}

// NewRunner creates a Runner.
//
// Example:
//
//	runner := mdfu.NewRunner(mdfu.WithLogger(myLogger))
//	code, err := runner.Run(ctx, "/dev/ttyUSB0", 115200, "fw.img")
func NewRunner(opts ...Option) *Runner {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runner{config: cfg}
}

// Run launches the transfer of image over the serial port at baud and
// blocks until the process exits. stderr is merged into stdout and every
// produced line is forwarded to the logger synchronously, in arrival order.
// The process's exit status is returned once the stream is exhausted; a
// non-nil error means the process could not be started or its output could
// not be read, not that the transfer itself failed.
func (r *Runner) Run(ctx context.Context, port string, baud int, image string) (int, error) {
	inv := r.config.Resolve(ctx)
	args := transferArgs(inv, port, baud, image, r.config.Verbosity)
	r.logInfo("invoking transfer tool", "path", inv.Path, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, inv.Path, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", inv.Path, err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		r.logInfo(scanner.Text())
	}
	scanErr := scanner.Err()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("wait for %s: %w", inv.Path, err)
	}
	if scanErr != nil {
		return 0, fmt.Errorf("read transfer output: %w", scanErr)
	}
	return 0, nil
}

// transferArgs assembles the full argument list for the tool's update
// subcommand over a serial transport.
func transferArgs(inv Invocation, port string, baud int, image, verbosity string) []string {
	args := make([]string, 0, len(inv.Args)+11)
	args = append(args, inv.Args...)
	args = append(args,
		"update",
		"--tool", "serial",
		"--port", port,
		"--baudrate", strconv.Itoa(baud),
		"--image", image,
		"-v", verbosity,
	)
	return args
}

// logInfo logs an info message if a logger is configured.
func (r *Runner) logInfo(msg string, keysAndValues ...interface{}) {
	if r.config.Logger != nil {
		r.config.Logger.Info(msg, keysAndValues...)
	}
}
