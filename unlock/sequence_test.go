package unlock

import (
	"context"
	"errors"
	"testing"

	"github.com/moffa90/go-ntnfw/device"
)

// writeRecord is one write issued to the fake controller.
type writeRecord struct {
	addr   uint16
	values []uint16
}

// fakeWriter simulates the device controller. Writes to addresses listed in
// reject report unconfirmed.
type fakeWriter struct {
	writes []writeRecord
	reject map[uint16]bool
}

func (f *fakeWriter) SetRegister(ctx context.Context, addr, value uint16) bool {
	f.writes = append(f.writes, writeRecord{addr: addr, values: []uint16{value}})
	return !f.reject[addr]
}

func (f *fakeWriter) SetRegisters(ctx context.Context, addr uint16, values []uint16) bool {
	f.writes = append(f.writes, writeRecord{addr: addr, values: values})
	return !f.reject[addr]
}

func TestStepsTable(t *testing.T) {
	steps := Steps()
	if len(steps) != 4 {
		t.Fatalf("Steps() returned %d steps, want 4", len(steps))
	}

	want := []struct {
		register uint16
		policy   Policy
		words    int
	}{
		{device.RegPassword, Gating, device.PasswordWords},
		{device.RegEngineeringMode, BestEffort, 1},
		{device.RegBootloaderMode, BestEffort, 1},
		{device.RegReset, BestEffort, 1},
	}

	for i, w := range want {
		if steps[i].Register != w.register {
			t.Errorf("step %d register = %#04x, want %#04x", i, steps[i].Register, w.register)
		}
		if steps[i].Policy != w.policy {
			t.Errorf("step %d policy = %v, want %v", i, steps[i].Policy, w.policy)
		}
		if len(steps[i].Values) != w.words {
			t.Errorf("step %d payload length = %d, want %d", i, len(steps[i].Values), w.words)
		}
	}

	for _, v := range steps[0].Values {
		if v != 0 {
			t.Errorf("password-clear payload contains %#04x, want all zeros", v)
		}
	}
	for _, s := range steps[1:] {
		if s.Values[0] != device.ModeSentinel {
			t.Errorf("step %q payload = %#04x, want %#04x", s.Name, s.Values[0], device.ModeSentinel)
		}
	}
}

func TestRunOrder(t *testing.T) {
	dev := &fakeWriter{}
	seq := New(dev)

	if err := seq.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantAddrs := []uint16{
		device.RegPassword,
		device.RegEngineeringMode,
		device.RegBootloaderMode,
		device.RegReset,
	}
	if len(dev.writes) != len(wantAddrs) {
		t.Fatalf("issued %d writes, want %d", len(dev.writes), len(wantAddrs))
	}
	for i, addr := range wantAddrs {
		if dev.writes[i].addr != addr {
			t.Errorf("write %d went to %#04x, want %#04x", i, dev.writes[i].addr, addr)
		}
	}

	if got := dev.writes[0].values; len(got) != device.PasswordWords {
		t.Errorf("password write carried %d words, want %d", len(got), device.PasswordWords)
	}
	for _, w := range dev.writes[1:] {
		if w.values[0] != device.ModeSentinel {
			t.Errorf("mode write to %#04x carried %#04x, want %#04x", w.addr, w.values[0], device.ModeSentinel)
		}
	}
}

func TestRunAuthenticationFailure(t *testing.T) {
	dev := &fakeWriter{reject: map[uint16]bool{device.RegPassword: true}}
	seq := New(dev)

	err := seq.Run(context.Background())

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("Run() error = %v, want *AuthenticationError", err)
	}
	if len(dev.writes) != 1 {
		t.Fatalf("issued %d writes after failed password clear, want 1", len(dev.writes))
	}
	if dev.writes[0].addr != device.RegPassword {
		t.Errorf("only write went to %#04x, want %#04x", dev.writes[0].addr, device.RegPassword)
	}
}

func TestRunBestEffortFailuresDoNotAbort(t *testing.T) {
	dev := &fakeWriter{reject: map[uint16]bool{
		device.RegEngineeringMode: true,
		device.RegBootloaderMode:  true,
		device.RegReset:           true,
	}}
	seq := New(dev)

	if err := seq.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, want nil for best-effort failures", err)
	}
	if len(dev.writes) != 4 {
		t.Errorf("issued %d writes, want all 4 despite unconfirmed mode writes", len(dev.writes))
	}
}

func TestRunStepCallback(t *testing.T) {
	dev := &fakeWriter{reject: map[uint16]bool{device.RegReset: true}}

	var names []string
	var confirms []bool
	seq := New(dev, WithStepCallback(func(step Step, confirmed bool) {
		names = append(names, step.Name)
		confirms = append(confirms, confirmed)
	}))

	if err := seq.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(names) != 4 {
		t.Fatalf("callback fired %d times, want 4", len(names))
	}
	if confirms[3] {
		t.Error("reset step reported confirmed, fake rejected it")
	}
}

func TestRunCancelledContext(t *testing.T) {
	dev := &fakeWriter{}
	seq := New(dev)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := seq.Run(ctx); err == nil {
		t.Fatal("Run() = nil with cancelled context, want error")
	}
	if len(dev.writes) != 0 {
		t.Errorf("issued %d writes with cancelled context, want 0", len(dev.writes))
	}
}
