//go:build !windows

package power

import (
	"errors"
	"testing"
)

func stubRunCommand(t *testing.T, fn func(name string, args ...string) error) {
	t.Helper()
	orig := runCommand
	runCommand = fn
	t.Cleanup(func() { runCommand = orig })
}

func TestPowerOffSystemctl(t *testing.T) {
	var calls [][]string
	stubRunCommand(t, func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	})

	if err := System().PowerOff(); err != nil {
		t.Fatalf("PowerOff: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("got %d commands, want 1", len(calls))
	}
	if calls[0][0] != "systemctl" {
		t.Errorf("first command = %v, want systemctl", calls[0])
	}
}

func TestPowerOffFallback(t *testing.T) {
	var calls [][]string
	stubRunCommand(t, func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		if name == "systemctl" {
			return errors.New("not found")
		}
		return nil
	})

	if err := System().PowerOff(); err != nil {
		t.Fatalf("PowerOff: %v", err)
	}
	if len(calls) != 2 || calls[1][0] != "shutdown" {
		t.Fatalf("commands = %v, want systemctl then shutdown", calls)
	}
}

func TestPowerOffBothFail(t *testing.T) {
	stubRunCommand(t, func(name string, args ...string) error {
		return errors.New("boom")
	})
	if err := System().PowerOff(); err == nil {
		t.Fatal("expected an error when both commands fail")
	}
}
