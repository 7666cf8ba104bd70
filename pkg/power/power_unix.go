//go:build !windows

package power

import (
	"fmt"
	"os/exec"
)

// runCommand allows tests to intercept the shutdown invocation.
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

type systemController struct{}

// PowerOff asks the init system to power the machine off. systemd hosts
// get systemctl; everything else falls back to shutdown(8).
func (systemController) PowerOff() error {
	errSystemctl := runCommand("systemctl", "poweroff")
	if errSystemctl == nil {
		return nil
	}
	if err := runCommand("shutdown", "-h", "now"); err != nil {
		return fmt.Errorf("power off failed: systemctl: %v; shutdown: %w", errSystemctl, err)
	}
	return nil
}
