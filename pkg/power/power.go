// Package power performs the system power-off that fires when the
// countdown expires uncancelled.
package power

// Controller triggers a system power state change.
type Controller interface {
	PowerOff() error
}

// System returns the platform power controller.
func System() Controller {
	return systemController{}
}
