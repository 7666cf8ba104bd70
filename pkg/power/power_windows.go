//go:build windows

package power

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type systemController struct{}

// PowerOff enables the shutdown privilege on the current process token
// and powers the machine off.
func (systemController) PowerOff() error {
	if err := enableShutdownPrivilege(); err != nil {
		return fmt.Errorf("error enabling shutdown privilege: %w", err)
	}
	if err := windows.ExitWindowsEx(windows.EWX_POWEROFF|windows.EWX_FORCEIFHUNG, 0); err != nil {
		return fmt.Errorf("power off failed: %w", err)
	}
	return nil
}

func enableShutdownPrivilege() error {
	var token windows.Token
	proc := windows.CurrentProcess()
	err := windows.OpenProcessToken(proc, windows.TOKEN_ADJUST_PRIVILEGES|windows.TOKEN_QUERY, &token)
	if err != nil {
		return err
	}
	defer token.Close()

	name, err := windows.UTF16PtrFromString("SeShutdownPrivilege")
	if err != nil {
		return err
	}
	var luid windows.LUID
	if err := windows.LookupPrivilegeValue(nil, name, &luid); err != nil {
		return err
	}
	tp := windows.Tokenprivileges{
		PrivilegeCount: 1,
		Privileges: [1]windows.LUIDAndAttributes{{
			Luid:       luid,
			Attributes: windows.SE_PRIVILEGE_ENABLED,
		}},
	}
	return windows.AdjustTokenPrivileges(token, false, &tp, 0, nil, nil)
}
