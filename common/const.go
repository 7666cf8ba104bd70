package common

import (
	"os"
	"path/filepath"
)

// Well-known identities for the named synchronization objects. On Windows
// these name kernel objects in the session-local namespace; on Unix they
// name files under the IPC directory.
const (
	RunningName = "NapgateRunning"
	CancelName  = "NapgateCancel"
	AckName     = "NapgateAck"
	NackName    = "NapgateNack"
)

// DefaultSocketName is the status RPC socket file name.
const DefaultSocketName = "napgate.sock"

// JSON-RPC method names served by the primary's status endpoint.
const (
	MethodStatus  = "timer.status"
	MethodVersion = "timer.version"
)

// DefaultPipeName is the default Windows named pipe name for the status RPC.
const DefaultPipeName = "napgate"

// ipcDirName is the directory under the system temp dir holding the
// named-object files on Unix.
const ipcDirName = "napgate-ipc"

// IPCDir returns the directory used for the presence marker, signal flags
// and the credential mailbox. NAPGATE_IPC_DIR takes precedence; otherwise
// XDG_RUNTIME_DIR is preferred over the shared temp dir because it is
// per-user and cleaned up on logout.
func IPCDir() string {
	if dir := os.Getenv(IPCDirEnv); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, ipcDirName)
	}
	return filepath.Join(os.TempDir(), ipcDirName)
}

// SocketPath returns the status RPC socket path.
func SocketPath() string {
	if path := os.Getenv(SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(IPCDir(), DefaultSocketName)
}

// ConfigDir returns the directory holding persistent app data (credential
// file fallback, journal database).
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "napgate"), nil
}
