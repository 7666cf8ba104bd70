// Package common provides shared constants and path resolution used across
// the napgate components.
package common

// Environment variable names for configuration.
const (
	// IPCDirEnv overrides the directory holding the named-object files
	// (presence marker, signal flags, credential mailbox).
	IPCDirEnv = "NAPGATE_IPC_DIR"

	// SocketPathEnv overrides the status RPC socket path.
	SocketPathEnv = "NAPGATE_SOCKET_PATH"

	// PipeNameEnv overrides the Windows named pipe used for the status RPC.
	PipeNameEnv = "NAPGATE_PIPE_NAME"

	// ConfigDirEnv overrides the config directory (credential file, journal).
	ConfigDirEnv = "NAPGATE_CONFIG_DIR"

	// DebugEnv enables debug logging in the client.
	DebugEnv = "NAPGATE_DEBUG"
)
