//go:build windows

package common

import (
	"os"
	"strings"
)

// DefaultPipePath returns the full Windows named pipe path for the status
// RPC, in the form \\.\pipe\{name}.
func DefaultPipePath() string {
	return `\\.\pipe\` + DefaultPipeName
}

// PipePath returns the Windows named pipe path for the status RPC.
// NAPGATE_PIPE_NAME takes precedence; a value already carrying the
// \\.\pipe\ prefix is used as-is.
func PipePath() string {
	if name := os.Getenv(PipeNameEnv); name != "" {
		if strings.HasPrefix(name, `\\.\pipe\`) {
			return name
		}
		return `\\.\pipe\` + name
	}
	return DefaultPipePath()
}
