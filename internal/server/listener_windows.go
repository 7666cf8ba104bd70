//go:build windows

package server

import (
	"net"

	"github.com/Microsoft/go-winio"

	"github.com/napgate/napgate/common"
)

// pipeSecurityDescriptor restricts the status pipe to SYSTEM,
// Administrators and the creator owner.
const pipeSecurityDescriptor = "D:(A;;GA;;;SY)(A;;GA;;;BA)(A;;GA;;;CO)"

func (s *Server) createListener() (net.Listener, error) {
	return winio.ListenPipe(common.PipePath(), &winio.PipeConfig{
		SecurityDescriptor: pipeSecurityDescriptor,
		MessageMode:        false,
	})
}

// cleanupSocket is a no-op on Windows; named pipes vanish with the
// last open handle.
func (s *Server) cleanupSocket() {}
