//go:build !windows

package server

import (
	"net"
	"os"
	"path/filepath"

	"github.com/napgate/napgate/common"
)

// createListener creates the Unix socket listener for the status RPC.
// A stale socket from a crashed primary is removed first; the presence
// marker, not the socket, is what decides whether a primary is live.
func (s *Server) createListener() (net.Listener, error) {
	socketPath := common.SocketPath()
	if err := os.MkdirAll(filepath.Dir(socketPath), 0700); err != nil {
		return nil, err
	}
	_ = os.Remove(socketPath)
	l, err := net.ListenUnix("unix", &net.UnixAddr{
		Name: socketPath,
		Net:  "unix",
	})
	if err != nil {
		return nil, err
	}
	_ = os.Chmod(socketPath, 0600)
	return l, nil
}

// cleanupSocket removes the socket file on shutdown.
func (s *Server) cleanupSocket() {
	_ = os.Remove(common.SocketPath())
}
