//go:build !windows

package napcli

import (
	"net"

	"github.com/napgate/napgate/common"
)

// dialFunc allows tests to intercept the socket dial.
var dialFunc = net.Dial

func dial() (net.Conn, error) {
	socketPath := common.SocketPath()
	debugLog("dialing unix socket at %s", socketPath)
	return dialFunc("unix", socketPath)
}
