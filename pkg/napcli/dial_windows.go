//go:build windows

package napcli

import (
	"context"
	"net"
	"time"

	"github.com/Microsoft/go-winio"

	"github.com/napgate/napgate/common"
)

// dialTimeout bounds the pipe connection attempt; a missing primary
// should fail fast rather than hang the status command.
const dialTimeout = 2 * time.Second

// dialPipeFunc allows tests to intercept the pipe dial.
var dialPipeFunc = dialPipeImpl

func dialPipeImpl(path string) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	return winio.DialPipeContext(ctx, path)
}

func dial() (net.Conn, error) {
	pipePath := common.PipePath()
	debugLog("dialing named pipe at %s", pipePath)
	return dialPipeFunc(pipePath)
}
