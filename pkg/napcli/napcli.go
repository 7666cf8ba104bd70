// Package napcli is the client for the primary's status endpoint. A
// secondary invocation uses it to show the remaining time of the armed
// schedule; the cancel handshake itself goes over the named objects, not
// this channel.
package napcli

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"

	"github.com/napgate/napgate/common"
)

// Client talks JSON-RPC to a running primary.
type Client struct {
	conn net.Conn
	cli  *jrpc2.Client
}

// NewClient connects to the primary's status endpoint. A connection
// failure usually means no primary is running.
func NewClient() (*Client, error) {
	conn, err := dial()
	if err != nil {
		return nil, fmt.Errorf("error connecting to primary: %w", err)
	}
	debugLog("connected to status endpoint")
	return &Client{
		conn: conn,
		cli:  jrpc2.NewClient(channel.Line(conn, conn), nil),
	}, nil
}

// Status returns the armed schedule, if any.
func (c *Client) Status(ctx context.Context) (*common.StatusResult, error) {
	var res common.StatusResult
	if err := c.cli.CallResult(ctx, common.MethodStatus, nil, &res); err != nil {
		return nil, fmt.Errorf("error querying status: %w", err)
	}
	return &res, nil
}

// Version returns the primary's build version.
func (c *Client) Version(ctx context.Context) (*common.VersionResult, error) {
	var res common.VersionResult
	if err := c.cli.CallResult(ctx, common.MethodVersion, nil, &res); err != nil {
		return nil, fmt.Errorf("error querying version: %w", err)
	}
	return &res, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	c.cli.Close()
	return c.conn.Close()
}

// debugMode returns true if NAPGATE_DEBUG=1
func debugMode() bool {
	return os.Getenv(common.DebugEnv) == "1"
}

// debugLog logs only if debugMode() is true
func debugLog(format string, args ...any) {
	if debugMode() {
		log.Printf(format, args...)
	}
}
