//go:build !windows

package server

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"

	"github.com/napgate/napgate/common"
	"github.com/napgate/napgate/internal/scheduler"
	"github.com/napgate/napgate/pkg/logger"
)

func startServer(t *testing.T, countdown *scheduler.Countdown) (*Server, string) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "status.sock")
	t.Setenv(common.SocketPathEnv, socketPath)

	srv := NewServer(logger.NewNopLogger(), countdown, "test")
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	t.Cleanup(func() {
		srv.Shutdown()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("server exited with error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after shutdown")
		}
	})

	deadline := time.Now().Add(2 * time.Second)
	for {
		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return srv, socketPath
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func dialClient(t *testing.T, socketPath string) *jrpc2.Client {
	t.Helper()
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	cli := jrpc2.NewClient(channel.Line(conn, conn), nil)
	t.Cleanup(func() { cli.Close() })
	return cli
}

func TestServerStatusActive(t *testing.T) {
	countdown := scheduler.New(func() {})
	if err := countdown.ScheduleDuration(time.Hour); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	defer countdown.Cancel()

	_, socketPath := startServer(t, countdown)
	cli := dialClient(t, socketPath)

	var res common.StatusResult
	if err := cli.CallResult(context.Background(), common.MethodStatus, nil, &res); err != nil {
		t.Fatalf("timer.status: %v", err)
	}
	if !res.Active {
		t.Error("expected active schedule")
	}
	if res.FireAt == "" {
		t.Error("expected fireAt to be set")
	}
	if res.RemainingMs <= 0 || res.RemainingMs > time.Hour.Milliseconds() {
		t.Errorf("remainingMs out of range: %d", res.RemainingMs)
	}
}

func TestServerStatusIdle(t *testing.T) {
	countdown := scheduler.New(func() {})

	_, socketPath := startServer(t, countdown)
	cli := dialClient(t, socketPath)

	var res common.StatusResult
	if err := cli.CallResult(context.Background(), common.MethodStatus, nil, &res); err != nil {
		t.Fatalf("timer.status: %v", err)
	}
	if res.Active {
		t.Error("expected idle schedule")
	}
	if res.FireAt != "" {
		t.Errorf("unexpected fireAt: %q", res.FireAt)
	}
}

func TestServerVersion(t *testing.T) {
	countdown := scheduler.New(func() {})
	_, socketPath := startServer(t, countdown)
	cli := dialClient(t, socketPath)

	var res common.VersionResult
	if err := cli.CallResult(context.Background(), common.MethodVersion, nil, &res); err != nil {
		t.Fatalf("timer.version: %v", err)
	}
	if res.Version != "test" {
		t.Errorf("version = %q, want %q", res.Version, "test")
	}
}

func TestServerMultipleClients(t *testing.T) {
	countdown := scheduler.New(func() {})
	if err := countdown.ScheduleDuration(time.Hour); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	defer countdown.Cancel()

	_, socketPath := startServer(t, countdown)

	for i := 0; i < 3; i++ {
		cli := dialClient(t, socketPath)
		var res common.StatusResult
		if err := cli.CallResult(context.Background(), common.MethodStatus, nil, &res); err != nil {
			t.Fatalf("client %d: %v", i, err)
		}
		if !res.Active {
			t.Errorf("client %d: expected active", i)
		}
	}
}

func TestServerShutdownIdempotent(t *testing.T) {
	countdown := scheduler.New(func() {})
	srv, _ := startServer(t, countdown)
	srv.Shutdown()
	srv.Shutdown()
}
