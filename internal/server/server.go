// Package server exposes the primary's schedule over a small JSON-RPC 2.0
// endpoint on a local socket, so a secondary `napgate status` can show the
// remaining time without participating in the cancel handshake. The
// handshake never touches this channel.
package server

import (
	"net"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"

	"github.com/napgate/napgate/internal/scheduler"
	"github.com/napgate/napgate/pkg/logger"
)

// Server serves status queries while a schedule is armed.
type Server struct {
	log       logger.Logger
	countdown *scheduler.Countdown
	version   string

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

// NewServer creates a status server for the given countdown.
func NewServer(l logger.Logger, countdown *scheduler.Countdown, version string) *Server {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Server{
		log:       l,
		countdown: countdown,
		version:   version,
	}
}

// Start begins accepting connections and blocks until Shutdown. Each
// connection gets its own JSON-RPC server over line-delimited framing.
func (s *Server) Start() error {
	l, err := s.createListener()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		l.Close()
		return nil
	}
	s.listener = l
	s.mu.Unlock()

	for {
		conn, err := l.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			return err
		}
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	srv := jrpc2.NewServer(s.methods(), nil)
	srv.Start(channel.Line(conn, conn))
	srv.Wait()
	conn.Close()
}

// Shutdown stops accepting connections and releases the socket.
// Idempotent.
func (s *Server) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.listener != nil {
		s.listener.Close()
		s.listener = nil
	}
	s.cleanupSocket()
}
