package server

import (
	"context"
	"time"

	"github.com/creachadair/jrpc2/handler"

	"github.com/napgate/napgate/common"
)

func (s *Server) methods() handler.Map {
	return handler.Map{
		common.MethodStatus:  handler.New(s.handleStatus),
		common.MethodVersion: handler.New(s.handleVersion),
	}
}

func (s *Server) handleStatus(ctx context.Context) (common.StatusResult, error) {
	res := common.StatusResult{Active: s.countdown.IsActive()}
	if fireAt, ok := s.countdown.FireAt(); ok {
		res.FireAt = fireAt.Format(time.RFC3339)
	}
	if remaining, ok := s.countdown.Remaining(); ok {
		res.RemainingMs = remaining.Milliseconds()
	}
	return res, nil
}

func (s *Server) handleVersion(ctx context.Context) (common.VersionResult, error) {
	return common.VersionResult{Version: s.version}, nil
}
