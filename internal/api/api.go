// Package api is the operations facade shared by the CLI, the JSON-RPC
// bridge and the HTTP proxy route. Every adapter calls into an *Api so the
// remote-command pipeline and its side effects live in one place.
package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AzureXuanVerse/Nebula-Tools/common"
	"github.com/AzureXuanVerse/Nebula-Tools/internal/history"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/opener"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/rawhttp"
)

var ErrNilParams = errors.New("missing remote command parameters")

type Api struct {
	log     logger.Logger
	client  *rawhttp.Client
	open    opener.Func
	history *history.Store
}

// NewApi wires the facade. open and h may be nil: a nil open rejects every
// URL, a nil history disables recording.
func NewApi(l logger.Logger, client *rawhttp.Client, open opener.Func, h *history.Store) (*Api, error) {
	if client == nil {
		return nil, errors.New("api: nil client")
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Api{
		log:     l,
		client:  client,
		open:    open,
		history: h,
	}, nil
}

// RemoteProxy sends p.Command to p.ServerURL as given (no path is appended)
// and returns the raw response body.
func (s *Api) RemoteProxy(ctx context.Context, p *common.RemoteParams) (string, error) {
	if p == nil {
		return "", ErrNilParams
	}
	serverURL := strings.TrimSpace(p.ServerURL)
	s.log.Debug("sending %q to %s (timeout %s)", p.Command, serverURL, timeoutText(s.client.Timeout()))
	body, err := s.client.RemoteProxy(ctx, serverURL, p.Token, p.Command)
	if err != nil {
		s.log.Warning("remote command to %s failed: %v", serverURL, err)
	} else {
		s.log.Info("remote command to %s returned %d bytes", serverURL, len(body))
	}
	s.record(ctx, serverURL, p.Command, body, err)
	return body, err
}

func timeoutText(d time.Duration) string {
	if d < 0 {
		return "none"
	}
	return d.String()
}

func (s *Api) record(ctx context.Context, server, command, body string, callErr error) {
	if s.history == nil {
		return
	}
	e := history.Entry{
		Server:   server,
		Command:  command,
		OK:       callErr == nil,
		BodySize: len(body),
	}
	if callErr != nil {
		e.Error = callErr.Error()
	}
	// a cancelled request is still worth recording
	if _, err := s.history.Record(context.WithoutCancel(ctx), e); err != nil {
		s.log.Warning("history: %v", err)
	}
}

// Open hands url to the injected platform opener.
func (s *Api) Open(url string) error {
	if s.open == nil {
		return errors.New("api: no opener configured")
	}
	return s.open(url)
}

func (s *Api) Close() error {
	if s.history == nil {
		return nil
	}
	return s.history.Close()
}
