package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/AzureXuanVerse/Nebula-Tools/common"
	"github.com/AzureXuanVerse/Nebula-Tools/internal/api"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/opener"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/rawhttp"
)

// JSON-RPC error codes for remote command failures.
const (
	codeInvalidParams     = jrpc2.Code(-32602)
	codeUnsupportedScheme = jrpc2.Code(-32010)
	codeConnection        = jrpc2.Code(-32011)
	codeInvalidResponse   = jrpc2.Code(-32012)
	codeOpenFailed        = jrpc2.Code(-32013)
)

// Operations is what the adapters dispatch to; *api.Api implements it.
type Operations interface {
	RemoteProxy(ctx context.Context, p *common.RemoteParams) (string, error)
	Open(url string) error
}

// RPCConfig holds configuration for the JSON-RPC endpoint.
type RPCConfig struct {
	Secret    string // bearer token; empty keeps /jsonrpc closed
	Version   string
	Commit    string
	BuildType string
}

// RPCServer exposes Operations as JSON-RPC 2.0 methods over HTTP and
// WebSocket.
type RPCServer struct {
	bridge  jhttp.Bridge
	methods handler.Map
	ops     Operations
	log     logger.Logger
	cfg     RPCConfig
}

func NewRPCServer(cfg *RPCConfig, ops Operations, l logger.Logger) *RPCServer {
	if cfg == nil {
		cfg = &RPCConfig{}
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	rs := &RPCServer{
		ops: ops,
		log: l,
		cfg: *cfg,
	}
	rs.methods = handler.Map{
		"remote.proxy":      handler.New(rs.remoteProxy),
		"system.open":       handler.New(rs.systemOpen),
		"system.getVersion": handler.New(rs.systemGetVersion),
	}
	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

// ServeHTTP answers POSTed JSON-RPC requests.
func (rs *RPCServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rs.bridge.ServeHTTP(w, r)
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*common.VersionResult, error) {
	return &common.VersionResult{
		Version:   rs.cfg.Version,
		Commit:    rs.cfg.Commit,
		BuildType: rs.cfg.BuildType,
	}, nil
}

func (rs *RPCServer) remoteProxy(ctx context.Context, p *common.RemoteParams) (*common.RemoteResult, error) {
	if p == nil || strings.TrimSpace(p.ServerURL) == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: serverUrl"}
	}
	body, err := rs.ops.RemoteProxy(ctx, p)
	if err != nil {
		return nil, remoteError(err)
	}
	return &common.RemoteResult{Body: body}, nil
}

func (rs *RPCServer) systemOpen(_ context.Context, p *common.OpenParams) (*common.EmptyResult, error) {
	if p == nil || strings.TrimSpace(p.URL) == "" {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing required param: url"}
	}
	if err := rs.ops.Open(p.URL); err != nil {
		if errors.Is(err, opener.ErrEmptyURL) {
			return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
		}
		return nil, &jrpc2.Error{Code: codeOpenFailed, Message: err.Error()}
	}
	return &common.EmptyResult{}, nil
}

// remoteError maps pipeline failures onto JSON-RPC error codes. The message
// is the flattened error text.
func remoteError(err error) error {
	code := codeConnection
	switch {
	case errors.Is(err, rawhttp.ErrUnsupportedScheme):
		code = codeUnsupportedScheme
	case errors.Is(err, rawhttp.ErrInvalidTarget), errors.Is(err, api.ErrNilParams):
		code = codeInvalidParams
	case errors.Is(err, rawhttp.ErrInvalidResponse):
		code = codeInvalidResponse
	}
	return &jrpc2.Error{Code: code, Message: err.Error()}
}

// Close shuts down the jrpc2 bridge, releasing internal goroutines.
func (rs *RPCServer) Close() {
	rs.bridge.Close()
}
