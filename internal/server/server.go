// Package server runs the daemon side of nebula: JSON-RPC 2.0 over HTTP and
// WebSocket plus the browser proxy route, all on one HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// Server owns the listener and the HTTP server for the RPC adapters.
type Server struct {
	log      logger.Logger
	addr     string
	rpc      *RPCServer
	ops      Operations
	secret   string
	srv      *http.Server
	listener net.Listener
	// cancelling base ends hijacked WebSocket sessions on shutdown
	base    context.Context
	cancel  context.CancelFunc
	rpcOnce sync.Once
	mu      sync.Mutex
}

// NewServer creates a Server that will listen on addr (host:port).
func NewServer(l logger.Logger, ops Operations, cfg *RPCConfig, addr string) *Server {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if cfg == nil {
		cfg = &RPCConfig{}
	}
	return &Server{
		log:    l,
		addr:   addr,
		ops:    ops,
		secret: cfg.Secret,
		rpc:    NewRPCServer(cfg, ops, l),
	}
}

// Handler routes /jsonrpc, /jsonrpc/ws and /api/remote.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/jsonrpc", requireToken(s.secret, s.rpc))
	mux.Handle("/jsonrpc/ws", requireToken(s.secret, http.HandlerFunc(s.rpc.serveWS)))
	mux.Handle("/api/remote", optionalToken(s.secret, remoteHandler(s.ops, s.log)))
	return mux
}

// Listen binds the listener and returns its address. It is separate from
// Serve so callers can learn an ephemeral port before serving.
func (s *Server) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr(), nil
	}
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", s.addr, err)
	}
	s.listener = l
	s.base, s.cancel = context.WithCancel(context.Background())
	base := s.base
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ErrorLog:          logger.ToStdLogger(s.log),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}
	return l.Addr(), nil
}

// Serve accepts connections until ctx is cancelled or Shutdown is called.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	l, srv := s.listener, s.srv
	s.mu.Unlock()
	if l == nil {
		return errors.New("server: Serve called before Listen")
	}
	if s.secret == "" {
		s.log.Warning("no RPC secret configured: /jsonrpc rejects every request")
	}
	s.log.Info("listening on %s", l.Addr())

	stop := context.AfterFunc(ctx, func() { _ = s.Shutdown() })
	defer stop()

	err := srv.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Start is Listen followed by Serve.
func (s *Server) Start(ctx context.Context) error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Shutdown gracefully stops the HTTP server and the RPC bridge.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer s.rpcOnce.Do(s.rpc.Close)
	if s.srv == nil {
		return nil
	}
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	if err != nil {
		s.log.Error("Error shutting down server: %v", err)
	}
	s.srv = nil
	s.listener = nil
	return err
}
