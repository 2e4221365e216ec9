package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
)

func TestServer_StartAndShutdown(t *testing.T) {
	ml := logger.NewMockLogger()
	ops := &fakeOps{}
	s := NewServer(ml, ops, &RPCConfig{Secret: testSecret, Version: "9.9.9"}, "127.0.0.1:0")

	addr, err := s.Listen()
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	data, _ := json.Marshal(map[string]any{"jsonrpc": "2.0", "method": "system.getVersion", "id": 1})
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s/jsonrpc", addr), bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testSecret)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	resp.Body.Close()
	if result, ok := out["result"].(map[string]any); !ok || result["version"] != "9.9.9" {
		t.Fatalf("response = %v", out)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestServer_ServeBeforeListen(t *testing.T) {
	s := NewServer(nil, &fakeOps{}, nil, "127.0.0.1:0")
	defer s.Shutdown()
	if err := s.Serve(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestServer_ListenError(t *testing.T) {
	s := NewServer(nil, &fakeOps{}, nil, "256.0.0.1:bad")
	defer s.Shutdown()
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestServer_WarnsWithoutSecret(t *testing.T) {
	ml := logger.NewMockLogger()
	s := NewServer(ml, &fakeOps{}, nil, "127.0.0.1:0")
	if _, err := s.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if len(ml.WarningCalls) == 0 {
		t.Fatal("expected a warning about the missing secret")
	}
}
