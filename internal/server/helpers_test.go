package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/AzureXuanVerse/Nebula-Tools/common"
)

const testSecret = "test-rpc-secret"

// fakeOps records every call and answers with canned values.
type fakeOps struct {
	mu      sync.Mutex
	remote  []common.RemoteParams
	opened  []string
	body    string
	err     error
	openErr error
}

func (f *fakeOps) RemoteProxy(_ context.Context, p *common.RemoteParams) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remote = append(f.remote, *p)
	return f.body, f.err
}

func (f *fakeOps) Open(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, url)
	return f.openErr
}

func (f *fakeOps) calls() ([]common.RemoteParams, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]common.RemoteParams(nil), f.remote...), append([]string(nil), f.opened...)
}

func newTestServer(t *testing.T, ops *fakeOps) *Server {
	t.Helper()
	s := NewServer(nil, ops, &RPCConfig{
		Secret:    testSecret,
		Version:   "1.0.0",
		Commit:    "abc123",
		BuildType: "test",
	}, "127.0.0.1:0")
	t.Cleanup(func() { _ = s.Shutdown() })
	return s
}

// rpcCall sends a JSON-RPC request to handler and returns the parsed response.
func rpcCall(t *testing.T, handler http.Handler, method string, params any, authToken string) (int, map[string]any) {
	t.Helper()
	reqBody := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		reqBody["params"] = params
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/jsonrpc", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	resp := rr.Result()
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var result map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			t.Fatalf("unmarshal response: %v (body: %s)", err, string(body))
		}
	}
	return rr.Code, result
}

// errorCode extracts error.code from a JSON-RPC response, failing the test
// when the response carries no error.
func errorCode(t *testing.T, resp map[string]any) int {
	t.Helper()
	errObj, ok := resp["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", resp)
	}
	return int(errObj["code"].(float64))
}
