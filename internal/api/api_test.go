package api

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AzureXuanVerse/Nebula-Tools/common"
	"github.com/AzureXuanVerse/Nebula-Tools/internal/history"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/rawhttp"
)

// startAdmin serves one canned HTTP response per connection and reports
// each request it read.
func startAdmin(t *testing.T, response string) (string, <-chan string) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	reqs := make(chan string, 8)
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				req, err := http.ReadRequest(bufio.NewReader(c))
				if err != nil {
					return
				}
				body, _ := io.ReadAll(req.Body)
				reqs <- req.Method + " " + req.URL.Path + "\n" + string(body)
				_, _ = io.WriteString(c, response)
			}(conn)
		}
	}()
	return l.Addr().String(), reqs
}

func newTestApi(t *testing.T, open func(string) error, h *history.Store) (*Api, *logger.MockLogger) {
	t.Helper()
	c, err := rawhttp.NewClient(&rawhttp.ClientOpts{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ml := &logger.MockLogger{}
	a, err := NewApi(ml, c, open, h)
	if err != nil {
		t.Fatalf("NewApi: %v", err)
	}
	return a, ml
}

func TestNewApi_NilClient(t *testing.T) {
	if _, err := NewApi(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestRemoteProxy_ReturnsBodyAndRecords(t *testing.T) {
	addr, reqs := startAdmin(t, "HTTP/1.1 200 OK\r\n\r\n{\"Code\":200,\"Msg\":\"ok\"}")
	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	a, _ := newTestApi(t, nil, h)
	defer a.Close()

	body, err := a.RemoteProxy(context.Background(), &common.RemoteParams{
		ServerURL: "  http://" + addr + "/api/command  ",
		Token:     "abc",
		Command:   "give 1001 10",
	})
	if err != nil {
		t.Fatalf("RemoteProxy: %v", err)
	}
	if body != `{"Code":200,"Msg":"ok"}` {
		t.Fatalf("body = %q", body)
	}
	raw := <-reqs
	if raw != "POST /api/command\n"+`{"token":"abc","command":"give 1001 10"}` {
		t.Fatalf("request = %q", raw)
	}

	entries, err := h.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || !entries[0].OK || entries[0].Command != "give 1001 10" {
		t.Fatalf("unexpected history %+v", entries)
	}
	if entries[0].Server != "http://"+addr+"/api/command" || entries[0].BodySize != len(body) {
		t.Fatalf("unexpected history entry %+v", entries[0])
	}
}

func TestRemoteProxy_FailureRecordedAndLogged(t *testing.T) {
	h, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	a, ml := newTestApi(t, nil, h)
	defer a.Close()

	_, err = a.RemoteProxy(context.Background(), &common.RemoteParams{ServerURL: "https://secure.example.com"})
	if !errors.Is(err, rawhttp.ErrUnsupportedScheme) {
		t.Fatalf("err = %v, want ErrUnsupportedScheme", err)
	}
	if len(ml.WarningCalls) == 0 {
		t.Fatal("expected a warning log")
	}
	entries, _ := h.List(context.Background(), 0)
	if len(entries) != 1 || entries[0].OK || entries[0].Error == "" {
		t.Fatalf("failure not recorded: %+v", entries)
	}
}

func TestRemoteProxy_DebugLogsTimeout(t *testing.T) {
	a, ml := newTestApi(t, nil, nil)
	_, _ = a.RemoteProxy(context.Background(), &common.RemoteParams{ServerURL: "https://h", Command: "status"})
	if len(ml.DebugCalls) != 1 || ml.DebugCalls[0] != `sending "status" to https://h (timeout 2s)` {
		t.Fatalf("debug = %v", ml.DebugCalls)
	}

	c, err := rawhttp.NewClient(&rawhttp.ClientOpts{Timeout: -1})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ml = logger.NewMockLogger()
	a, _ = NewApi(ml, c, nil, nil)
	_, _ = a.RemoteProxy(context.Background(), &common.RemoteParams{ServerURL: "https://h", Command: "status"})
	if len(ml.DebugCalls) != 1 || !strings.HasSuffix(ml.DebugCalls[0], "(timeout none)") {
		t.Fatalf("debug = %v", ml.DebugCalls)
	}
}

func TestRemoteProxy_NilParams(t *testing.T) {
	a, _ := newTestApi(t, nil, nil)
	if _, err := a.RemoteProxy(context.Background(), nil); !errors.Is(err, ErrNilParams) {
		t.Fatalf("err = %v, want ErrNilParams", err)
	}
}

func TestRemoteProxy_ConnectionRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	a, _ := newTestApi(t, nil, nil)
	_, err = a.RemoteProxy(context.Background(), &common.RemoteParams{ServerURL: "http://" + addr})
	if !rawhttp.IsConnectionError(err) {
		t.Fatalf("err = %v, want connection error", err)
	}
}

func TestOpen(t *testing.T) {
	var opened []string
	a, _ := newTestApi(t, func(u string) error {
		opened = append(opened, u)
		return nil
	}, nil)
	if err := a.Open("https://example.com"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(opened) != 1 || opened[0] != "https://example.com" {
		t.Fatalf("opened = %v", opened)
	}

	boom := errors.New("boom")
	a, _ = newTestApi(t, func(string) error { return boom }, nil)
	if err := a.Open("x"); !errors.Is(err, boom) {
		t.Fatalf("Open err = %v, want boom", err)
	}

	a, _ = newTestApi(t, nil, nil)
	if err := a.Open("x"); err == nil {
		t.Fatal("expected error without opener")
	}
}

func TestCloseWithoutHistory(t *testing.T) {
	a, _ := newTestApi(t, nil, nil)
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestCommandURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://10.0.0.5:8080", "http://10.0.0.5:8080/api/command"},
		{"http://10.0.0.5:8080/", "http://10.0.0.5:8080/api/command"},
		{"  http://h/api/command  ", "http://h/api/command"},
		{"http://h/api/command/", "http://h/api/command"},
		{"h:81/game", "h:81/game/api/command"},
	}
	for _, tt := range tests {
		if got := CommandURL(tt.in); got != tt.want {
			t.Errorf("CommandURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithTarget(t *testing.T) {
	tests := []struct {
		cmd, uid, want string
	}{
		{"give 1001 10", "12345", "give 1001 10 @12345"},
		{"give 1001 10", "  ", "give 1001 10"},
		{"status", " 7 ", "status @7"},
		{"ban 12345", "999", "ban 12345"},
		{"  UNBAN 12345", "999", "  UNBAN 12345"},
		{"banner", "1", "banner @1"},
	}
	for _, tt := range tests {
		name := fmt.Sprintf("%s/%s", tt.cmd, tt.uid)
		t.Run(name, func(t *testing.T) {
			if got := WithTarget(tt.cmd, tt.uid); got != tt.want {
				t.Fatalf("WithTarget = %q, want %q", got, tt.want)
			}
		})
	}
}
