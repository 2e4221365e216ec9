package logger

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestStandardLogger_Levels(t *testing.T) {
	tests := []struct {
		name   string
		call   func(l *StandardLogger)
		prefix string
		text   string
	}{
		{"info", func(l *StandardLogger) { l.Info("sent %d bytes", 34) }, "[INFO]", "sent 34 bytes"},
		{"warning", func(l *StandardLogger) { l.Warning("port %q unparsable", "x") }, "[WARNING]", `port "x" unparsable`},
		{"error", func(l *StandardLogger) { l.Error("dial: %v", "refused") }, "[ERROR]", "dial: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewStandardLogger(log.New(buf, "", 0), false)
			tt.call(l)
			out := buf.String()
			if !strings.Contains(out, tt.prefix) {
				t.Errorf("expected %s prefix, got: %s", tt.prefix, out)
			}
			if !strings.Contains(out, tt.text) {
				t.Errorf("expected %q in output, got: %s", tt.text, out)
			}
		})
	}
}

func TestStandardLogger_DebugGated(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewStandardLogger(log.New(buf, "", 0), false)

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output written while disabled: %q", buf.String())
	}

	l = NewStandardLogger(log.New(buf, "", 0), true)
	l.Debug("shown %d", 1)
	if !strings.Contains(buf.String(), "[DEBUG] shown 1") {
		t.Fatalf("expected debug line, got: %q", buf.String())
	}
}

func TestStandardLogger_Close(t *testing.T) {
	l := New(&bytes.Buffer{}, false)
	if err := l.Close(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nebula.log")
	l, err := OpenFile(path, false)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info("first")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	l, err = OpenFile(path, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	l.Info("second")
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "[INFO] first") || !strings.Contains(out, "[INFO] second") {
		t.Fatalf("log file not appended: %q", out)
	}
	if fi, _ := os.Stat(path); runtime.GOOS != "windows" && fi.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600", fi.Mode().Perm())
	}
}

func TestOpenFile_MissingDir(t *testing.T) {
	if _, err := OpenFile(filepath.Join(t.TempDir(), "no", "such.log"), false); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestToStdLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	std := log.New(buf, "", 0)
	if got := ToStdLogger(NewStandardLogger(std, false)); got != std {
		t.Fatalf("expected the wrapped logger to be returned as-is")
	}

	mock := NewMockLogger()
	ToStdLogger(mock).Println("bridge closed")
	if len(mock.InfoCalls) != 1 || mock.InfoCalls[0] != "bridge closed" {
		t.Fatalf("unexpected forwarded calls: %#v", mock.InfoCalls)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("test")
	l.Info("test")
	l.Warning("test")
	l.Error("test")
	if err := l.Close(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

type failingLogger struct {
	NopLogger
	err error
}

func (f *failingLogger) Close() error { return f.err }

func TestMultiLogger(t *testing.T) {
	m1 := NewMockLogger()
	m2 := NewMockLogger()
	first := errors.New("first")
	ml := NewMultiLogger(m1, &failingLogger{err: first}, m2, &failingLogger{err: errors.New("second")})

	ml.Debug("d")
	ml.Info("i %d", 1)
	ml.Warning("w")
	ml.Error("e")

	for _, m := range []*MockLogger{m1, m2} {
		if len(m.DebugCalls) != 1 || len(m.InfoCalls) != 1 || len(m.WarningCalls) != 1 || len(m.ErrorCalls) != 1 {
			t.Fatalf("message not broadcast to every backend: %#v", m)
		}
		if m.InfoCalls[0] != "i 1" {
			t.Fatalf("InfoCalls[0] = %q, want %q", m.InfoCalls[0], "i 1")
		}
	}

	if err := ml.Close(); !errors.Is(err, first) {
		t.Fatalf("Close() = %v, want first error", err)
	}
	if !m1.CloseCalled || !m2.CloseCalled {
		t.Fatalf("expected every backend to be closed")
	}
}
