// Package logger is the logging surface shared by the client, the adapters
// and the daemon. Backends write to a stdlib *log.Logger, discard, record
// (tests) or fan out to several other loggers.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is implemented by every backend.
type Logger interface {
	// Debug logs a diagnostic message. Backends may drop it unless
	// verbose output was requested.
	Debug(format string, args ...interface{})

	// Info logs an informational message (e.g. "sent 34 bytes to host:80").
	Info(format string, args ...interface{})

	// Warning logs a recoverable anomaly (e.g. "port fell back to 80").
	Warning(format string, args ...interface{})

	// Error logs a failure.
	Error(format string, args ...interface{})

	// Close releases backend resources. Safe to call more than once.
	Close() error
}

// StandardLogger writes prefixed lines to a stdlib *log.Logger.
type StandardLogger struct {
	logger *log.Logger
	debug  bool
	closer io.Closer
}

// NewStandardLogger wraps l. Debug lines are dropped unless debug is set.
func NewStandardLogger(l *log.Logger, debug bool) *StandardLogger {
	return &StandardLogger{logger: l, debug: debug}
}

// New builds a StandardLogger writing to w with the usual date/time flags.
func New(w io.Writer, debug bool) *StandardLogger {
	return NewStandardLogger(log.New(w, "", log.LstdFlags), debug)
}

// OpenFile appends to the log file at path, creating it with mode 0600.
// Close closes the file.
func OpenFile(path string, debug bool) (*StandardLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, debug)
	l.closer = f
	return l, nil
}

func (s *StandardLogger) Debug(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.logger.Printf("[DEBUG] "+format, args...)
}

func (s *StandardLogger) Info(format string, args ...interface{}) {
	s.logger.Printf("[INFO] "+format, args...)
}

func (s *StandardLogger) Warning(format string, args ...interface{}) {
	s.logger.Printf("[WARNING] "+format, args...)
}

func (s *StandardLogger) Error(format string, args ...interface{}) {
	s.logger.Printf("[ERROR] "+format, args...)
}

// Close closes the file opened by OpenFile. Writers passed to New belong to
// the caller and are left open.
func (s *StandardLogger) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// ToStdLogger returns a *log.Logger whose output is forwarded to l at Info
// level. A StandardLogger hands back its own logger directly.
func ToStdLogger(l Logger) *log.Logger {
	if s, ok := l.(*StandardLogger); ok {
		return s.logger
	}
	return log.New(infoWriter{l}, "", 0)
}

type infoWriter struct {
	l Logger
}

func (w infoWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.l.Info("%s", msg)
	return len(p), nil
}

// NopLogger discards everything.
type NopLogger struct{}

func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(format string, args ...interface{})   {}
func (n *NopLogger) Info(format string, args ...interface{})    {}
func (n *NopLogger) Warning(format string, args ...interface{}) {}
func (n *NopLogger) Error(format string, args ...interface{})   {}
func (n *NopLogger) Close() error                               { return nil }

// MockLogger records formatted messages per level for assertions.
type MockLogger struct {
	DebugCalls   []string
	InfoCalls    []string
	WarningCalls []string
	ErrorCalls   []string
	CloseCalled  bool
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Debug(format string, args ...interface{}) {
	m.DebugCalls = append(m.DebugCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Info(format string, args ...interface{}) {
	m.InfoCalls = append(m.InfoCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Warning(format string, args ...interface{}) {
	m.WarningCalls = append(m.WarningCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Error(format string, args ...interface{}) {
	m.ErrorCalls = append(m.ErrorCalls, fmt.Sprintf(format, args...))
}

func (m *MockLogger) Close() error {
	m.CloseCalled = true
	return nil
}

var (
	_ Logger = (*StandardLogger)(nil)
	_ Logger = (*NopLogger)(nil)
	_ Logger = (*MockLogger)(nil)
)
