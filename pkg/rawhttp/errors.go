package rawhttp

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedScheme is returned for https:// URLs. It is produced
	// before any network activity.
	ErrUnsupportedScheme = errors.New("https scheme not supported by the raw transport")
	// ErrInvalidTarget is returned when the host or path would break out of
	// its header line (CR or LF present).
	ErrInvalidTarget = errors.New("invalid target: host and path must not contain CR or LF")
	// ErrInvalidResponse is returned when the peer closed the connection
	// without ever sending a header/body delimiter.
	ErrInvalidResponse = errors.New("invalid response")
)

// ConnectionError wraps any failure while dialing, writing, reading or
// decoding the response.
type ConnectionError struct {
	Op   string // "dial", "write", "read" or "decode"
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err is, or wraps, a *ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
