package rawhttp

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"time"
	"unicode/utf8"
)

// Dialer opens the TCP connection for an exchange. *net.Dialer and the
// SOCKS5 dialer from golang.org/x/net/proxy both satisfy it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

var errNotUTF8 = errors.New("response is not valid UTF-8")

// Exchange performs one request/response round trip: dial host:port, write
// req in full, read until the peer closes, close.
//
// A positive timeout is an absolute deadline covering dial, write and read.
// Cancelling ctx aborts the exchange at any point, including a read that is
// blocked on a silent peer. Every failure is a *ConnectionError.
func Exchange(ctx context.Context, d Dialer, host string, port uint16, req []byte, timeout time.Duration) (string, error) {
	addr := net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))
	if d == nil {
		d = &net.Dialer{}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return "", &ConnectionError{Op: "dial", Addr: addr, Err: err}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// unblock any pending I/O as soon as ctx is done
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	fail := func(op string, err error) (string, error) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else if errors.Is(err, os.ErrDeadlineExceeded) {
			// the conn deadline can fire before ctx notices its own
			err = context.DeadlineExceeded
		}
		return "", &ConnectionError{Op: op, Addr: addr, Err: err}
	}

	n, err := conn.Write(req)
	if err != nil {
		return fail("write", err)
	}
	if n != len(req) {
		return fail("write", io.ErrShortWrite)
	}

	buf, err := io.ReadAll(conn)
	if err != nil {
		return fail("read", err)
	}
	if !utf8.Valid(buf) {
		return "", &ConnectionError{Op: "decode", Addr: addr, Err: errNotUTF8}
	}
	return string(buf), nil
}
