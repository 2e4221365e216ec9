package rawhttp

import (
	"net"
	"strconv"
	"strings"
)

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"

	// DefaultPort is used when the URL carries no port or an unparsable one.
	DefaultPort uint16 = 80
)

// Target is the decomposed form of a server URL.
type Target struct {
	Host string
	Port uint16
	// Path always starts with "/".
	Path string
	// PortDefaulted is set when a port suffix was present but could not be
	// parsed, so Port silently fell back to DefaultPort.
	PortDefaulted bool
}

// Addr returns host:port for dialing.
func (t *Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.FormatUint(uint64(t.Port), 10))
}

// ParseTarget splits rawURL into host, port and path.
//
// The input is trimmed. An "http://" prefix is stripped; "https://" fails
// with ErrUnsupportedScheme; anything else is treated as a scheme-less
// plain-http URL. The host is everything before the first "/", and its port
// is whatever follows the first ":" in it, an unsigned decimal with an
// optional single leading "+". The host character set is not
// validated beyond rejecting CR and LF.
func ParseTarget(rawURL string) (*Target, error) {
	rest := strings.TrimSpace(rawURL)
	switch {
	case strings.HasPrefix(rest, schemeHTTP):
		rest = strings.TrimPrefix(rest, schemeHTTP)
	case strings.HasPrefix(rest, schemeHTTPS):
		return nil, ErrUnsupportedScheme
	}

	hostPort, path := rest, "/"
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		hostPort, path = rest[:i], rest[i:]
	}

	t := &Target{Host: hostPort, Port: DefaultPort, Path: path}
	if i := strings.IndexByte(hostPort, ':'); i >= 0 {
		t.Host = hostPort[:i]
		// one leading '+' is accepted, as a decimal u16 parse allows it
		port, err := strconv.ParseUint(strings.TrimPrefix(hostPort[i+1:], "+"), 10, 16)
		if err != nil {
			t.PortDefaulted = true
		} else {
			t.Port = uint16(port)
		}
	}

	if strings.ContainsAny(t.Host, "\r\n") || strings.ContainsAny(t.Path, "\r\n") {
		return nil, ErrInvalidTarget
	}
	return t, nil
}
