package rawhttp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
	"golang.org/x/net/proxy"
)

// DefaultTimeout bounds an exchange when ClientOpts.Timeout is zero.
const DefaultTimeout = 30 * time.Second

var (
	ErrInvalidProxyURL  = errors.New("invalid proxy URL")
	ErrUnsupportedProxy = errors.New("unsupported proxy scheme (want socks5)")
	errNoContextDialer  = errors.New("proxy dialer does not support contexts")
)

// ClientOpts configures a Client. The zero value is usable.
type ClientOpts struct {
	// Timeout bounds a whole exchange. Zero means DefaultTimeout, a
	// negative value disables the deadline (cancellation via ctx still
	// works).
	Timeout time.Duration
	// ProxyURL, when set, routes the connection through a SOCKS5 proxy
	// (socks5://[user:pass@]host:port).
	ProxyURL string
	// Dialer overrides the dialer entirely; ProxyURL is ignored when set.
	Dialer Dialer
	Logger logger.Logger
}

// Client runs remote commands. It holds no per-call state and is safe for
// concurrent use; every call owns its own connection.
type Client struct {
	dialer  Dialer
	timeout time.Duration
	log     logger.Logger
}

// NewClient builds a Client from opts (nil opts means defaults).
func NewClient(opts *ClientOpts) (*Client, error) {
	if opts == nil {
		opts = &ClientOpts{}
	}
	c := &Client{
		timeout: opts.Timeout,
		log:     opts.Logger,
		dialer:  opts.Dialer,
	}
	if c.timeout == 0 {
		c.timeout = DefaultTimeout
	}
	if c.log == nil {
		c.log = logger.NewNopLogger()
	}
	if c.dialer == nil {
		d, err := newDialer(opts.ProxyURL)
		if err != nil {
			return nil, err
		}
		c.dialer = d
	}
	return c, nil
}

// Timeout returns the effective exchange timeout (negative: none).
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// RemoteProxy sends command with token to serverURL and returns the response
// body. Errors are ErrUnsupportedScheme, ErrInvalidTarget, *ConnectionError
// or ErrInvalidResponse.
func (c *Client) RemoteProxy(ctx context.Context, serverURL, token, command string) (string, error) {
	t, err := ParseTarget(serverURL)
	if err != nil {
		return "", err
	}
	if t.PortDefaulted {
		c.log.Warning("unparsable port in server URL %q, using %d", serverURL, DefaultPort)
	}

	payload := EncodePayload(token, command)
	req := BuildRequest(t, payload)
	c.log.Debug("POST %s to %s (%d byte payload)", t.Path, t.Addr(), len(payload))

	raw, err := Exchange(ctx, c.dialer, t.Host, t.Port, req, c.timeout)
	if err != nil {
		return "", err
	}
	body, err := SplitBody(raw)
	if err != nil {
		return "", err
	}
	c.log.Debug("received %d bytes from %s", len(raw), t.Addr())
	return body, nil
}

func newDialer(proxyURL string) (Dialer, error) {
	base := &net.Dialer{}
	if proxyURL == "" {
		return base, nil
	}
	parsed, err := url.Parse(proxyURL)
	if err != nil || parsed.Host == "" {
		return nil, ErrInvalidProxyURL
	}
	if parsed.Scheme != "socks5" && parsed.Scheme != "socks5h" {
		return nil, ErrUnsupportedProxy
	}
	var auth *proxy.Auth
	if parsed.User != nil {
		pass, _ := parsed.User.Password()
		auth = &proxy.Auth{
			User:     parsed.User.Username(),
			Password: pass,
		}
	}
	d, err := proxy.SOCKS5("tcp", parsed.Host, auth, base)
	if err != nil {
		return nil, fmt.Errorf("socks5 dialer: %w", err)
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, errNoContextDialer
	}
	return cd, nil
}
