package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// checkProxyTimeout bounds the connectivity check in CheckConnection. It is
// short because the check only verifies the proxy speaks SOCKS5, not that
// any particular upstream host is reachable through it.
const checkProxyTimeout = 2 * time.Second

// ErrInvalidProxyAddress is returned by NewClient when proxyAddress is
// non-empty but not in "host:port" form.
var ErrInvalidProxyAddress = errors.New("transport: invalid proxy address")

// ProxyStatus describes the outcome of CheckConnection.
type ProxyStatus int

const (
	ProxyStatusOK ProxyStatus = iota
	ProxyStatusCannotConnect
	ProxyStatusTimeout
	ProxyStatusWrongType
)

func (s ProxyStatus) String() string {
	switch s {
	case ProxyStatusOK:
		return "ok"
	case ProxyStatusCannotConnect:
		return "cannot-connect"
	case ProxyStatusTimeout:
		return "timeout"
	case ProxyStatusWrongType:
		return "wrong-type"
	default:
		return "unknown"
	}
}

// Client builds HTTP clients used by webfetch-style processors. When a
// proxy address is configured, every connection is dialed through a
// cached SOCKS5 dialer; otherwise clients dial directly.
type Client struct {
	proxyAddress string
	dialer       proxy.Dialer
	timeout      time.Duration
}

// NewClient creates a Client with the given default timeout. If
// proxyAddress is empty, the client dials directly; otherwise it must be
// in "host:port" form (e.g. "127.0.0.1:1080") and is validated but not
// connected to here — call CheckConnection to verify it is reachable.
func NewClient(proxyAddress string, timeout time.Duration) (*Client, error) {
	if proxyAddress == "" {
		return &Client{dialer: proxy.Direct, timeout: timeout}, nil
	}

	if !isValidProxyAddress(proxyAddress) {
		return nil, ErrInvalidProxyAddress
	}

	dialer, err := proxy.SOCKS5("tcp", proxyAddress, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("transport: create SOCKS5 dialer: %w", err)
	}

	return &Client{
		proxyAddress: proxyAddress,
		dialer:       dialer,
		timeout:      timeout,
	}, nil
}

// isValidProxyAddress checks for "host:port" with a numeric port in
// 1-65535. A simple scan is used rather than a full URL parser because
// the accepted format has no scheme or path.
func isValidProxyAddress(address string) bool {
	parts := strings.Split(address, ":")
	if len(parts) != 2 {
		return false
	}

	host, port := parts[0], parts[1]
	if host == "" || port == "" {
		return false
	}

	portNum := 0
	for _, c := range port {
		if c < '0' || c > '9' {
			return false
		}
		portNum = portNum*10 + int(c-'0')
		if portNum > 65535 {
			return false
		}
	}
	return portNum >= 1
}

const (
	socks5Version      = 0x05
	socks5AuthNone     = 0x00
	socks5AuthNoAccept = 0xFF
)

// CheckConnection verifies that a configured proxy is running and speaks
// SOCKS5. It performs only the version/auth negotiation step of the
// handshake; it never opens a connection through the proxy to an
// upstream host. Called on a Client with no proxy configured, it always
// reports ProxyStatusOK.
func (c *Client) CheckConnection(ctx context.Context) ProxyStatus {
	if c.proxyAddress == "" {
		return ProxyStatusOK
	}

	ctx, cancel := context.WithTimeout(ctx, checkProxyTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.proxyAddress)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return ProxyStatusTimeout
		}
		return ProxyStatusCannotConnect
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(checkProxyTimeout)); err != nil {
		return ProxyStatusCannotConnect
	}

	if _, err := conn.Write([]byte{socks5Version, 0x01, socks5AuthNone}); err != nil {
		return ProxyStatusCannotConnect
	}

	authResp := make([]byte, 2)
	if _, err := io.ReadFull(conn, authResp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ProxyStatusTimeout
		}
		return ProxyStatusWrongType
	}

	if authResp[0] != socks5Version {
		return ProxyStatusWrongType
	}
	if authResp[1] == socks5AuthNoAccept || authResp[1] != socks5AuthNone {
		return ProxyStatusWrongType
	}

	return ProxyStatusOK
}

// NewHTTPClient builds an *http.Client that dials through this Client's
// configured proxy (or directly, if none). Idle-connection limits are
// kept low because each connection may own a scarce proxy-side resource
// such as a circuit or NAT slot.
func (c *Client) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: func(_ context.Context, network, addr string) (net.Conn, error) {
			return c.dialer.Dial(network, addr)
		},
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}

	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New only fails with invalid options

	return &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
		Jar:       jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// Dial establishes a TCP connection through this Client's dialer.
func (c *Client) Dial(network, address string) (net.Conn, error) {
	return c.dialer.Dial(network, address)
}

// DialContext wraps Dial with context cancellation. The proxy.Dialer
// interface has no native context support, so the dial runs in a
// goroutine; if ctx is cancelled first, the dial may still complete in
// the background and its result is discarded.
func (c *Client) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	type dialResult struct {
		conn net.Conn
		err  error
	}
	resultCh := make(chan dialResult, 1)

	go func() {
		conn, err := c.dialer.Dial(network, address)
		resultCh <- dialResult{conn, err}
	}()

	select {
	case result := <-resultCh:
		return result.conn, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ProxyAddress returns the configured proxy address, or "" if this
// Client dials directly.
func (c *Client) ProxyAddress() string {
	return c.proxyAddress
}

// HTTPClient returns a new HTTP client configured per NewHTTPClient.
func (c *Client) HTTPClient() *http.Client {
	return c.NewHTTPClient()
}

// Dialer returns the underlying proxy dialer for callers that need raw
// connections outside of HTTP.
func (c *Client) Dialer() proxy.Dialer {
	return c.dialer
}

// HTTPClientWithConfig returns an HTTP client that injects cookie and
// headers into every outgoing request, including across redirects. This
// is how per-processor-identity ProcessorConfig.Cookie/Headers reach the
// wire without mutating the shared transport.
func (c *Client) HTTPClientWithConfig(cookie string, headers map[string]string) *http.Client {
	client := c.NewHTTPClient()
	client.Transport = &headerInjectingTransport{
		base:    client.Transport,
		cookie:  cookie,
		headers: headers,
	}
	return client
}

type headerInjectingTransport struct {
	base    http.RoundTripper
	cookie  string
	headers map[string]string
}

func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.cookie != "" {
		if existing := clone.Header.Get("Cookie"); existing != "" {
			clone.Header.Set("Cookie", existing+"; "+t.cookie)
		} else {
			clone.Header.Set("Cookie", t.cookie)
		}
	}

	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
