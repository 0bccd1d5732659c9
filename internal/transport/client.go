package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// maxRedirects bounds redirect chains such as article title redirects.
const maxRedirects = 10

// Client creates HTTP clients for fetching articles.
type Client struct {
	// proxyURL is the optional proxy, nil for direct connections.
	proxyURL *url.URL

	// dialer is the SOCKS5 dialer when proxyURL uses a socks scheme.
	dialer proxy.Dialer

	// timeout is the per-request timeout of created HTTP clients.
	timeout time.Duration

	// userAgent is sent with every request when non-empty.
	userAgent string

	// headers are extra request headers.
	headers map[string]string

	// cookie is a raw Cookie header value.
	cookie string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeaders sets extra request headers.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithCookie sets a raw cookie string, e.g. "name=value; other=value".
func WithCookie(cookie string) Option {
	return func(c *Client) {
		c.cookie = cookie
	}
}

// NewClient creates a Client. proxyAddress may be empty for direct
// connections. The proxy is not contacted until the first request.
func NewClient(proxyAddress string, opts ...Option) (*Client, error) {
	c := &Client{
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	if proxyAddress == "" {
		return c, nil
	}

	u, err := url.Parse(proxyAddress)
	if err != nil || u.Host == "" {
		return nil, ErrInvalidProxyAddress
	}
	c.proxyURL = u

	switch strings.ToLower(u.Scheme) {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if u.User != nil {
			password, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: password}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		c.dialer = dialer
	case "http", "https":
	default:
		return nil, ErrUnsupportedProxyScheme
	}

	return c, nil
}

// ProxyAddress returns the configured proxy without credentials, or an
// empty string for direct connections.
func (c *Client) ProxyAddress() string {
	if c.proxyURL == nil {
		return ""
	}
	return c.proxyURL.Redacted()
}

// HTTPClient returns a new HTTP client configured with the proxy, timeout
// and header injection.
func (c *Client) HTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	switch {
	case c.dialer != nil:
		transport.Proxy = nil
		transport.DialContext = c.dialContext
	case c.proxyURL != nil:
		transport.Proxy = http.ProxyURL(c.proxyURL)
	}

	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New only fails with invalid options

	return &http.Client{
		Transport: &headerInjectingTransport{
			base:      transport,
			userAgent: c.userAgent,
			cookie:    c.cookie,
			headers:   c.headers,
		},
		Timeout: c.timeout,
		Jar:     jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// dialContext dials through the SOCKS5 proxy, honoring ctx when the dialer
// supports it.
func (c *Client) dialContext(ctx context.Context, network, address string) (net.Conn, error) {
	if d, ok := c.dialer.(proxy.ContextDialer); ok {
		return d.DialContext(ctx, network, address)
	}
	return c.dialer.Dial(network, address)
}

// headerInjectingTransport wraps an http.RoundTripper to inject the
// User-Agent, custom headers and cookies into every request.
type headerInjectingTransport struct {
	base      http.RoundTripper
	userAgent string
	cookie    string
	headers   map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.userAgent != "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}

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
