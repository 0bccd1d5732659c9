package transport

import "errors"

// Transport configuration errors.
var (
	// ErrInvalidProxyAddress is returned when the proxy URL cannot be parsed
	// or has no host.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: expected scheme://host:port")

	// ErrUnsupportedProxyScheme is returned for proxy schemes other than
	// socks5, socks5h, http and https.
	ErrUnsupportedProxyScheme = errors.New("unsupported proxy scheme: expected socks5, http or https")
)
