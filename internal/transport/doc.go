// Package transport builds the HTTP client used to download articles.
//
// The client optionally routes through a proxy ("socks5://host:port",
// "http://host:port" or "https://host:port") and injects the configured
// User-Agent, extra headers and cookie into every request, redirects
// included.
//
// The package is designed to be used with dependency injection: create a
// Client once and hand its http.Client to the fetcher.
package transport
