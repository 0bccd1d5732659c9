package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidIdentifier is returned when a page reference cannot be turned
// into an absolute http(s) identifier.
var ErrInvalidIdentifier = errors.New("invalid page identifier")

// articlePathPrefix is the path under which encyclopedia articles live.
const articlePathPrefix = "/wiki/"

// pathUnescaper restores sub-delimiters that are legal in a path but that
// url.URL escapes when it re-encodes a decoded path.
var pathUnescaper = strings.NewReplacer(
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Canonicalize returns the canonical form of an absolute page reference.
//
// The scheme and host are lower-cased, the fragment is dropped, an empty path
// becomes "/", and the path is NFC-normalized and re-encoded from its decoded
// form, so "Java_%28language%29" and "Java_(language)" compare equal.
// Canonicalize is idempotent.
func Canonicalize(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	}
	return canonicalURL(u)
}

// CanonicalizeURL is Canonicalize for an already parsed URL. u is not modified.
func CanonicalizeURL(u *url.URL) (string, error) {
	if u == nil {
		return "", ErrInvalidIdentifier
	}
	clone := *u
	return canonicalURL(&clone)
}

func canonicalURL(u *url.URL) (string, error) {
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidIdentifier, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidIdentifier)
	}
	u.Host = strings.ToLower(u.Host)
	u.User = nil
	u.Fragment = ""
	u.RawFragment = ""

	u.Path = norm.NFC.String(u.Path)
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	u.RawPath = pathUnescaper.Replace(u.EscapedPath())

	return u.String(), nil
}

// ArticleURL resolves ref into a canonical identifier. ref is either an
// absolute URL or an article title such as "Java (programming language)",
// which is placed under site's /wiki/ path with spaces turned into
// underscores.
func ArticleURL(site, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrInvalidIdentifier)
	}

	if u, err := url.Parse(ref); err == nil && u.IsAbs() && u.Host != "" {
		return CanonicalizeURL(u)
	}

	base, err := url.Parse(site)
	if err != nil {
		return "", fmt.Errorf("%w: site %q: %w", ErrInvalidIdentifier, site, err)
	}
	title := strings.ReplaceAll(strings.TrimPrefix(ref, articlePathPrefix), " ", "_")

	u := *base
	u.Path = articlePathPrefix + title
	u.RawPath = ""
	u.RawQuery = ""
	return CanonicalizeURL(&u)
}

// TitleFromURL returns a human readable article title for an identifier,
// e.g. "Java (programming language)". Identifiers outside the /wiki/ path are
// returned unchanged.
func TitleFromURL(id string) string {
	u, err := url.Parse(id)
	if err != nil || !strings.HasPrefix(u.Path, articlePathPrefix) {
		return id
	}
	title := strings.TrimPrefix(u.Path, articlePathPrefix)
	if title == "" {
		return id
	}
	return strings.ReplaceAll(title, "_", " ")
}

// SameHost reports whether the identifier id lives on host. The comparison
// ignores case and ports are part of the host.
func SameHost(id, host string) bool {
	u, err := url.Parse(id)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, host)
}
