package crawler

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/wikiphilosophy/internal/model"
	"golang.org/x/crypto/sha3"
)

// DefaultMaxBodySize limits how much of an article response is read.
const DefaultMaxBodySize = 10 * 1024 * 1024

// PageFetcher loads an article and returns its body paragraphs in document
// order. Every failure is reported as a *FetchError.
type PageFetcher interface {
	Fetch(ctx context.Context, id string) (*model.Article, error)
}

// HTTPFetcher is a PageFetcher that downloads articles over HTTP.
type HTTPFetcher struct {
	// client performs the requests; header injection and proxying are
	// configured on it by the transport package.
	client *http.Client

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// paragraphSelector is passed to the Parser.
	paragraphSelector string

	logger *slog.Logger
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *HTTPFetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithFetcherParagraphSelector sets the CSS selector for body paragraphs.
func WithFetcherParagraphSelector(selector string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.paragraphSelector = selector
	}
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *HTTPFetcher) {
		f.logger = logger
	}
}

// NewHTTPFetcher creates an HTTPFetcher. A nil client is replaced by a plain
// client with a 30 second timeout.
func NewHTTPFetcher(client *http.Client, opts ...FetcherOption) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	f := &HTTPFetcher{
		client:            client,
		maxBodySize:       DefaultMaxBodySize,
		paragraphSelector: DefaultParagraphSelector,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Fetch downloads the article at id and parses it.
func (f *HTTPFetcher) Fetch(ctx context.Context, id string) (*model.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, id, nil)
	if err != nil {
		return nil, &FetchError{URL: id, Err: err}
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: id, Err: err}
	}
	defer resp.Body.Close()

	f.logger.Debug("response received",
		"url", id,
		"status", resp.StatusCode,
		"contentType", resp.Header.Get("Content-Type"),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{URL: id, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: id, Err: err}
	}

	// Relative links resolve against the URL that served the page, which
	// differs from id after a redirect.
	base := id
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL.String()
	}

	parser, err := NewParser(base, WithParagraphSelector(f.paragraphSelector))
	if err != nil {
		return nil, &FetchError{URL: id, Err: err}
	}
	article, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: id, Err: err}
	}

	article.URL = id
	article.Digest = Digest(body)

	f.logger.Debug("article parsed",
		"url", id,
		"title", article.Title,
		"paragraphs", len(article.Paragraphs),
	)

	return article, nil
}

// Digest returns the hex SHA3-256 digest of body.
func Digest(body []byte) string {
	sum := sha3.Sum256(body)
	return hex.EncodeToString(sum[:])
}
