package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/wikiphilosophy/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "philosophy"

	// DefaultSite is the encyclopedia whose host defines internal links.
	DefaultSite = "https://en.wikipedia.org"

	// DefaultStart is the article the walk begins at when none is given.
	DefaultStart = "Java_(programming_language)"

	// DefaultTarget is the article that ends the walk successfully.
	DefaultTarget = "Philosophy"

	// DefaultTimeout bounds each HTTP request, not the whole walk.
	DefaultTimeout = 30 * time.Second

	// DefaultDelay is the pause between consecutive article fetches.
	// Wikimedia asks automated clients to keep their request rate low.
	DefaultDelay = 500 * time.Millisecond

	// DefaultUserAgent identifies the tool in HTTP requests.
	DefaultUserAgent = "wikiphilosophy/1.0 (+https://github.com/nao1215/wikiphilosophy)"

	// DefaultMaxBodySize limits the response body size to read.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultParagraphSelector selects body paragraphs of a MediaWiki page.
	DefaultParagraphSelector = "#mw-content-text p"
)

// Config holds all configuration options for a conjecture run.
// It is populated from defaults, the config file and CLI flags, in that
// order, and passed through the application rather than kept as global state.
type Config struct {
	// Site is the base URL of the encyclopedia. Links to any other host are
	// external and never followed.
	Site string

	// Start is the first article, as an absolute URL or a title under Site.
	Start string

	// Target is the article that counts as success, as an absolute URL or a
	// title under Site.
	Target string

	// Timeout is the timeout for each HTTP request.
	Timeout time.Duration

	// Delay is the pause between consecutive fetches.
	Delay time.Duration

	// MaxHops caps the number of fetched articles. Zero means unbounded;
	// loop detection still guarantees termination on a finite site.
	MaxHops int

	// ProxyAddress is an optional proxy URL (socks5://, socks5h://, http://
	// or https://). Empty means direct connections.
	ProxyAddress string

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// Cookie is an HTTP cookie sent with every request.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string

	// ParagraphSelector is the CSS selector for body paragraphs.
	ParagraphSelector string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Verbose enables debug logging, which includes every link the
	// selector inspects and why it was rejected.
	Verbose bool

	// ConfigFilePath is the explicit path of the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// JSONReport enables JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output. Mutually exclusive with
	// JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report. Empty means stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Site:              DefaultSite,
		Start:             DefaultStart,
		Target:            DefaultTarget,
		Timeout:           DefaultTimeout,
		Delay:             DefaultDelay,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		ParagraphSelector: DefaultParagraphSelector,
	}
}

// XDGConfigDir returns the XDG config directory for the application.
// On Linux: ~/.config/philosophy
// On macOS: ~/Library/Application Support/philosophy
// On Windows: %APPDATA%\philosophy
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// StartURL returns the canonical identifier of the start article.
func (c *Config) StartURL() (string, error) {
	return model.ArticleURL(c.Site, c.Start)
}

// TargetURL returns the canonical identifier of the target article.
func (c *Config) TargetURL() (string, error) {
	return model.ArticleURL(c.Site, c.Target)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	site, err := url.Parse(c.Site)
	if err != nil || (site.Scheme != "http" && site.Scheme != "https") || site.Host == "" {
		return ErrInvalidSite
	}

	if _, err := c.StartURL(); err != nil {
		return ErrInvalidStart
	}

	if _, err := c.TargetURL(); err != nil {
		return ErrInvalidTarget
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Delay < 0 {
		return ErrInvalidDelay
	}

	if c.MaxHops < 0 {
		return ErrInvalidMaxHops
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
