package config

import (
	"fmt"
	"time"
)

// File represents the structure of the YAML configuration file.
// Every field is optional; unset fields leave the Config untouched.
type File struct {
	// Site is the base URL of the encyclopedia.
	Site string `yaml:"site,omitempty"`

	// Target is the article that ends the walk successfully.
	Target string `yaml:"target,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are custom HTTP headers to include in every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Cookie is an HTTP cookie to include in every request.
	Cookie string `yaml:"cookie,omitempty"`

	// Proxy is a proxy URL such as socks5://127.0.0.1:9050.
	Proxy string `yaml:"proxy,omitempty"`

	// ParagraphSelector is the CSS selector for body paragraphs.
	ParagraphSelector string `yaml:"paragraphSelector,omitempty"`

	// Delay is the pause between fetches, e.g. "500ms".
	Delay string `yaml:"delay,omitempty"`

	// Timeout is the per-request timeout, e.g. "30s".
	Timeout string `yaml:"timeout,omitempty"`

	// MaxHops caps the number of fetched articles. A pointer so that an
	// explicit 0 (unbounded) can be told apart from absence.
	MaxHops *int `yaml:"maxHops,omitempty"`
}

// Apply copies the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.Site != "" {
		cfg.Site = f.Site
	}
	if f.Target != "" {
		cfg.Target = f.Target
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if len(f.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			cfg.Headers[k] = v
		}
	}
	if f.Cookie != "" {
		cfg.Cookie = f.Cookie
	}
	if f.Proxy != "" {
		cfg.ProxyAddress = f.Proxy
	}
	if f.ParagraphSelector != "" {
		cfg.ParagraphSelector = f.ParagraphSelector
	}
	if f.Delay != "" {
		d, err := time.ParseDuration(f.Delay)
		if err != nil {
			return fmt.Errorf("%w: delay %q: %w", ErrInvalidDuration, f.Delay, err)
		}
		cfg.Delay = d
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %w", ErrInvalidDuration, f.Timeout, err)
		}
		cfg.Timeout = d
	}
	if f.MaxHops != nil {
		cfg.MaxHops = *f.MaxHops
	}
	return nil
}
