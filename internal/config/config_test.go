package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies the documented defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default site is English Wikipedia", func(t *testing.T) {
		t.Parallel()
		if cfg.Site != "https://en.wikipedia.org" {
			t.Errorf("expected Site to be 'https://en.wikipedia.org', got '%s'", cfg.Site)
		}
	})

	t.Run("default start resolves to the Java article", func(t *testing.T) {
		t.Parallel()
		start, err := cfg.StartURL()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start != "https://en.wikipedia.org/wiki/Java_(programming_language)" {
			t.Errorf("unexpected start %q", start)
		}
	})

	t.Run("default target resolves to Philosophy", func(t *testing.T) {
		t.Parallel()
		target, err := cfg.TargetURL()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if target != "https://en.wikipedia.org/wiki/Philosophy" {
			t.Errorf("unexpected target %q", target)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default MaxHops is unbounded", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxHops != 0 {
			t.Errorf("expected MaxHops to be 0, got %d", cfg.MaxHops)
		}
	})

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestConfigValidate tests the Validate method with one broken rule per case.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{
			name:   "valid config returns nil",
			modify: func(*Config) {},
		},
		{
			name:   "start given as absolute URL is valid",
			modify: func(c *Config) { c.Start = "https://de.wikipedia.org/wiki/Java" },
		},
		{
			name:   "zero delay is valid",
			modify: func(c *Config) { c.Delay = 0 },
		},
		{
			name:   "non-http site",
			modify: func(c *Config) { c.Site = "ftp://en.wikipedia.org" },
			want:   ErrInvalidSite,
		},
		{
			name:   "site without host",
			modify: func(c *Config) { c.Site = "/wiki" },
			want:   ErrInvalidSite,
		},
		{
			name:   "empty start",
			modify: func(c *Config) { c.Start = "  " },
			want:   ErrInvalidStart,
		},
		{
			name:   "empty target",
			modify: func(c *Config) { c.Target = "" },
			want:   ErrInvalidTarget,
		},
		{
			name:   "zero timeout",
			modify: func(c *Config) { c.Timeout = 0 },
			want:   ErrInvalidTimeout,
		},
		{
			name:   "negative delay",
			modify: func(c *Config) { c.Delay = -time.Second },
			want:   ErrInvalidDelay,
		},
		{
			name:   "negative max hops",
			modify: func(c *Config) { c.MaxHops = -1 },
			want:   ErrInvalidMaxHops,
		},
		{
			name: "both report formats",
			modify: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			want: ErrConflictingReportFormats,
		},
		{
			name:   "negative max body size",
			modify: func(c *Config) { c.MaxBodySize = -1 },
			want:   ErrInvalidMaxBodySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestFileApply tests merging a config file onto defaults.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("empty file changes nothing", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := (&File{}).Apply(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Site != DefaultSite || cfg.Delay != DefaultDelay || cfg.MaxHops != 0 {
			t.Errorf("defaults were modified: %+v", cfg)
		}
	})

	t.Run("all fields are applied", func(t *testing.T) {
		t.Parallel()

		hops := 40
		f := &File{
			Site:              "https://de.wikipedia.org",
			Target:            "Philosophie",
			UserAgent:         "test-agent",
			Headers:           map[string]string{"X-Test": "1"},
			Cookie:            "session=abc",
			Proxy:             "socks5://127.0.0.1:9050",
			ParagraphSelector: "article p",
			Delay:             "2s",
			Timeout:           "1m",
			MaxHops:           &hops,
		}

		cfg := NewConfig()
		if err := f.Apply(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Site != "https://de.wikipedia.org" {
			t.Errorf("unexpected Site %q", cfg.Site)
		}
		if cfg.Target != "Philosophie" {
			t.Errorf("unexpected Target %q", cfg.Target)
		}
		if cfg.UserAgent != "test-agent" {
			t.Errorf("unexpected UserAgent %q", cfg.UserAgent)
		}
		if cfg.Headers["X-Test"] != "1" {
			t.Errorf("expected X-Test header, got %v", cfg.Headers)
		}
		if cfg.Cookie != "session=abc" {
			t.Errorf("unexpected Cookie %q", cfg.Cookie)
		}
		if cfg.ProxyAddress != "socks5://127.0.0.1:9050" {
			t.Errorf("unexpected ProxyAddress %q", cfg.ProxyAddress)
		}
		if cfg.ParagraphSelector != "article p" {
			t.Errorf("unexpected ParagraphSelector %q", cfg.ParagraphSelector)
		}
		if cfg.Delay != 2*time.Second {
			t.Errorf("unexpected Delay %v", cfg.Delay)
		}
		if cfg.Timeout != time.Minute {
			t.Errorf("unexpected Timeout %v", cfg.Timeout)
		}
		if cfg.MaxHops != 40 {
			t.Errorf("unexpected MaxHops %d", cfg.MaxHops)
		}

		target, err := cfg.TargetURL()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if target != "https://de.wikipedia.org/wiki/Philosophie" {
			t.Errorf("expected target under the configured site, got %q", target)
		}
	})

	t.Run("explicit zero max hops overrides", func(t *testing.T) {
		t.Parallel()

		zero := 0
		cfg := NewConfig()
		cfg.MaxHops = 10
		if err := (&File{MaxHops: &zero}).Apply(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxHops != 0 {
			t.Errorf("expected MaxHops 0, got %d", cfg.MaxHops)
		}
	})

	t.Run("invalid duration returns ErrInvalidDuration", func(t *testing.T) {
		t.Parallel()

		for _, f := range []*File{{Delay: "soon"}, {Timeout: "10"}} {
			err := f.Apply(NewConfig())
			if !errors.Is(err, ErrInvalidDuration) {
				t.Errorf("expected ErrInvalidDuration for %+v, got %v", f, err)
			}
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.philosophy.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".philosophy.yaml")
		content := `site: https://fr.wikipedia.org
target: Philosophie
delay: 250ms
maxHops: 0
headers:
  Authorization: "Bearer token"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Site != "https://fr.wikipedia.org" {
			t.Errorf("unexpected site %q", cf.Site)
		}
		if cf.Delay != "250ms" {
			t.Errorf("unexpected delay %q", cf.Delay)
		}
		if cf.MaxHops == nil || *cf.MaxHops != 0 {
			t.Errorf("expected explicit maxHops 0, got %v", cf.MaxHops)
		}
		if cf.Headers["Authorization"] != "Bearer token" {
			t.Errorf("expected Authorization header")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".philosophy.yaml")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("site: https://en.wikipedia.org\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGConfigDir tests the XDG directory helper.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if filepath.Base(dir) != AppName {
		t.Errorf("expected directory named %q, got %q", AppName, dir)
	}
}
