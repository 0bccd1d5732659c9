package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidSite is returned when the site is not an absolute http(s) URL.
	ErrInvalidSite = errors.New("invalid site: must be an absolute http or https URL")

	// ErrInvalidStart is returned when the start article cannot be resolved.
	ErrInvalidStart = errors.New("invalid start article: provide a title or an absolute URL")

	// ErrInvalidTarget is returned when the target article cannot be resolved.
	ErrInvalidTarget = errors.New("invalid target article: provide a title or an absolute URL")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when the delay between fetches is negative.
	// Use 0 for no delay.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxHops is returned when the hop limit is negative.
	// Use 0 for no limit.
	ErrInvalidMaxHops = errors.New("invalid max hops: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)

// ErrInvalidDuration is returned when a duration in the config file cannot
// be parsed.
var ErrInvalidDuration = errors.New("invalid duration in configuration file")
