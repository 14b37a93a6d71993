// Package config holds CheckerConfig, the merged configuration the CLI
// assembles and hands to the checking pipeline.
package config

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/wgalyen/kimchi/internal/domain"
)

// BasicAuth is a username/password pair for HTTP Basic authentication.
type BasicAuth struct {
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

// CheckerConfig is the merged, validated configuration for one run. It
// is produced by Load and consumed only by the pipeline core — nothing
// in internal/ below this package knows about Viper, Cobra or TOML.
type CheckerConfig struct {
	MaxConcurrency   uint32            `mapstructure:"max_concurrency"`
	MaxRedirects     uint32            `mapstructure:"max_redirects"`
	TimeoutSeconds   uint32            `mapstructure:"timeout_seconds"`
	Method           domain.Method     `mapstructure:"method"`
	UserAgent        string            `mapstructure:"user_agent"`
	AcceptedStatus   []uint16          `mapstructure:"accepted_status"`
	Scheme           string            `mapstructure:"scheme"`
	Include          []string          `mapstructure:"include"`
	Exclude          []string          `mapstructure:"exclude"`
	ExcludePrivate   bool              `mapstructure:"exclude_private"`
	ExcludeLinkLocal bool              `mapstructure:"exclude_link_local"`
	ExcludeLoopback  bool              `mapstructure:"exclude_loopback"`
	Headers          map[string]string `mapstructure:"headers"`
	BasicAuth        *BasicAuth        `mapstructure:"basic_auth"`
	GithubToken      string            `mapstructure:"github_token"`
	AllowInsecureTLS bool              `mapstructure:"allow_insecure_tls"`
	BaseURL          string            `mapstructure:"base_url"`
	GlobIgnoreCase   bool              `mapstructure:"glob_ignore_case"`
	SkipMissingInputs bool             `mapstructure:"skip_missing_inputs"`
	Verbose          bool              `mapstructure:"verbose"`

	// compiled forms, populated by Validate; nil until then.
	IncludeRegexps    []*regexp.Regexp `mapstructure:"-" toml:"-"`
	ExcludeRegexps    []*regexp.Regexp `mapstructure:"-" toml:"-"`
	AcceptedStatusSet map[int]struct{} `mapstructure:"-" toml:"-"`
	BaseURLParsed     *url.URL         `mapstructure:"-" toml:"-"`
}

// Validate compiles the regex/URL string fields and clamps out-of-range
// numeric values to their defaults, mirroring the donor's
// clamp-don't-fail Validate convention. Malformed regex or base URLs are
// fatal ConfigErrors — they cannot be silently clamped.
func (c *CheckerConfig) Validate() error {
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.MaxRedirects == 0 {
		c.MaxRedirects = DefaultMaxRedirects
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Method == "" {
		c.Method = domain.MethodGet
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	c.IncludeRegexps = nil
	for _, pattern := range c.Include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return &domain.ConfigError{Field: "include", Err: fmt.Errorf("bad regex %q: %w", pattern, err)}
		}
		c.IncludeRegexps = append(c.IncludeRegexps, re)
	}

	c.ExcludeRegexps = nil
	for _, pattern := range c.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return &domain.ConfigError{Field: "exclude", Err: fmt.Errorf("bad regex %q: %w", pattern, err)}
		}
		c.ExcludeRegexps = append(c.ExcludeRegexps, re)
	}

	if len(c.AcceptedStatus) > 0 {
		c.AcceptedStatusSet = make(map[int]struct{}, len(c.AcceptedStatus))
		for _, code := range c.AcceptedStatus {
			c.AcceptedStatusSet[int(code)] = struct{}{}
		}
	} else {
		c.AcceptedStatusSet = nil
	}

	if c.BaseURL != "" {
		parsed, err := url.Parse(c.BaseURL)
		if err != nil {
			return &domain.ConfigError{Field: "base_url", Err: err}
		}
		c.BaseURLParsed = parsed
	}

	return nil
}
