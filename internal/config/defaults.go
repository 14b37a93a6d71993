package config

import "fmt"

// Version is overridden at build time via -ldflags; see pkg/version.
var Version = "dev"

// Default values, per spec §3/§6.
const (
	DefaultMaxConcurrency uint32 = 128
	DefaultMaxRedirects   uint32 = 10
	DefaultTimeoutSeconds uint32 = 20
	DefaultConfigPath            = "./kimchi.toml"
)

// DefaultUserAgent is computed rather than a constant so it always
// reflects the running binary's version.
var DefaultUserAgent = fmt.Sprintf("kimchi/%s", Version)

// Default returns a CheckerConfig populated with every default from
// spec §3, ready for Validate.
func Default() *CheckerConfig {
	return &CheckerConfig{
		MaxConcurrency: DefaultMaxConcurrency,
		MaxRedirects:   DefaultMaxRedirects,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Method:         "GET",
		UserAgent:      DefaultUserAgent,
		Headers:        map[string]string{},
	}
}
