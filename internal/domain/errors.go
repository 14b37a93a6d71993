package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across pipeline stages.
var (
	ErrConfigInvalid  = errors.New("invalid configuration")
	ErrInputMissing   = errors.New("input not found")
	ErrInputUnreadable = errors.New("input could not be read")
	ErrRelativeWithoutBase = errors.New("relative reference without a base URL")
	ErrTimeout        = errors.New("timeout")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrCancelled      = errors.New("cancelled")
)

// ConfigError reports a malformed configuration value (bad regex, bad
// URL, out-of-range option). Fatal: the run never starts.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// InputError reports a missing or unreadable top-level input. Fatal
// unless skip_missing_inputs is set, in which case the Resolver turns it
// into a skipped-input warning instead of returning this.
type InputError struct {
	Token string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error for %s: %v", e.Token, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ExtractError is non-fatal: the offending source is skipped and
// extraction continues with the remaining inputs.
type ExtractError struct {
	Source string
	Err    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error for %s: %v", e.Source, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// NetworkError wraps a DNS/connect/TLS/timeout failure encountered while
// checking a Uri. It carries enough detail for the Checker's retry
// policy to classify it as transient or not.
type NetworkError struct {
	Uri       string
	Category  string // "dns", "connect_reset", "tls", "timeout"
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error (%s) for %s: %v", e.Category, e.Uri, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError wraps a malformed HTTP response.
type ProtocolError struct {
	Uri string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error for %s: %v", e.Uri, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// HTTPStatusError carries a non-2xx HTTP status code that the Checker's
// retry policy must classify as transient (429, 5xx) or terminal.
type HTTPStatusError struct {
	StatusCode int
	RetryAfter int // seconds, 0 if absent/unknown
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsTransientStatus reports whether an HTTP status code belongs to the
// transient category §4.5 names: 5xx or 429.
func IsTransientStatus(code int) bool {
	if code == 429 {
		return true
	}
	return code >= 500 && code <= 599
}

// IsRetryable reports whether err belongs to one of the transient
// categories §4.5 enumerates: ConnectReset, Dns, Timeout, HTTP 5xx/429.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return IsTransientStatus(statusErr.StatusCode)
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		switch netErr.Category {
		case "dns", "connect_reset", "timeout":
			return true
		default:
			return false
		}
	}

	return errors.Is(err, ErrTimeout)
}
