package httpclient

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/wgalyen/kimchi/internal/domain"
)

// classifyDoError maps a transport-level Do() failure to the
// NetworkError categories the retry policy and classifier recognize
// (spec §4.5): dns, connect_reset, tls, timeout.
func classifyDoError(uri string, err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.NetworkError{Uri: uri, Category: "timeout", Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &domain.NetworkError{Uri: uri, Category: "dns", Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection reset"), strings.Contains(msg, "econnreset"):
		return &domain.NetworkError{Uri: uri, Category: "connect_reset", Err: err}
	case strings.Contains(msg, "certificate"), strings.Contains(msg, "tls"), strings.Contains(msg, "x509"):
		return &domain.NetworkError{Uri: uri, Category: "tls", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.NetworkError{Uri: uri, Category: "timeout", Err: err}
	default:
		return &domain.NetworkError{Uri: uri, Category: "connect_reset", Err: err}
	}
}

// classifyTransportError turns a final (post-retry) transport error
// into a terminal domain.Response: Timeout for the timeout category,
// Failed otherwise.
func classifyTransportError(uri domain.Uri, err error, attempts int, elapsed time.Duration) domain.Response {
	resp := domain.Response{Uri: uri, Attempts: attempts, Elapsed: elapsed, Reason: err.Error()}

	var netErr *domain.NetworkError
	if errors.As(err, &netErr) && netErr.Category == "timeout" {
		resp.Status = domain.StatusTimeout
		return resp
	}

	resp.Status = domain.StatusFailed
	return resp
}
