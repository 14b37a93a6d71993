// Package canonicalize resolves a domain.RawLink into a domain.Uri, or
// explains why it can't be checked via a domain.SkipReason.
package canonicalize

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/wgalyen/kimchi/internal/domain"
)

// mailPattern matches a bare "<local>@<domain>" reference not already
// wrapped in a mailto: scheme.
var mailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Result is the outcome of canonicalizing one RawLink: exactly one of
// Uri or Skip is meaningful.
type Result struct {
	Uri  domain.Uri
	Skip domain.SkipReason
}

// Canonicalize implements spec §4.3: trim whitespace, detect mail
// references, resolve relative URLs against a base, detect file
// references, and preserve ports/userinfo/fragments.
func Canonicalize(link domain.RawLink) Result {
	value := strings.TrimSpace(link.Value)
	if value == "" {
		return Result{Skip: domain.SkipInvalidURL}
	}

	if strings.HasPrefix(value, "mailto:") {
		return canonicalizeMailto(value)
	}
	if mailPattern.MatchString(value) {
		local, domainPart, _ := strings.Cut(value, "@")
		return Result{Uri: domain.Uri{Kind: domain.KindMail, Raw: value, Local: local, Domain: domainPart}}
	}

	if strings.HasPrefix(value, "file://") {
		return canonicalizeFileURL(value)
	}

	if strings.HasPrefix(value, "#") {
		return Result{Skip: domain.SkipFragmentOnly}
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return Result{Skip: domain.SkipInvalidURL}
	}

	if !parsed.IsAbs() {
		if link.Base == "" {
			if filepath.IsAbs(value) && link.Kind != domain.Website {
				return Result{Uri: domain.Uri{Kind: domain.KindFileRef, Raw: value, AbsolutePath: value}}
			}
			return Result{Skip: domain.SkipRelativeWithoutBase}
		}
		baseURL, err := url.Parse(link.Base)
		if err != nil {
			return Result{Skip: domain.SkipRelativeWithoutBase}
		}
		resolved := baseURL.ResolveReference(parsed)
		if !resolved.IsAbs() {
			return Result{Skip: domain.SkipRelativeWithoutBase}
		}
		parsed = resolved
	}

	switch parsed.Scheme {
	case "http", "https":
		return Result{Uri: webURIFrom(parsed, value)}
	case "mailto":
		return canonicalizeMailto(value)
	case "file":
		return canonicalizeFileURL(parsed.String())
	default:
		return Result{Skip: domain.SkipUnsupportedScheme}
	}
}

// FromURL builds a Web Uri directly from an already-resolved *url.URL,
// used by the Checker to turn a redirect Location header into a Uri
// the Policy Engine can re-classify at each hop.
func FromURL(u *url.URL) domain.Uri {
	return webURIFrom(u, u.String())
}

func webURIFrom(u *url.URL, raw string) domain.Uri {
	return domain.Uri{
		Kind:     domain.KindWeb,
		Raw:      raw,
		Scheme:   u.Scheme,
		Host:     u.Hostname(),
		Port:     u.Port(),
		Path:     u.Path,
		Query:    u.RawQuery,
		Fragment: u.Fragment,
	}
}

func canonicalizeMailto(value string) Result {
	addr := strings.TrimPrefix(value, "mailto:")
	addr, _, _ = strings.Cut(addr, "?")
	local, domainPart, ok := strings.Cut(addr, "@")
	if !ok || local == "" || domainPart == "" {
		return Result{Skip: domain.SkipInvalidURL}
	}
	return Result{Uri: domain.Uri{Kind: domain.KindMail, Raw: value, Local: local, Domain: domainPart}}
}

func canonicalizeFileURL(value string) Result {
	path := strings.TrimPrefix(value, "file://")
	if path == "" {
		return Result{Skip: domain.SkipInvalidURL}
	}
	return Result{Uri: domain.Uri{Kind: domain.KindFileRef, Raw: value, AbsolutePath: path}}
}
