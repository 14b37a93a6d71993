// Package policy implements the Policy Engine: a pure function from
// (Uri, CheckerConfig) to either Check or Excluded(reason). No global
// state; calling it twice with the same inputs always yields the same
// decision.
package policy

import (
	"net"
	"regexp"

	"github.com/wgalyen/kimchi/internal/config"
	"github.com/wgalyen/kimchi/internal/domain"
)

// ExcludeReason explains why classify() excluded a Uri.
type ExcludeReason string

const (
	ReasonNotIncluded  ExcludeReason = "not_included"
	ReasonUserExcluded ExcludeReason = "user_excluded"
	ReasonWrongScheme  ExcludeReason = "wrong_scheme"
	ReasonMailDisabled ExcludeReason = "mail_disabled"
	ReasonPrivateIP    ExcludeReason = "private_ip"
)

// Decision is classify()'s result: exactly one of Check or Excluded is
// meaningful.
type Decision struct {
	Check    bool
	Excluded ExcludeReason
}

var privateBlocks = mustParseCIDRs("10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16", "fc00::/7")
var loopbackBlocks = mustParseCIDRs("127.0.0.0/8")
var linkLocalBlocks = mustParseCIDRs("169.254.0.0/16", "fe80::/10")

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}

// Classify implements the short-circuit rule order from spec §4.4.
func Classify(uri domain.Uri, cfg *config.CheckerConfig) Decision {
	if len(cfg.IncludeRegexps) > 0 && !matchesAny(cfg.IncludeRegexps, uri.Raw) {
		return Decision{Excluded: ReasonNotIncluded}
	}

	if matchesAny(cfg.ExcludeRegexps, uri.Raw) {
		return Decision{Excluded: ReasonUserExcluded}
	}

	if cfg.Scheme != "" && uri.Kind == domain.KindWeb && uri.Scheme != cfg.Scheme {
		return Decision{Excluded: ReasonWrongScheme}
	}

	if uri.Kind == domain.KindMail {
		// mail checking has no separate config toggle in this design;
		// ReasonMailDisabled is reserved for a future --no-mail flag.
		return Decision{Check: true}
	}

	if uri.Kind == domain.KindWeb {
		if addr := net.ParseIP(uri.Host); addr != nil {
			if cfg.ExcludeLoopback && inAny(addr, loopbackBlocks) {
				return Decision{Excluded: ReasonPrivateIP}
			}
			if isIPv6Loopback(addr) && cfg.ExcludeLoopback {
				return Decision{Excluded: ReasonPrivateIP}
			}
			if cfg.ExcludeLinkLocal && inAny(addr, linkLocalBlocks) {
				return Decision{Excluded: ReasonPrivateIP}
			}
			if cfg.ExcludePrivate && inAny(addr, privateBlocks) {
				return Decision{Excluded: ReasonPrivateIP}
			}
		}
	}

	return Decision{Check: true}
}

func isIPv6Loopback(addr net.IP) bool {
	return addr.Equal(net.IPv6loopback)
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func inAny(addr net.IP, blocks []*net.IPNet) bool {
	for _, b := range blocks {
		if b.Contains(addr) {
			return true
		}
	}
	return false
}
