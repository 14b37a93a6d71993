// Package mailprobe checks a Mail Uri by verifying its address syntax,
// resolving the domain's MX records, and issuing an SMTP RCPT TO probe
// against the best-priority mail exchanger (spec §4.5's mail
// dispatch).
package mailprobe

import (
	"context"
	"fmt"
	"net"
	"net/mail"
	"sort"
	"time"

	"github.com/wgalyen/kimchi/internal/domain"
)

// resolver is the minimal net capability mailprobe needs; swapped out
// in tests for a deterministic fake.
type resolver interface {
	LookupMX(ctx context.Context, domainName string) ([]*net.MX, error)
}

// dialer issues the actual SMTP conversation; swapped out in tests.
type dialer interface {
	probe(ctx context.Context, host, local, domainName string, timeout time.Duration) (accepted bool, definitiveRefusal bool, err error)
}

// Prober implements domain.MailProber.
type Prober struct {
	resolver resolver
	dialer   dialer
}

// New builds a Prober using net.DefaultResolver and a real SMTP
// dialer.
func New() *Prober {
	return &Prober{resolver: net.DefaultResolver, dialer: smtpDialer{}}
}

// Probe implements spec §4.5's mail classification: a reachable MX
// that accepts RCPT TO maps to Ok(250); a definitive 5xx refusal maps
// to Failed(mail); anything ambiguous (no MX response, greylisting,
// a server that never replies conclusively) maps to Ok(0), since SMTP
// verification is inherently unreliable and a false Failed is worse
// than a false Ok.
func (p *Prober) Probe(ctx context.Context, local, domainName string, timeout int) (domain.Response, error) {
	uri := domain.Uri{Kind: domain.KindMail, Raw: fmt.Sprintf("%s@%s", local, domainName), Local: local, Domain: domainName}

	if !validAddressSyntax(local, domainName) {
		return domain.Response{Uri: uri, Status: domain.StatusFailed, Reason: "mail"}, nil
	}

	td := time.Duration(timeout) * time.Second
	if td <= 0 {
		td = 20 * time.Second
	}

	mxs, err := p.resolver.LookupMX(ctx, domainName)
	if err != nil || len(mxs) == 0 {
		return domain.Response{Uri: uri, Status: domain.StatusOk, Code: 0}, nil
	}
	sort.Slice(mxs, func(i, j int) bool { return mxs[i].Pref < mxs[j].Pref })

	accepted, refused, err := p.dialer.probe(ctx, mxs[0].Host, local, domainName, td)
	if err != nil {
		return domain.Response{Uri: uri, Status: domain.StatusOk, Code: 0}, nil
	}
	if refused {
		return domain.Response{Uri: uri, Status: domain.StatusFailed, Reason: "mail"}, nil
	}
	if accepted {
		return domain.Response{Uri: uri, Status: domain.StatusOk, Code: 250}, nil
	}
	return domain.Response{Uri: uri, Status: domain.StatusOk, Code: 0}, nil
}

func validAddressSyntax(local, domainName string) bool {
	if local == "" || domainName == "" {
		return false
	}
	_, err := mail.ParseAddress(fmt.Sprintf("%s@%s", local, domainName))
	return err == nil
}
