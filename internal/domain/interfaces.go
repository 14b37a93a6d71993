package domain

import "context"

// HttpClient is the shared transport capability the Checker dispatches
// Web requests through. The real implementation wraps a pooled,
// stealth-fingerprinted client; tests inject a deterministic fake.
type HttpClient interface {
	Execute(ctx context.Context, req Request) (Response, error)
}

// MailProber performs the SMTP syntactic + MX + RCPT probe for Mail
// Uris.
type MailProber interface {
	Probe(ctx context.Context, local, domain string, timeout int) (Response, error)
}

// GitHubClient probes repository existence through the GitHub REST API,
// used when a Web Uri targets github.com and a token is configured.
type GitHubClient interface {
	RepoExists(ctx context.Context, owner, repo string) (Response, error)
}

// ProgressReporter receives a monotonically increasing count of
// completed checks. Implementations must be safe to call concurrently.
type ProgressReporter interface {
	Increment()
	Total(n int)
	Finish()
}

// NoopProgressReporter discards all progress events.
type NoopProgressReporter struct{}

func (NoopProgressReporter) Increment() {}
func (NoopProgressReporter) Total(int)  {}
func (NoopProgressReporter) Finish()    {}
