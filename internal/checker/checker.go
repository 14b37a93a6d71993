// Package checker implements the Checker: the bounded-concurrency
// dispatcher that turns each resolved Uri into a final Response,
// walking redirect chains, routing GitHub repository URLs to the
// GitHub API, and recovering from per-task panics (spec §4.5).
package checker

import (
	"context"
	"net/url"
	"os"

	"github.com/wgalyen/kimchi/internal/canonicalize"
	"github.com/wgalyen/kimchi/internal/classifier"
	"github.com/wgalyen/kimchi/internal/config"
	"github.com/wgalyen/kimchi/internal/domain"
	"github.com/wgalyen/kimchi/internal/githubclient"
	"github.com/wgalyen/kimchi/internal/policy"
	"github.com/wgalyen/kimchi/internal/utils"
)

// Checker dispatches one Uri at a time to the Web, GitHub or Mail
// backend its Kind selects, or to the filesystem for a FileRef.
type Checker struct {
	Web      domain.HttpClient
	GitHub   domain.GitHubClient
	Mail     domain.MailProber
	Cfg      *config.CheckerConfig
	Progress domain.ProgressReporter
}

// New builds a Checker. progress may be nil, in which case a
// domain.NoopProgressReporter is used.
func New(web domain.HttpClient, gh domain.GitHubClient, mail domain.MailProber, cfg *config.CheckerConfig, progress domain.ProgressReporter) *Checker {
	if progress == nil {
		progress = domain.NoopProgressReporter{}
	}
	return &Checker{Web: web, GitHub: gh, Mail: mail, Cfg: cfg, Progress: progress}
}

// indexedURI carries a Uri's position in the original input slice
// through the worker pool, whose result channel does not preserve
// submission order.
type indexedURI struct {
	idx int
	uri domain.Uri
}

// CheckAll dispatches every uri with admission bounded to
// Cfg.MaxConcurrency, preserving input order in the result slice.
func (c *Checker) CheckAll(ctx context.Context, uris []domain.Uri) []domain.Response {
	c.Progress.Total(len(uris))
	defer c.Progress.Finish()

	workers := int(c.Cfg.MaxConcurrency)
	if workers <= 0 {
		workers = 1
	}

	items := make([]indexedURI, len(uris))
	for i, u := range uris {
		items[i] = indexedURI{idx: i, uri: u}
	}

	pool := utils.NewPool[indexedURI](workers, c.checkOne)
	tasks, _ := pool.Process(ctx, items)

	responses := make([]domain.Response, len(uris))
	for _, t := range tasks {
		if resp, ok := t.Result.(domain.Response); ok {
			responses[t.Data.idx] = resp
		} else {
			responses[t.Data.idx] = domain.Response{Uri: t.Data.uri, Status: domain.StatusFailed, Reason: "internal"}
		}
		c.Progress.Increment()
	}
	return responses
}

// checkOne is the worker function handed to utils.Pool. A panic in
// any dispatch path is recovered here and surfaced as a normal
// Failed(internal) Response rather than crashing the run.
func (c *Checker) checkOne(ctx context.Context, item indexedURI) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.Response{Uri: item.uri, Status: domain.StatusFailed, Reason: "internal"}
		}
	}()
	return c.dispatch(ctx, item.uri), nil
}

func (c *Checker) dispatch(ctx context.Context, uri domain.Uri) domain.Response {
	if uri.Kind != domain.KindWeb {
		if decision := policy.Classify(uri, c.Cfg); !decision.Check {
			return domain.Response{Uri: uri, Status: domain.StatusExcluded, Reason: string(decision.Excluded)}
		}
	}
	switch uri.Kind {
	case domain.KindMail:
		resp, probeErr := c.Mail.Probe(ctx, uri.Local, uri.Domain, int(c.Cfg.TimeoutSeconds))
		if probeErr != nil {
			return domain.Response{Uri: uri, Status: domain.StatusFailed, Reason: probeErr.Error()}
		}
		resp.Uri = uri
		return resp
	case domain.KindFileRef:
		return c.checkFileRef(uri)
	default:
		return c.checkWeb(ctx, uri)
	}
}

func (c *Checker) checkFileRef(uri domain.Uri) domain.Response {
	_, err := os.Stat(uri.AbsolutePath)
	return classifier.FileRefResult(uri, err == nil)
}

// checkWeb re-runs the Policy Engine before the first attempt and
// again on every redirect hop, walks the chain up to max_redirects,
// routes github.com repository URLs through the GitHub API when a
// token is configured, and classifies the final status with the
// accepted_status override.
func (c *Checker) checkWeb(ctx context.Context, uri domain.Uri) domain.Response {
	decision := policy.Classify(uri, c.Cfg)
	if !decision.Check {
		return domain.Response{Uri: uri, Status: domain.StatusExcluded, Reason: string(decision.Excluded)}
	}

	if c.Cfg.GithubToken != "" && c.GitHub != nil {
		if owner, repo, ok := githubclient.IsGitHubRepoURL(uri); ok {
			resp, ghErr := c.GitHub.RepoExists(ctx, owner, repo)
			if ghErr == nil {
				resp.Uri = uri
				return resp
			}
		}
	}

	current := uri
	attempts := 0
	for {
		req := domain.Request{
			Uri:          current,
			Method:       c.Cfg.Method,
			Headers:      c.Cfg.Headers,
			MaxRedirects: int(c.Cfg.MaxRedirects),
			UserAgent:    c.Cfg.UserAgent,
			InsecureTLS:  c.Cfg.AllowInsecureTLS,
		}
		if c.Cfg.BasicAuth != nil {
			req.BasicAuth = &domain.BasicAuth{User: c.Cfg.BasicAuth.User, Pass: c.Cfg.BasicAuth.Pass}
		}

		resp, execErr := c.Web.Execute(ctx, req)
		if execErr != nil {
			return domain.Response{Uri: uri, Status: domain.StatusFailed, Reason: execErr.Error()}
		}

		if resp.Status != domain.StatusRedirected {
			resp = classifier.Reclassify(resp, c.Cfg.AcceptedStatusSet)
			resp.Uri = uri
			if current.Raw != uri.Raw {
				resp.FinalURL = current.Raw
			}
			return resp
		}

		attempts++
		if attempts > int(c.Cfg.MaxRedirects) {
			return classifier.TooManyRedirects(uri, attempts)
		}

		next, ok := resolveRedirect(current, resp.FinalURL)
		if !ok {
			return domain.Response{Uri: uri, Status: domain.StatusFailed, Reason: "invalid_redirect"}
		}

		hopDecision := policy.Classify(next, c.Cfg)
		if !hopDecision.Check {
			return domain.Response{Uri: uri, Status: domain.StatusExcluded, Reason: string(hopDecision.Excluded)}
		}

		current = next
	}
}

// resolveRedirect resolves a Location header (absolute or relative)
// against the hop it came from.
func resolveRedirect(current domain.Uri, location string) (domain.Uri, bool) {
	loc, err := url.Parse(location)
	if err != nil {
		return domain.Uri{}, false
	}
	base, err := url.Parse(current.Raw)
	if err != nil {
		return domain.Uri{}, false
	}
	resolved := base.ResolveReference(loc)
	if !resolved.IsAbs() {
		return domain.Uri{}, false
	}
	return canonicalize.FromURL(resolved), true
}
