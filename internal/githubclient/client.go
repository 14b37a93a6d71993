// Package githubclient probes repository existence through the GitHub
// REST API, used when a Web Uri targets github.com and a token is
// configured (spec §4.5's GitHub-aware dispatch).
package githubclient

import (
	"context"
	"fmt"
	"regexp"

	"github.com/wgalyen/kimchi/internal/domain"
)

// repoPathPattern matches "/{owner}/{repo}" or "/{owner}/{repo}/..." on
// github.com and www.github.com hosts.
var repoPathPattern = regexp.MustCompile(`^/([^/]+)/([^/]+)`)

// executor is the minimal capability githubclient needs from the
// shared transport; *httpclient.Client satisfies it.
type executor interface {
	Execute(ctx context.Context, req domain.Request) (domain.Response, error)
}

// Client probes GitHub repository existence via the REST v3 API.
type Client struct {
	http  executor
	token string
}

// New builds a Client. token is sent as a bearer credential on every
// request; an empty token still works against GitHub's unauthenticated
// rate limit.
func New(http executor, token string) *Client {
	return &Client{http: http, token: token}
}

// IsGitHubRepoURL reports whether uri targets a github.com repository
// page, and if so extracts the owner/repo pair.
func IsGitHubRepoURL(uri domain.Uri) (owner, repo string, ok bool) {
	if uri.Kind != domain.KindWeb {
		return "", "", false
	}
	if uri.Host != "github.com" && uri.Host != "www.github.com" {
		return "", "", false
	}
	m := repoPathPattern.FindStringSubmatch(uri.Path)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// RepoExists queries GET /repos/{owner}/{repo}. A 200 maps to Ok; a
// 404 maps to Failed(missing_repo); anything else is classified by the
// same HTTP status rules a Web check uses.
func (c *Client) RepoExists(ctx context.Context, owner, repo string) (domain.Response, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s", owner, repo)

	req := domain.Request{
		Uri:         domain.Uri{Kind: domain.KindWeb, Raw: apiURL, Scheme: "https", Host: "api.github.com", Path: "/repos/" + owner + "/" + repo},
		Method:      domain.MethodGet,
		Headers:     map[string]string{"Accept": "application/vnd.github+json"},
		BearerToken: c.token,
		UserAgent:   "kimchi",
	}

	resp, err := c.http.Execute(ctx, req)
	if err != nil {
		return resp, err
	}

	if resp.Code == 404 {
		resp.Status = domain.StatusFailed
		resp.Reason = "missing_repo"
	}

	return resp, nil
}
