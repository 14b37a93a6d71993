// Package resolver implements the Input Resolver: it turns a single CLI
// input token into a domain.Source, or a SkippedInput warning, or a
// fatal domain.InputError.
package resolver

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/wgalyen/kimchi/internal/domain"
	"github.com/wgalyen/kimchi/internal/utils"
)

// Resolver turns input tokens into Sources. FetchClient is the shared
// HttpClient used for the one-shot fetch of a raw URL input; it is
// never subject to Policy Engine filtering (spec §4.1: "fetch itself
// not counted as a check").
type Resolver struct {
	FetchClient       domain.HttpClient
	GlobIgnoreCase    bool
	SkipMissingInputs bool
	BaseURL           string // spec §3: stdin's Base is absent unless --base-url is supplied
}

// New builds a Resolver.
func New(client domain.HttpClient, globIgnoreCase, skipMissing bool, baseURL string) *Resolver {
	return &Resolver{FetchClient: client, GlobIgnoreCase: globIgnoreCase, SkipMissingInputs: skipMissing, BaseURL: baseURL}
}

// Result is the outcome of resolving one token: at most one of Sources,
// Skipped or Err is meaningful. A glob expands to zero or more Sources.
type Result struct {
	Sources []domain.Source
	Skipped string // warning message, set only when the token was skipped
	Err     error
}

// Resolve implements the priority order from spec §4.1: "-" → stdin;
// absolute URL → fetch; glob metacharacters → expansion; else → path.
func (r *Resolver) Resolve(ctx context.Context, token string) Result {
	switch {
	case token == "-":
		return r.resolveStdin()
	case isAbsoluteURL(token):
		return r.resolveURL(ctx, token)
	case containsGlobMeta(token):
		return r.resolveGlob(token)
	default:
		return r.resolvePath(token)
	}
}

func (r *Resolver) resolveStdin() Result {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return Result{Err: &domain.InputError{Token: "-", Err: err}}
	}
	src := domain.Source{
		Origin:  domain.OriginStdin,
		Token:   "-",
		Content: data,
		Base:    r.BaseURL,
		Kind:    sniffPlaintextOrMarkup(data),
	}
	return Result{Sources: []domain.Source{src}}
}

func (r *Resolver) resolveURL(ctx context.Context, token string) Result {
	u, err := url.Parse(token)
	if err != nil {
		return Result{Err: &domain.InputError{Token: token, Err: err}}
	}

	resp, err := r.FetchClient.Execute(ctx, domain.Request{
		Uri: domain.Uri{
			Kind:   domain.KindWeb,
			Raw:    token,
			Scheme: u.Scheme,
			Host:   u.Hostname(),
			Port:   u.Port(),
			Path:   u.Path,
			Query:  u.RawQuery,
		},
		Method: domain.MethodGet,
	})
	if err != nil || resp.Status != domain.StatusOk {
		if r.SkipMissingInputs {
			return Result{Skipped: "could not fetch " + token}
		}
		if err == nil {
			err = &domain.NetworkError{Uri: token, Category: "fetch", Err: io.ErrUnexpectedEOF}
		}
		return Result{Err: &domain.InputError{Token: token, Err: err}}
	}

	src := domain.Source{
		Origin:  domain.OriginRemoteFetched,
		Token:   token,
		Base:    token,
		Content: resp.Body,
		Kind:    ClassifyContentType(resp.ContentType),
	}
	return Result{Sources: []domain.Source{src}}
}

func (r *Resolver) resolveGlob(pattern string) Result {
	expanded := utils.ExpandPath(pattern)
	dir, globPattern := filepath.Split(expanded)
	if dir == "" {
		dir = "."
	}

	matchPattern := globPattern
	if r.GlobIgnoreCase {
		matchPattern = strings.ToLower(matchPattern)
	}

	compiled, err := glob.Compile(matchPattern, '/')
	if err != nil {
		return Result{Err: &domain.InputError{Token: pattern, Err: err}}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if r.SkipMissingInputs {
			return Result{Skipped: "glob directory not found: " + dir}
		}
		return Result{Err: &domain.InputError{Token: pattern, Err: err}}
	}

	var sources []domain.Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		candidate := name
		if r.GlobIgnoreCase {
			candidate = strings.ToLower(name)
		}
		if !compiled.Match(candidate) {
			continue
		}
		path := filepath.Join(dir, name)
		res := r.resolvePath(path)
		sources = append(sources, res.Sources...)
		if res.Err != nil {
			return res
		}
	}

	return Result{Sources: sources}
}

func (r *Resolver) resolvePath(token string) Result {
	path := utils.ExpandPath(token)

	data, err := os.ReadFile(path)
	if err != nil {
		if r.SkipMissingInputs {
			return Result{Skipped: "input not found: " + token}
		}
		return Result{Err: &domain.InputError{Token: token, Err: err}}
	}

	src := domain.Source{
		Origin:  domain.OriginLocalFile,
		Token:   token,
		Content: data,
		Kind:    inferKindFromExt(path),
	}
	return Result{Sources: []domain.Source{src}}
}

func isAbsoluteURL(token string) bool {
	u, err := url.Parse(token)
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Scheme == "http" || u.Scheme == "https")
}

func containsGlobMeta(token string) bool {
	return strings.ContainsAny(token, "*?[")
}

func inferKindFromExt(path string) domain.InputKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return domain.Markdown
	case ".html", ".htm":
		return domain.HTML
	default:
		return domain.Plaintext
	}
}

// sniffPlaintextOrMarkup makes a best-effort guess at stdin's grammar
// when no filename extension is available to infer it from.
func sniffPlaintextOrMarkup(data []byte) domain.InputKind {
	trimmed := strings.TrimSpace(string(data))
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		return domain.HTML
	}
	return domain.Plaintext
}

// ClassifyContentType maps an HTTP Content-Type header to an InputKind
// for a fetched Website source, per spec §4.1's Markdown/HTML/plaintext
// fallback.
func ClassifyContentType(contentType string) domain.InputKind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "text/html"):
		return domain.HTML
	case strings.Contains(ct, "text/markdown"), strings.Contains(ct, "text/x-markdown"):
		return domain.Markdown
	default:
		return domain.Plaintext
	}
}
