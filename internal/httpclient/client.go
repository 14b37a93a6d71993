// Package httpclient implements the shared, pooled HTTP capability the
// Checker dispatches Web requests through. It wraps the donor's
// stealth tls-client transport, generalized from a single hard-coded
// fingerprint into a configurable client driven entirely by
// domain.Request.
//
// Execute performs exactly one hop: redirects are requested with
// tls_client.WithNotFollowRedirects so the Checker can walk the
// redirect chain itself, re-running the Policy Engine at every hop
// (spec §4.5/§9). A 3xx response is returned as
// domain.StatusRedirected with FinalURL set to the Location header;
// the Checker decides whether and how to follow it.
package httpclient

import (
	"context"
	"io"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/cenkalti/backoff/v4"

	"github.com/wgalyen/kimchi/internal/domain"
)

// Client is the shared HttpClient implementation. One Client is
// created per run and shared read-only across every check task.
type Client struct {
	tlsClient tls_client.HttpClient
}

// Options configures a new Client.
type Options struct {
	TimeoutSeconds uint32
	InsecureTLS    bool
	MaxAttempts    int
}

// New builds a Client. InsecureTLS disables TLS certificate
// verification, per spec §4.5 "allow_insecure_tls disables it".
func New(opts Options) (*Client, error) {
	timeout := time.Duration(opts.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithRandomTLSExtensionOrder(),
		tls_client.WithNotFollowRedirects(),
	}
	if opts.InsecureTLS {
		tlsOpts = append(tlsOpts, tls_client.WithInsecureSkipVerify())
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{tlsClient: tlsClient}, nil
}

// Execute performs one HTTP hop with the retry schedule applied for
// transient failures, per spec §4.5/§9.
func (c *Client) Execute(ctx context.Context, req domain.Request) (domain.Response, error) {
	start := time.Now()
	retrier := NewRetrier(DefaultSchedule(3))
	var lastResp domain.Response
	attempts := 0

	err := retrier.Retry(ctx, func() (int, error) {
		attempts++
		resp, retryAfter, doErr := c.doOnce(ctx, req)
		lastResp = resp
		if doErr != nil {
			if !domain.IsRetryable(doErr) {
				return 0, backoff.Permanent(doErr)
			}
			return 0, doErr
		}
		if domain.IsTransientStatus(resp.Code) {
			return retryAfter, &domain.HTTPStatusError{StatusCode: resp.Code, RetryAfter: retryAfter}
		}
		return 0, nil
	})

	lastResp.Attempts = attempts
	lastResp.Elapsed = time.Since(start)

	if err != nil && lastResp.Code == 0 {
		return classifyTransportError(req.Uri, err, attempts, time.Since(start)), nil
	}

	return lastResp, nil
}

// doOnce performs a single request/response round trip with no
// automatic retry; method, headers, basic auth, bearer token and
// HEAD->GET transparent retry on 405/501 are all applied here.
func (c *Client) doOnce(ctx context.Context, req domain.Request) (domain.Response, int, error) {
	resp, retryAfter, err := c.roundTrip(ctx, req, string(req.Method))
	if err != nil {
		return domain.Response{}, 0, err
	}

	if req.Method == domain.MethodHead && (resp.Code == 405 || resp.Code == 501) {
		return c.roundTrip(ctx, req, string(domain.MethodGet))
	}

	return resp, retryAfter, nil
}

func (c *Client) roundTrip(ctx context.Context, req domain.Request, method string) (domain.Response, int, error) {
	targetURL := req.Uri.Raw

	httpReq, err := fhttp.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return domain.Response{}, 0, &domain.ProtocolError{Uri: targetURL, Err: err}
	}

	httpReq.Header.Set("User-Agent", req.UserAgent)
	httpReq.Header.Set("Accept-Encoding", "gzip")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.BasicAuth != nil {
		httpReq.SetBasicAuth(req.BasicAuth.User, req.BasicAuth.Pass)
	}
	if req.BearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.BearerToken)
	}

	resp, err := c.tlsClient.Do(httpReq)
	if err != nil {
		return domain.Response{}, 0, classifyDoError(targetURL, err)
	}
	defer resp.Body.Close()

	out := domain.Response{Uri: req.Uri, Code: resp.StatusCode}

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		io.Copy(io.Discard, resp.Body)
		out.Status = domain.StatusRedirected
		out.FinalURL = resp.Header.Get("Location")
		return out, 0, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Response{}, 0, &domain.ProtocolError{Uri: targetURL, Err: err}
	}
	out.Body = body
	out.ContentType = resp.Header.Get("Content-Type")

	retryAfter := 0
	if resp.StatusCode == 429 || resp.StatusCode == 503 {
		retryAfter = ParseRetryAfter(resp.Header.Get("Retry-After"))
	}

	out.Status = classifyStatus(resp.StatusCode)
	return out, retryAfter, nil
}

func classifyStatus(code int) domain.StatusKind {
	if code >= 200 && code < 300 {
		return domain.StatusOk
	}
	return domain.StatusFailed
}
