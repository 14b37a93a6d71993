// Package classifier maps raw transport outcomes to the Classifier's
// StatusKind verdict, per spec §4.6: HTTP status classification
// (including the accepted_status override), FileRef existence, and
// redirect-limit overflow.
package classifier

import "github.com/wgalyen/kimchi/internal/domain"

// ClassifyHTTP maps an HTTP status code to Ok or Failed. accepted is
// additive to the default 2xx rule, not a replacement for it: a code in
// accepted is Ok irrespective of range, and a 2xx code is still Ok even
// when accepted is non-empty and doesn't list it.
func ClassifyHTTP(code int, accepted map[int]struct{}) domain.StatusKind {
	if _, ok := accepted[code]; ok {
		return domain.StatusOk
	}
	if code >= 200 && code < 300 {
		return domain.StatusOk
	}
	return domain.StatusFailed
}

// Reclassify re-derives resp.Status from resp.Code using accepted,
// leaving non-HTTP outcomes (Timeout, Excluded, Redirected) untouched.
func Reclassify(resp domain.Response, accepted map[int]struct{}) domain.Response {
	if resp.Status != domain.StatusOk && resp.Status != domain.StatusFailed {
		return resp
	}
	resp.Status = ClassifyHTTP(resp.Code, accepted)
	if resp.Status == domain.StatusFailed && resp.Reason == "" {
		resp.Reason = "http_status"
	}
	return resp
}

// TooManyRedirects builds the terminal Failed(redirect_limit)
// response for a chain that exceeded max_redirects.
func TooManyRedirects(uri domain.Uri, attempts int) domain.Response {
	return domain.Response{Uri: uri, Status: domain.StatusFailed, Reason: "redirect_limit", Attempts: attempts}
}

// FileRefResult builds the terminal response for a FileRef check:
// Ok(0) when the path exists, Failed(missing_file) otherwise.
func FileRefResult(uri domain.Uri, exists bool) domain.Response {
	if exists {
		return domain.Response{Uri: uri, Status: domain.StatusOk}
	}
	return domain.Response{Uri: uri, Status: domain.StatusFailed, Reason: "missing_file"}
}
