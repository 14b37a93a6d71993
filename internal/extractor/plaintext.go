package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/wgalyen/kimchi/internal/domain"
)

// plaintextURLRegex is a conservative http(s):// scanner; it does not
// attempt the heuristic punctuation trimming full linkify libraries do,
// per spec §4.2.
var plaintextURLRegex = regexp.MustCompile(`https?://[^\s<>"']+`)

var plaintextEmailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// trailingPunct is stripped from the end of a bare URL match, per spec
// §4.2's "conservative, no heuristic punctuation trimming beyond
// trailing .,;:)]>".
const trailingPunct = ".,;:)]>"

type positionedMatch struct {
	start int
	value string
}

// extractPlaintext scans raw bytes for http(s):// URLs and bare emails,
// preserving document order across both kinds.
func extractPlaintext(content []byte, base string) []domain.RawLink {
	text := string(content)
	var matches []positionedMatch

	for _, idx := range plaintextURLRegex.FindAllStringIndex(text, -1) {
		value := strings.TrimRight(text[idx[0]:idx[1]], trailingPunct)
		if value == "" {
			continue
		}
		matches = append(matches, positionedMatch{start: idx[0], value: value})
	}
	for _, idx := range plaintextEmailRegex.FindAllStringIndex(text, -1) {
		matches = append(matches, positionedMatch{start: idx[0], value: text[idx[0]:idx[1]]})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	links := make([]domain.RawLink, 0, len(matches))
	for _, m := range matches {
		links = append(links, domain.RawLink{Value: m.value, Base: base, Kind: domain.Plaintext})
	}
	return links
}
