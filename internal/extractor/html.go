package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wgalyen/kimchi/internal/domain"
)

// htmlAttrTable is the fixed tag/attribute table from spec §4.2.
var htmlAttrTable = []struct {
	selector string
	attr     string
}{
	{"a", "href"},
	{"img", "src"},
	{"img", "srcset"},
	{"link", "href"},
	{"script", "src"},
	{"iframe", "src"},
	{"source", "src"},
	{"source", "srcset"},
	{"object", "data"},
	{"video", "poster"},
	{"video", "src"},
	{"audio", "src"},
	{"form", "action"},
}

// extractHTML walks the DOM in document order collecting every
// attribute named in the fixed table. srcset values are split on
// commas, each candidate trimmed down to its URL portion.
func extractHTML(doc *goquery.Document, base string) []domain.RawLink {
	var links []domain.RawLink

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		for _, entry := range htmlAttrTable {
			if entry.selector != tag {
				continue
			}
			val, ok := sel.Attr(entry.attr)
			if !ok {
				continue
			}
			if entry.attr == "srcset" {
				links = append(links, parseSrcset(val, base)...)
				continue
			}
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			links = append(links, domain.RawLink{Value: val, Base: base, Kind: domain.HTML})
		}
	})

	return links
}

// parseSrcset splits a srcset attribute on commas and trims each
// candidate to its URL portion (dropping the descriptor, e.g. "2x" or
// "480w").
func parseSrcset(val, base string) []domain.RawLink {
	var links []domain.RawLink
	for _, candidate := range strings.Split(val, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		links = append(links, domain.RawLink{Value: fields[0], Base: base, Kind: domain.HTML})
	}
	return links
}
