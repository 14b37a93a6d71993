// Package extractor implements the grammar-aware link extraction stage:
// given a domain.Source it emits an ordered sequence of domain.RawLink.
package extractor

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"

	"github.com/wgalyen/kimchi/internal/domain"
)

// Extract dispatches on src.Kind to the matching grammar engine.
func Extract(src domain.Source) ([]domain.RawLink, error) {
	switch src.Kind {
	case domain.Markdown:
		return extractMarkdown(src.Content, src.Base)
	case domain.HTML:
		return ExtractFromHTML(src.Content, src.Base)
	default:
		return extractPlaintext(src.Content, src.Base), nil
	}
}

// ExtractFromHTML parses content as HTML and walks the fixed attribute
// table from spec §4.2. Exported so the Markdown extractor can re-feed
// inline HTML blocks to it.
func ExtractFromHTML(content []byte, base string) ([]domain.RawLink, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, &domain.ExtractError{Source: base, Err: err}
	}
	return extractHTML(doc, base), nil
}
