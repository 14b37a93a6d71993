package extractor

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wgalyen/kimchi/internal/domain"
)

// extractMarkdown walks the CommonMark AST emitting link/image
// destinations and autolinks in document order. Raw HTML blocks and
// inline HTML encountered during the walk are re-fed to the HTML
// extractor, per spec §4.2.
func extractMarkdown(content []byte, base string) ([]domain.RawLink, error) {
	reader := text.NewReader(content)
	doc := goldmark.DefaultParser().Parse(reader)

	var links []domain.RawLink
	var htmlBlocks []string

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Link:
			links = append(links, domain.RawLink{Value: string(node.Destination), Base: base, Kind: domain.Markdown})
		case *ast.Image:
			links = append(links, domain.RawLink{Value: string(node.Destination), Base: base, Kind: domain.Markdown})
		case *ast.AutoLink:
			links = append(links, domain.RawLink{Value: string(node.URL(content)), Base: base, Kind: domain.Markdown})
		case *ast.HTMLBlock:
			var buf bytes.Buffer
			for i := 0; i < node.Lines().Len(); i++ {
				seg := node.Lines().At(i)
				buf.Write(seg.Value(content))
			}
			htmlBlocks = append(htmlBlocks, buf.String())
		case *ast.RawHTML:
			var buf bytes.Buffer
			segs := node.Segments
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				buf.Write(seg.Value(content))
			}
			htmlBlocks = append(htmlBlocks, buf.String())
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	for _, block := range htmlBlocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		sub, err := ExtractFromHTML([]byte(block), base)
		if err != nil {
			continue
		}
		links = append(links, sub...)
	}

	return links, nil
}
