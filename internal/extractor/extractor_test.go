package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgalyen/kimchi/internal/domain"
)

func TestExtract_Markdown(t *testing.T) {
	src := domain.Source{
		Kind: domain.Markdown,
		Content: []byte("# Title\n\n" +
			"See [example](https://example.com) and ![img](https://example.com/x.png).\n\n" +
			"<https://autolink.example.com>\n"),
	}

	links, err := Extract(src)
	require.NoError(t, err)

	var values []string
	for _, l := range links {
		values = append(values, l.Value)
	}
	assert.Contains(t, values, "https://example.com")
	assert.Contains(t, values, "https://example.com/x.png")
	assert.Contains(t, values, "https://autolink.example.com")
}

func TestExtract_MarkdownReFeedsInlineHTML(t *testing.T) {
	src := domain.Source{
		Kind: domain.Markdown,
		Content: []byte("Body text.\n\n" +
			"<div><a href=\"https://inline.example.com\">link</a></div>\n"),
	}

	links, err := Extract(src)
	require.NoError(t, err)

	var values []string
	for _, l := range links {
		values = append(values, l.Value)
	}
	assert.Contains(t, values, "https://inline.example.com")
}

func TestExtract_HTML(t *testing.T) {
	src := domain.Source{
		Kind: domain.HTML,
		Content: []byte(`<html><body>
			<a href="https://a.example.com">a</a>
			<img src="https://b.example.com/b.png">
			<img srcset="https://c.example.com/c1.png 1x, https://c.example.com/c2.png 2x">
			<form action="https://d.example.com/submit"></form>
		</body></html>`),
	}

	links, err := Extract(src)
	require.NoError(t, err)

	var values []string
	for _, l := range links {
		values = append(values, l.Value)
	}
	assert.Contains(t, values, "https://a.example.com")
	assert.Contains(t, values, "https://b.example.com/b.png")
	assert.Contains(t, values, "https://c.example.com/c1.png")
	assert.Contains(t, values, "https://c.example.com/c2.png")
	assert.Contains(t, values, "https://d.example.com/submit")
}

func TestExtract_Plaintext(t *testing.T) {
	src := domain.Source{
		Kind:    domain.Plaintext,
		Content: []byte("Visit https://example.com/docs. Contact me at person@example.com."),
	}

	links, err := Extract(src)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "https://example.com/docs", links[0].Value)
	assert.Equal(t, "person@example.com", links[1].Value)
}

func TestExtract_PlaintextTrimsTrailingPunctuation(t *testing.T) {
	src := domain.Source{
		Kind:    domain.Plaintext,
		Content: []byte("(see https://example.com/docs.)"),
	}

	links, err := Extract(src)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/docs", links[0].Value)
}
