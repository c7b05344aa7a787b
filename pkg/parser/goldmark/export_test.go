package goldmark_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtouch/pkg/config"
	"github.com/yaklabco/mdtouch/pkg/parser/goldmark"
)

func wikiExporter() *goldmark.Exporter {
	return goldmark.New(goldmark.Options{
		WikiLinks:     true,
		WikiBaseURL:   "/wiki/",
		WikiExtension: ".html",
	})
}

func TestExporter_HTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nhello *world*\n",
			want: []string{"<h1>Title</h1>", "<p>hello <em>world</em></p>"},
		},
		{
			name: "strikethrough",
			src:  "~~gone~~\n",
			want: []string{"<del>gone</del>"},
		},
		{
			name: "wiki link",
			src:  "see [[Home]] now\n",
			want: []string{`<p>see <a class="wikilink" href="/wiki/Home.html">Home</a> now</p>`},
		},
		{
			name: "wiki link with space",
			src:  "[[My Page]]\n",
			want: []string{`href="/wiki/My%20Page.html">My Page</a>`},
		},
		{
			name: "wiki link escapes markup",
			src:  "[[a&b]]\n",
			want: []string{`href="/wiki/a&amp;b.html">a&amp;b</a>`},
		},
		{
			name: "empty wiki link stays text",
			src:  "[[]]\n",
			want: []string{"<p>[[]]</p>"},
		},
		{
			name: "regular link still works",
			src:  "[docs](https://example.com)\n",
			want: []string{`<a href="https://example.com">docs</a>`},
		},
		{
			name: "fenced code",
			src:  "```go\nx := 1\n```\n",
			want: []string{`<pre><code class="language-go">x := 1`},
		},
	}

	exporter := wikiExporter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := exporter.HTML(context.Background(), tt.src)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestExporter_WikiLinksDisabled(t *testing.T) {
	t.Parallel()

	got, err := goldmark.New(goldmark.Options{}).HTML(context.Background(), "[[Home]]\n")
	require.NoError(t, err)
	assert.Equal(t, "<p>[[Home]]</p>\n", got)
}

func TestExporter_XHTML(t *testing.T) {
	t.Parallel()

	got, err := goldmark.New(goldmark.Options{XHTML: true}).HTML(context.Background(), "---\n")
	require.NoError(t, err)
	assert.Equal(t, "<hr />\n", got)
}

func TestExporter_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wikiExporter().HTML(ctx, "# x\n")
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Export.WikiBaseURL = "https://wiki.example/"

	opts := goldmark.OptionsFromConfig(cfg)
	assert.True(t, opts.WikiLinks)
	assert.Equal(t, "https://wiki.example/", opts.WikiBaseURL)
	assert.Equal(t, config.DefaultWikiExtension, opts.WikiExtension)

	cfg.WikiLinks = config.Bool(false)
	assert.False(t, goldmark.OptionsFromConfig(cfg).WikiLinks)
}
