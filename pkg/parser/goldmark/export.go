// Package goldmark exports mdtouch documents to HTML with the goldmark library.
package goldmark

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/mdtouch/pkg/config"
)

// Options configures an Exporter.
type Options struct {
	WikiLinks     bool
	WikiBaseURL   string
	WikiExtension string
	// XHTML renders void elements as <br />.
	XHTML bool
}

// OptionsFromConfig builds export options from the effective configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		WikiLinks:     cfg.WikiLinksEnabled(),
		WikiBaseURL:   cfg.Export.WikiBaseURL,
		WikiExtension: cfg.Export.WikiExtension,
	}
}

// Exporter converts Markdown to an HTML fragment.
// An Exporter is safe for concurrent use.
type Exporter struct {
	md goldmark.Markdown
}

// New creates an Exporter with GitHub-flavored extensions enabled.
func New(opts Options) *Exporter {
	extensions := []goldmark.Extender{extension.GFM}
	if opts.WikiLinks {
		extensions = append(extensions, &wikiLinks{baseURL: opts.WikiBaseURL, extension: opts.WikiExtension})
	}

	var rendererOpts []renderer.Option
	if opts.XHTML {
		rendererOpts = append(rendererOpts, gmhtml.WithXHTML())
	}

	return &Exporter{
		md: goldmark.New(
			goldmark.WithExtensions(extensions...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Convert writes the HTML rendering of src to w.
func (e *Exporter) Convert(ctx context.Context, src []byte, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}
	if err := e.md.Convert(src, w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// HTML returns the HTML rendering of text.
func (e *Exporter) HTML(ctx context.Context, text string) (string, error) {
	var buf bytes.Buffer
	if err := e.Convert(ctx, []byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
