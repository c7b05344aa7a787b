package goldmark

import (
	"bytes"
	"net/url"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// wikiLinkPriority runs the wiki-link parser just before goldmark's link parser.
const wikiLinkPriority = 199

// KindWikiLink is the node kind of [[Name]] links.
var KindWikiLink = ast.NewNodeKind("WikiLink")

// WikiLink is an inline [[Name]] link. Its single child is the name text.
type WikiLink struct {
	ast.BaseInline

	Target []byte
}

// Kind implements ast.Node.
func (n *WikiLink) Kind() ast.NodeKind {
	return KindWikiLink
}

// Dump implements ast.Node.
func (n *WikiLink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Target": string(n.Target)}, nil)
}

var (
	wikiOpen  = []byte("[[")
	wikiClose = []byte("]]")
)

type wikiLinkParser struct{}

func (wikiLinkParser) Trigger() []byte {
	return []byte{'['}
}

// Parse matches a non-empty, single-line name without brackets between
// "[[" and "]]".
func (wikiLinkParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if !bytes.HasPrefix(line, wikiOpen) {
		return nil
	}

	end := bytes.Index(line[len(wikiOpen):], wikiClose)
	if end <= 0 {
		return nil
	}
	name := line[len(wikiOpen) : len(wikiOpen)+end]
	if bytes.ContainsAny(name, "[]\r\n") {
		return nil
	}

	start := seg.Start + len(wikiOpen)
	link := &WikiLink{Target: append([]byte(nil), name...)}
	link.AppendChild(link, ast.NewTextSegment(text.NewSegment(start, start+len(name))))

	block.Advance(len(wikiOpen) + end + len(wikiClose))
	return link
}

type wikiLinkRenderer struct {
	baseURL   string
	extension string
}

func (r *wikiLinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindWikiLink, r.render)
}

func (r *wikiLinkRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}

	link, ok := node.(*WikiLink)
	if !ok {
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a class="wikilink" href="`)
	_, _ = w.WriteString(html.EscapeString(r.href(string(link.Target))))
	_, _ = w.WriteString(`">`)
	return ast.WalkContinue, nil
}

func (r *wikiLinkRenderer) href(target string) string {
	return r.baseURL + url.PathEscape(target) + r.extension
}

// wikiLinks is the goldmark extension that adds [[Name]] links.
type wikiLinks struct {
	baseURL   string
	extension string
}

func (e *wikiLinks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(wikiLinkParser{}, wikiLinkPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&wikiLinkRenderer{baseURL: e.baseURL, extension: e.extension}, wikiLinkPriority),
	))
}
