package crawler

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/wikiphilosophy/internal/model"
	"golang.org/x/net/html"
)

const (
	// DefaultParagraphSelector selects body paragraphs of a MediaWiki article.
	DefaultParagraphSelector = "#mw-content-text p"

	// fallbackParagraphSelector is used when the page has no MediaWiki
	// content container.
	fallbackParagraphSelector = "body p"
)

// Parser converts article HTML into a model.Article.
type Parser struct {
	// baseURL resolves relative links; it is the URL the page was served from.
	baseURL *url.URL

	// paragraphSelector is the CSS selector of body paragraphs.
	paragraphSelector string
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithParagraphSelector sets the CSS selector for body paragraphs.
func WithParagraphSelector(selector string) ParserOption {
	return func(p *Parser) {
		if selector != "" {
			p.paragraphSelector = selector
		}
	}
}

// NewParser creates a Parser for a page served from baseURL.
func NewParser(baseURL string, opts ...ParserOption) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	p := &Parser{
		baseURL:           u,
		paragraphSelector: DefaultParagraphSelector,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse reads HTML and returns the article title and its body paragraphs in
// document order. Each paragraph has the paragraph element as its single
// root, and every href is resolved against the base URL and canonicalized.
// The returned Article has no URL or Digest; the fetcher fills them in.
func (p *Parser) Parse(content io.Reader) (*model.Article, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	selection := doc.Find(p.paragraphSelector)
	if selection.Length() == 0 && p.paragraphSelector == DefaultParagraphSelector {
		selection = doc.Find(fallbackParagraphSelector)
	}

	article := &model.Article{
		Title:      extractTitle(doc),
		Paragraphs: make([]model.Paragraph, 0, selection.Length()),
	}
	for _, n := range selection.Nodes {
		if root := p.convert(n); root != nil {
			article.Paragraphs = append(article.Paragraphs, model.Paragraph{root})
		}
	}

	return article, nil
}

// extractTitle prefers the MediaWiki heading and falls back to <title>.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("#firstHeading").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// convert copies an html.Node subtree into a model.Node tree. Comments,
// doctypes and other non-content nodes are dropped.
func (p *Parser) convert(n *html.Node) *model.Node {
	switch n.Type {
	case html.TextNode:
		return model.NewText(n.Data)
	case html.ElementNode:
		attr := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			if a.Namespace != "" {
				continue
			}
			if a.Key == "href" {
				attr[a.Key] = p.resolveURL(a.Val)
				continue
			}
			attr[a.Key] = a.Val
		}

		el := model.NewElement(n.Data, attr)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := p.convert(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	default:
		return nil
	}
}

// resolveURL resolves href against the base URL. Web links are returned in
// canonical form; other schemes (mailto:, javascript:) are returned resolved
// but otherwise untouched, and unparseable values become empty.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := p.baseURL.ResolveReference(ref)
	if canonical, err := model.CanonicalizeURL(resolved); err == nil {
		return canonical
	}
	return resolved.String()
}
