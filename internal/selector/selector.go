package selector

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/nao1215/wikiphilosophy/internal/model"
)

const (
	linkTag   = "a"
	italicTag = "i"
	hrefAttr  = "href"
)

// ErrInvalidSite is returned by New when the site is not an absolute URL.
var ErrInvalidSite = errors.New("invalid site URL: expected absolute http(s) URL")

// Verdict is the result of checking one candidate element.
type Verdict int

const (
	// Valid means the candidate may be selected.
	Valid Verdict = iota
	// NotLink means the candidate is not a hyperlink element.
	NotLink
	// Italic means the candidate sits inside italic text.
	Italic
	// External means the candidate points outside the encyclopedia host.
	External
)

// String returns the diagnostic wording for the verdict.
func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case NotLink:
		return "is not link"
	case Italic:
		return "is italic"
	case External:
		return "is an external link"
	default:
		return "unknown"
	}
}

// Selector selects the first valid link of a paragraph.
// A Selector holds no per-call state and is safe for concurrent use.
type Selector struct {
	// site is the encyclopedia base URL; relative links resolve against it
	// and its host decides what counts as external.
	site *url.URL

	logger *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger that receives per-node diagnostics at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

// New creates a Selector for the encyclopedia at site, e.g.
// "https://en.wikipedia.org".
func New(site string, opts ...Option) (*Selector, error) {
	u, err := url.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSite, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidSite
	}

	s := &Selector{site: u}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Host returns the encyclopedia host.
func (s *Selector) Host() string {
	return s.site.Host
}

// SelectFirstValidLink walks the paragraph in pre-order document order and
// returns the canonical target of the first valid link found while no
// parenthesis is open. It returns false when the paragraph has none.
func (s *Selector) SelectFirstValidLink(p model.Paragraph) (string, bool) {
	openParens := 0

	// Children are pushed in reverse so they pop in document order.
	stack := make([]*model.Node, 0, len(p))
	for i := len(p) - 1; i >= 0; i-- {
		stack = append(stack, p[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Type {
		case model.TextNode:
			openParens += CountParentheses(n.Data)
			s.logger.Debug("checking text", "text", n.Data, "openParens", openParens)
		case model.ElementNode:
			if openParens == 0 {
				if target, ok := s.candidate(n); ok {
					return target, true
				}
			}
		}

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	return "", false
}

// candidate checks n and, when valid, returns its resolved target.
func (s *Selector) candidate(n *model.Node) (string, bool) {
	verdict, target := s.check(n)
	if verdict != Valid {
		if verdict != NotLink {
			s.logger.Debug("skipping candidate", "element", n.String(), "verdict", verdict.String())
		}
		return "", false
	}
	return target, true
}

// Check returns the verdict for a candidate element.
func (s *Selector) Check(n *model.Node) Verdict {
	v, _ := s.check(n)
	return v
}

func (s *Selector) check(n *model.Node) (Verdict, string) {
	if !IsLink(n) {
		return NotLink, ""
	}
	if IsItalic(n) {
		return Italic, ""
	}
	target, ok := s.resolve(n)
	if !ok || !model.SameHost(target, s.site.Host) {
		return External, ""
	}
	return Valid, target
}

// resolve returns the canonical absolute target of a link element.
func (s *Selector) resolve(n *model.Node) (string, bool) {
	href, ok := n.GetAttr(hrefAttr)
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	target, err := model.CanonicalizeURL(s.site.ResolveReference(ref))
	if err != nil {
		return "", false
	}
	return target, true
}

// IsLink reports whether n is a hyperlink element.
func IsLink(n *model.Node) bool {
	return n.IsElement(linkTag)
}

// IsItalic reports whether n or any of its ancestors is an italic element.
func IsItalic(n *model.Node) bool {
	for e := n; e != nil; e = e.Parent() {
		if e.IsElement(italicTag) {
			return true
		}
	}
	return false
}

// CountParentheses returns the number of "(" minus the number of ")" in text.
func CountParentheses(text string) int {
	count := 0
	for _, r := range text {
		switch r {
		case '(':
			count++
		case ')':
			count--
		}
	}
	return count
}
