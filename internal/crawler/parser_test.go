package crawler

import (
	"strings"
	"testing"

	"github.com/nao1215/wikiphilosophy/internal/model"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Java (programming language) - Wikipedia</title></head>
<body>
<h1 id="firstHeading">Java (programming language)</h1>
<div id="mw-content-text">
  <div class="hatnote"><p>Not a <a href="/wiki/Hatnote">hatnote</a></p></div>
  <p><b>Java</b> is a <a href="/wiki/High-level_programming_language">high-level</a>,
     <i><a href="/wiki/Latin">italic</a></i> language<!-- comment --> (see <a href="#History">below</a>).</p>
  <p>Second <a href="https://example.org/ext">external</a> and <a href="Object-oriented_programming">relative</a>.</p>
</div>
<p>Outside <a href="/wiki/Footer">footer</a></p>
</body></html>`

// TestParser tests article parsing.
func TestParser(t *testing.T) {
	t.Parallel()

	t.Run("extracts heading as title", func(t *testing.T) {
		t.Parallel()

		article := mustParse(t, "https://en.wikipedia.org/wiki/Java", articleHTML)
		if article.Title != "Java (programming language)" {
			t.Errorf("expected heading title, got %q", article.Title)
		}
	})

	t.Run("falls back to title element", func(t *testing.T) {
		t.Parallel()

		article := mustParse(t, "https://en.wikipedia.org/wiki/X", `<html><head><title> Plain </title></head><body><p>x</p></body></html>`)
		if article.Title != "Plain" {
			t.Errorf("expected 'Plain', got %q", article.Title)
		}
	})

	t.Run("keeps content paragraphs in document order", func(t *testing.T) {
		t.Parallel()

		article := mustParse(t, "https://en.wikipedia.org/wiki/Java", articleHTML)
		if len(article.Paragraphs) != 3 {
			t.Fatalf("expected 3 paragraphs, got %d", len(article.Paragraphs))
		}

		texts := []string{"Not a hatnote", "Java is a", "Second external"}
		for i, want := range texts {
			got := strings.Join(strings.Fields(article.Paragraphs[i].Text()), " ")
			if !strings.HasPrefix(got, want) {
				t.Errorf("paragraph %d: expected prefix %q, got %q", i, want, got)
			}
		}
	})

	t.Run("paragraph root is the p element", func(t *testing.T) {
		t.Parallel()

		article := mustParse(t, "https://en.wikipedia.org/wiki/Java", articleHTML)
		p := article.Paragraphs[1]
		if len(p) != 1 || !p[0].IsElement("p") {
			t.Fatalf("expected single p root, got %v", p)
		}
		if p[0].Parent() != nil {
			t.Error("expected paragraph root to have no parent")
		}
	})

	t.Run("resolves and canonicalizes links", func(t *testing.T) {
		t.Parallel()

		article := mustParse(t, "https://en.wikipedia.org/wiki/Java", articleHTML)

		var hrefs []string
		for _, p := range article.Paragraphs[1:] {
			for _, root := range p {
				root.Walk(func(n *model.Node) bool {
					if href, ok := n.GetAttr("href"); ok {
						hrefs = append(hrefs, href)
					}
					return true
				})
			}
		}

		want := []string{
			"https://en.wikipedia.org/wiki/High-level_programming_language",
			"https://en.wikipedia.org/wiki/Latin",
			"https://en.wikipedia.org/wiki/Java",
			"https://example.org/ext",
			"https://en.wikipedia.org/wiki/Object-oriented_programming",
		}
		if strings.Join(hrefs, "\n") != strings.Join(want, "\n") {
			t.Errorf("expected hrefs %v, got %v", want, hrefs)
		}
	})

	t.Run("drops comments", func(t *testing.T) {
		t.Parallel()

		article := mustParse(t, "https://en.wikipedia.org/wiki/Java", articleHTML)
		if strings.Contains(article.Paragraphs[1].Text(), "comment") {
			t.Error("expected comment to be dropped")
		}
	})

	t.Run("falls back to body paragraphs", func(t *testing.T) {
		t.Parallel()

		article := mustParse(t, "https://example.org/", `<html><body><p>one</p><div><p>two</p></div></body></html>`)
		if len(article.Paragraphs) != 2 {
			t.Errorf("expected 2 paragraphs, got %d", len(article.Paragraphs))
		}
	})

	t.Run("custom selector has no fallback", func(t *testing.T) {
		t.Parallel()

		parser, err := NewParser("https://example.org/", WithParagraphSelector("article p"))
		if err != nil {
			t.Fatalf("failed to create parser: %v", err)
		}
		article, err := parser.Parse(strings.NewReader(`<html><body><p>one</p></body></html>`))
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}
		if len(article.Paragraphs) != 0 {
			t.Errorf("expected no paragraphs, got %d", len(article.Paragraphs))
		}
	})

	t.Run("keeps non-web schemes resolved", func(t *testing.T) {
		t.Parallel()

		article := mustParse(t, "https://example.org/", `<html><body><p><a href="mailto:a@example.org">mail</a><a href="  ">blank</a></p></body></html>`)
		links := article.Paragraphs[0][0].Children
		if href, _ := links[0].GetAttr("href"); href != "mailto:a@example.org" {
			t.Errorf("expected mailto href kept, got %q", href)
		}
		if href, _ := links[1].GetAttr("href"); href != "" {
			t.Errorf("expected blank href, got %q", href)
		}
	})
}

func mustParse(t *testing.T, base, content string) *model.Article {
	t.Helper()

	parser, err := NewParser(base)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	article, err := parser.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return article
}
