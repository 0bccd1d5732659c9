package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/wikiphilosophy/internal/model"
)

// MarkdownWriter outputs reports in GitHub flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the run in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeAlert(md, run)
	w.writePath(md, run)
	w.writeParagraphChart(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.Run) {
	md.H1("Getting to Philosophy")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start", "`" + run.Start + "`"},
			{"Target", "`" + run.Target + "`"},
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", run.Duration().Round(time.Millisecond).String()},
			{"Pages", strconv.Itoa(len(run.Hops))},
			{"Outcome", w.outcomeText(run)},
		},
	})
	md.PlainText("")
}

// outcomeText returns the outcome decorated for the summary table.
func (w *MarkdownWriter) outcomeText(run *model.Run) string {
	switch {
	case run.State.Success():
		return "✅ " + outcomeLine(run)
	case run.State.Terminal():
		return "❌ " + outcomeLine(run)
	default:
		return "⏸️ " + outcomeLine(run)
	}
}

// writeAlert writes an alert describing how the walk ended.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, run *model.Run) {
	switch run.State {
	case model.StateSucceeded:
		md.Tip(fmt.Sprintf("Reached %s after %d page(s).", model.TitleFromURL(run.Target), len(run.Hops)))
	case model.StateFailedLoop:
		md.Warningf("The walk entered a loop at %s.", model.TitleFromURL(run.LoopAt))
	case model.StateFailedNoLink:
		md.Cautionf("%s has no valid link.", w.lastTitle(run))
	default:
		md.Note("The walk was interrupted before reaching a verdict.")
	}
	md.PlainText("")
}

// lastTitle returns the title of the last fetched page.
func (w *MarkdownWriter) lastTitle(run *model.Run) string {
	if len(run.Hops) == 0 {
		return model.TitleFromURL(run.Start)
	}
	return hopTitle(run.Hops[len(run.Hops)-1])
}

// writePath writes one table row per fetched page.
func (w *MarkdownWriter) writePath(md *markdown.Markdown, run *model.Run) {
	md.H2("Path")
	md.PlainText("")

	if len(run.Hops) == 0 {
		md.PlainText("No page was fetched.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Hops))
	for i, h := range run.Hops {
		paragraph := "-"
		if h.ParagraphIndex >= 0 {
			paragraph = strconv.Itoa(h.ParagraphIndex + 1)
		}
		next := "-"
		if h.Next != "" {
			next = "[" + model.TitleFromURL(h.Next) + "](" + h.Next + ")"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			"[" + hopTitle(h) + "](" + h.URL + ")",
			paragraph,
			next,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Article", "Paragraph", "Next"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeParagraphChart writes a mermaid pie chart of the paragraph position
// each link was found in.
func (w *MarkdownWriter) writeParagraphChart(md *markdown.Markdown, run *model.Run) {
	counts := make(map[int]uint64)
	maxIndex := -1
	for _, h := range run.Hops {
		if h.ParagraphIndex < 0 {
			continue
		}
		counts[h.ParagraphIndex]++
		maxIndex = max(maxIndex, h.ParagraphIndex)
	}
	if maxIndex < 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Paragraph of the chosen link"),
		piechart.WithShowData(true),
	)
	for i := 0; i <= maxIndex; i++ {
		if counts[i] > 0 {
			chart.LabelAndIntValue("Paragraph "+strconv.Itoa(i+1), counts[i])
		}
	}

	md.H2("Link Position")
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [wikiphilosophy](https://github.com/nao1215/wikiphilosophy)*")
}
