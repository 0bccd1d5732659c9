package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/wikiphilosophy/internal/model"
)

// SimpleWriter outputs a plain text transcript for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds digests and paragraph positions to every hop.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run: a header, one entry per fetched page and the
// outcome line.
func (w *SimpleWriter) Write(run *model.Run) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Start:  %s\n", run.Start)
	fmt.Fprintf(&sb, "Target: %s\n\n", run.Target)

	for i, h := range run.Hops {
		w.writeHop(&sb, i+1, h)
	}

	if run.State == model.StateFailedLoop && run.LoopAt != "" {
		fmt.Fprintf(&sb, "\nLoop back to %s\n", run.LoopAt)
	}

	fmt.Fprintf(&sb, "\nPages: %d (%s)\n", len(run.Hops), run.Duration().Round(time.Millisecond))
	sb.WriteString(outcomeLine(run))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeHop writes one numbered transcript entry.
func (w *SimpleWriter) writeHop(sb *strings.Builder, n int, h model.Hop) {
	fmt.Fprintf(sb, "%3d. %s\n", n, hopTitle(h))
	fmt.Fprintf(sb, "     %s\n", h.URL)

	if w.verbose {
		fmt.Fprintf(sb, "     paragraphs: %d", h.Paragraphs)
		if h.ParagraphIndex >= 0 {
			fmt.Fprintf(sb, ", link in paragraph %d", h.ParagraphIndex+1)
		}
		sb.WriteString("\n")
		if h.Digest != "" {
			fmt.Fprintf(sb, "     sha3-256: %s\n", h.Digest)
		}
	}

	if h.Next == "" {
		sb.WriteString("     -> no valid link\n")
		return
	}
	fmt.Fprintf(sb, "     -> %s\n", h.Next)
}
