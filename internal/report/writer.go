package report

import (
	"io"

	"github.com/nao1215/wikiphilosophy/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the run report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(run *model.Run) (int, error)
}

// MultiWriter writes the same run to several Writers.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the run to all Writers and returns the total bytes written.
// It stops on the first error.
func (m *MultiWriter) Write(run *model.Run) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// outcomeLine returns the final verdict line, e.g. "Failure (loop)".
func outcomeLine(run *model.Run) string {
	if run.Reason == model.ReasonNone {
		return run.Outcome()
	}
	return run.Outcome() + " (" + string(run.Reason) + ")"
}

// hopTitle returns the hop's title, derived from its URL when the page had
// no heading.
func hopTitle(h model.Hop) string {
	if h.Title != "" {
		return h.Title
	}
	return model.TitleFromURL(h.URL)
}
