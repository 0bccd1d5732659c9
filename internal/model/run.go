package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTarget is the canonical identifier of the Philosophy article.
const DefaultTarget = "https://en.wikipedia.org/wiki/Philosophy"

// State is the state of a conjecture run.
type State int

const (
	// StateRunning means the walk has not terminated yet.
	StateRunning State = iota
	// StateSucceeded means the selected link resolved to the target article.
	StateSucceeded
	// StateFailedNoLink means a page offered no valid link.
	StateFailedNoLink
	// StateFailedLoop means the next page had already been visited.
	StateFailedLoop
)

// Reason explains why a run failed.
type Reason string

const (
	// ReasonNone is the reason of a running or successful run.
	ReasonNone Reason = ""
	// ReasonNoValidLink is reported for StateFailedNoLink.
	ReasonNoValidLink Reason = "no valid link"
	// ReasonLoop is reported for StateFailedLoop.
	ReasonLoop Reason = "loop"
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailedNoLink:
		return "failed_no_link"
	case StateFailedLoop:
		return "failed_loop"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalJSON encodes the state by name.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s != StateRunning
}

// Success reports whether the run reached the target.
func (s State) Success() bool {
	return s == StateSucceeded
}

// Reason returns the failure reason of a terminal failure state.
func (s State) Reason() Reason {
	switch s {
	case StateFailedNoLink:
		return ReasonNoValidLink
	case StateFailedLoop:
		return ReasonLoop
	default:
		return ReasonNone
	}
}

// Hop records one fetched page and the link chosen on it.
type Hop struct {
	// URL is the identifier of the fetched page.
	URL string `json:"url"`

	// Title is the article heading reported by the fetcher.
	Title string `json:"title,omitempty"`

	// Digest is the content digest reported by the fetcher.
	Digest string `json:"digest,omitempty"`

	// Paragraphs is the number of body paragraphs on the page.
	Paragraphs int `json:"paragraphs"`

	// ParagraphIndex is the zero-based paragraph the link came from, -1 when
	// no paragraph yielded a link.
	ParagraphIndex int `json:"paragraph_index"`

	// Next is the selected link, empty for a dead end.
	Next string `json:"next,omitempty"`
}

// Run is the transcript and outcome of one conjecture test.
type Run struct {
	// Start is the canonical start identifier.
	Start string `json:"start"`

	// Target is the identifier whose selection ends the run successfully.
	Target string `json:"target"`

	// Hops lists the fetched pages in visiting order.
	Hops []Hop `json:"hops"`

	// State is the current or terminal state.
	State State `json:"state"`

	// Reason is the failure reason, empty on success.
	Reason Reason `json:"reason,omitempty"`

	// LoopAt is the already visited identifier that closed a loop.
	LoopAt string `json:"loop_at,omitempty"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// NewRun creates a running Run.
func NewRun(start, target string) *Run {
	return &Run{
		Start:     start,
		Target:    target,
		Hops:      make([]Hop, 0),
		State:     StateRunning,
		StartedAt: time.Now(),
	}
}

// AddHop appends a hop to the transcript.
func (r *Run) AddHop(h Hop) {
	r.Hops = append(r.Hops, h)
}

// Finish moves the run into a terminal state.
func (r *Run) Finish(s State) {
	r.State = s
	r.Reason = s.Reason()
	r.FinishedAt = time.Now()
}

// Duration returns the elapsed run time, measured until now while running.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Path returns the visited identifiers followed by the final selected link
// when the run ended by selecting one (success or loop).
func (r *Run) Path() []string {
	path := make([]string, 0, len(r.Hops)+1)
	for _, h := range r.Hops {
		path = append(path, h.URL)
	}
	if n := len(r.Hops); n > 0 && r.Hops[n-1].Next != "" {
		path = append(path, r.Hops[n-1].Next)
	}
	return path
}

// Outcome returns "Success" or "Failure" for terminal runs.
func (r *Run) Outcome() string {
	switch {
	case r.State.Success():
		return "Success"
	case r.State.Terminal():
		return "Failure"
	default:
		return "Running"
	}
}
