package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/wikiphilosophy/internal/model"
)

// LinkSelector picks the first valid link of a paragraph.
type LinkSelector interface {
	SelectFirstValidLink(p model.Paragraph) (string, bool)
}

// Walker runs the crawl loop of the conjecture.
type Walker struct {
	fetcher  PageFetcher
	selector LinkSelector

	// target is the identifier whose selection ends a run successfully.
	target string

	// maxHops caps the number of fetched pages, 0 means unbounded.
	maxHops int

	// delay is the pause between consecutive fetches.
	delay time.Duration

	// observer receives every hop as soon as it is recorded.
	observer func(model.Hop)

	logger *slog.Logger
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithTarget sets the target article. It is canonicalized when valid.
func WithTarget(target string) WalkerOption {
	return func(w *Walker) {
		if canonical, err := model.Canonicalize(target); err == nil {
			target = canonical
		}
		w.target = target
	}
}

// WithMaxHops caps the number of pages a run may fetch. Zero or negative
// means no cap; loop and dead-end detection still end every walk.
func WithMaxHops(n int) WalkerOption {
	return func(w *Walker) {
		w.maxHops = n
	}
}

// WithDelay sets the pause between consecutive fetches.
func WithDelay(d time.Duration) WalkerOption {
	return func(w *Walker) {
		w.delay = d
	}
}

// WithObserver registers a callback invoked with every recorded hop.
func WithObserver(fn func(model.Hop)) WalkerOption {
	return func(w *Walker) {
		w.observer = fn
	}
}

// WithWalkerLogger sets the logger.
func WithWalkerLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// NewWalker creates a Walker that loads pages with fetcher and picks links
// with selector.
func NewWalker(fetcher PageFetcher, selector LinkSelector, opts ...WalkerOption) *Walker {
	w := &Walker{
		fetcher:  fetcher,
		selector: selector,
		target:   model.DefaultTarget,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// Target returns the identifier that ends a run successfully.
func (w *Walker) Target() string {
	return w.target
}

// TestConjecture follows first valid links from start until the target is
// selected, a page has no valid link, or an already visited page comes up
// again. The returned Run is terminal when err is nil.
//
// A fetch failure aborts the walk: the partial Run is returned together with
// the *FetchError. Context cancellation and an exceeded hop limit abort it
// the same way.
func (w *Walker) TestConjecture(ctx context.Context, start string) (*model.Run, error) {
	current, err := model.Canonicalize(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStart, err)
	}

	run := model.NewRun(current, w.target)
	visited := make(map[string]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		if _, seen := visited[current]; seen {
			run.LoopAt = current
			run.Finish(model.StateFailedLoop)
			w.logger.Info("loop detected", "url", current, "hops", len(run.Hops))
			return run, nil
		}
		visited[current] = struct{}{}

		if w.maxHops > 0 && len(visited) > w.maxHops {
			return run, fmt.Errorf("%w: %d pages fetched", ErrHopLimit, w.maxHops)
		}

		if len(visited) > 1 {
			if err := w.pause(ctx); err != nil {
				return run, err
			}
		}

		w.logger.Info("fetching", "url", current)
		article, err := w.fetcher.Fetch(ctx, current)
		if err != nil {
			return run, err
		}

		next, index := w.nextPage(article.Paragraphs)
		hop := model.Hop{
			URL:            current,
			Title:          article.Title,
			Digest:         article.Digest,
			Paragraphs:     len(article.Paragraphs),
			ParagraphIndex: index,
			Next:           next,
		}
		run.AddHop(hop)
		if w.observer != nil {
			w.observer(hop)
		}

		switch next {
		case "":
			run.Finish(model.StateFailedNoLink)
			w.logger.Info("no valid link", "url", current)
			return run, nil
		case w.target:
			run.Finish(model.StateSucceeded)
			w.logger.Info("found target", "url", current, "target", w.target, "hops", len(run.Hops))
			return run, nil
		}

		current = next
	}
}

// nextPage applies the selector to each paragraph in order and returns the
// first link with the index of its paragraph, or "" and -1.
func (w *Walker) nextPage(paragraphs []model.Paragraph) (string, int) {
	for i, p := range paragraphs {
		link, ok := w.selector.SelectFirstValidLink(p)
		w.logger.Debug("got", "paragraph", i, "link", link)
		if ok {
			return link, i
		}
	}
	return "", -1
}

// pause waits for the configured delay or until ctx is done.
func (w *Walker) pause(ctx context.Context) error {
	if w.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(w.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
