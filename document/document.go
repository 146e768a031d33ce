// Package document is the entry point of the library: it lays out
// a sequence of page sets and draws the resulting pages
// on an output document.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/benoitkugler/paginate/backend"
	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/layout"
	"github.com/benoitkugler/paginate/logger"
	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/utils"
	"github.com/charmbracelet/log"
)

// CreationError is returned when the document could not be produced,
// either because a collaborator failed or because of an invalid
// element tree.
type CreationError struct {
	// PageSet is the index of the page set being laid out,
	// or -1 if the failure happened while drawing.
	PageSet int
	Err     error
}

func (e *CreationError) Error() string {
	if e.PageSet < 0 {
		return fmt.Sprintf("creating document: %v", e.Err)
	}
	return fmt.Sprintf("creating document: page set %d: %v", e.PageSet, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// Code returns the error code shared by every creation failure.
func (e *CreationError) Code() utils.Code { return utils.CodeCreationFailed }

type options struct {
	metrics  text.Metrics
	observer boxes.Observer
	progress *log.Logger
}

// Option customizes [Render] and [Write].
type Option func(*options)

// WithMetrics sets the font metrics used to measure text.
// The default is [text.NewFaceMetrics].
func WithMetrics(m text.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithObserver sets the observer notified of layout warnings.
// The default forwards them to [logger.WarningLogger].
func WithObserver(obs boxes.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the logger reporting the main steps,
// [logger.ProgressLogger] by default.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.progress = l }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = text.NewFaceMetrics()
	}
	if o.observer == nil {
		o.observer = boxes.LogObserver{Logger: logger.WarningLogger}
	}
	if o.progress == nil {
		o.progress = logger.ProgressLogger
	}
	return o
}

// Document is a laid out document, ready to be drawn.
type Document struct {
	Pages []*layout.Page

	progress *log.Logger
}

// Render lays out the given page sets, in order.
// The elements of the sets are prepared and split, and
// must not be reused.
// The context is checked between pages.
func Render(ctx context.Context, sets []layout.PageSet, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	lctx := &boxes.Context{Metrics: o.metrics, Observer: o.observer}

	doc := &Document{progress: o.progress}
	for i, set := range sets {
		o.progress.Info("Step 1 - Paginating page set", "index", i, "elements", len(set.Elements))
		p := layout.NewPaginator(lctx, set)
		for {
			if err := ctx.Err(); err != nil {
				return nil, &CreationError{PageSet: i, Err: err}
			}
			page, err := p.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, &CreationError{PageSet: i, Err: err}
			}
			doc.Pages = append(doc.Pages, page)
		}
	}
	return doc, nil
}

// Write draws the pages on `out` and closes it.
// `out` is closed even if drawing fails.
func (d *Document) Write(ctx context.Context, out backend.Document) error {
	progress := d.progress
	if progress == nil {
		progress = logger.ProgressLogger
	}
	progress.Info("Step 2 - Drawing pages", "pages", len(d.Pages))
	err := d.draw(ctx, out)
	if cerr := out.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		return &CreationError{PageSet: -1, Err: err}
	}
	return nil
}

func (d *Document) draw(ctx context.Context, out backend.Document) error {
	for _, page := range d.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := DrawPage(page, out); err != nil {
			return err
		}
	}
	return nil
}

// Write lays out the page sets and draws them on `out`, which
// is closed in any case.
// Every failure is returned as a [*CreationError].
func Write(ctx context.Context, sets []layout.PageSet, out backend.Document, opts ...Option) error {
	doc, err := Render(ctx, sets, opts...)
	if err != nil {
		if cerr := out.Close(); cerr != nil {
			var ce *CreationError
			if errors.As(err, &ce) {
				ce.Err = errors.Join(ce.Err, cerr)
			}
		}
		return err
	}
	return doc.Write(ctx, out)
}
