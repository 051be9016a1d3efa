// Package host implements the host side of the clock: a single-goroutine
// event loop that runs timer callbacks, redraws and paint requests in arrival
// order, plus the sinks and API server that present frames.
package host

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kcz17/clockface/logging"
	"github.com/kcz17/clockface/render"
)

// ErrLoopStopped is returned by Paint once the loop has stopped running.
var ErrLoopStopped = errors.New("event loop is not running")

// PaintFunc is the core's paint handler.
type PaintFunc func(b render.Bounds) []render.Primitive

// Sink presents the primitives of a redraw, e.g. by encoding them to a file.
type Sink interface {
	Name() string
	Present(kind render.Kind, b render.Bounds, prims []render.Primitive) error
}

type EventLoopOptions struct {
	Kind render.Kind
	// Bounds is the size of the host surface painted on every redraw.
	Bounds render.Bounds
	Sinks  []Sink
	Logger logging.Logger
}

// EventLoop serialises every interaction with the core on one goroutine, so a
// paint never overlaps a tick.
type EventLoop struct {
	kind   render.Kind
	bounds render.Bounds
	sinks  []Sink
	logger logging.Logger
	paint  PaintFunc
	// events carries timer callbacks and paint requests; redraw holds at
	// most one pending redraw so repeated requests coalesce.
	events chan func()
	redraw chan struct{}
	// done is closed when Run returns, releasing timer goroutines.
	done     chan struct{}
	doneOnce *sync.Once
	// redraws counts completed redraws.
	redraws    int
	redrawsMux *sync.Mutex
}

func NewEventLoop(opts *EventLoopOptions) *EventLoop {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoopLogger()
	}

	return &EventLoop{
		kind:       opts.Kind,
		bounds:     opts.Bounds,
		sinks:      opts.Sinks,
		logger:     logger,
		events:     make(chan func()),
		redraw:     make(chan struct{}, 1),
		done:       make(chan struct{}),
		doneOnce:   &sync.Once{},
		redrawsMux: &sync.Mutex{},
	}
}

// HandlePaint installs the paint handler. It must be called before Run.
func (l *EventLoop) HandlePaint(f PaintFunc) {
	l.paint = f
}

// Run processes events until ctx is cancelled.
func (l *EventLoop) Run(ctx context.Context) error {
	if l.paint == nil {
		return errors.New("EventLoop.Run() expected a paint handler; call HandlePaint first")
	}
	defer l.doneOnce.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-l.events:
			ev()
		case <-l.redraw:
			l.present()
		}
	}
}

// RequestRedraw schedules a redraw of the host surface. It never blocks; a
// request made while one is already pending is absorbed by it.
func (l *EventLoop) RequestRedraw() {
	select {
	case l.redraw <- struct{}{}:
	default:
	}
}

// RegisterTimer invokes callback on the loop every interval. The timer is
// re-armed only after callback returns true; returning false stops it.
func (l *EventLoop) RegisterTimer(interval time.Duration, callback func() bool) {
	go func() {
		t := time.NewTimer(interval)
		defer t.Stop()

		for {
			select {
			case <-l.done:
				return
			case <-t.C:
			}

			rearm := make(chan bool, 1)
			if !l.post(func() { rearm <- callback() }) {
				return
			}
			select {
			case <-l.done:
				return
			case ok := <-rearm:
				if !ok {
					return
				}
			}
			t.Reset(interval)
		}
	}()
}

// Paint runs the paint handler on the loop for a surface of size b. It is
// used for surfaces other than the host's own, such as HTTP responses.
func (l *EventLoop) Paint(ctx context.Context, b render.Bounds) ([]render.Primitive, error) {
	result := make(chan []render.Primitive, 1)

	select {
	case l.events <- func() { result <- l.paint(b) }:
	case <-l.done:
		return nil, ErrLoopStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case prims := <-result:
		return prims, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Redraws returns the number of redraws presented so far.
func (l *EventLoop) Redraws() int {
	l.redrawsMux.Lock()
	defer l.redrawsMux.Unlock()
	return l.redraws
}

func (l *EventLoop) post(ev func()) bool {
	select {
	case l.events <- ev:
		return true
	case <-l.done:
		return false
	}
}

func (l *EventLoop) present() {
	prims := l.paint(l.bounds)
	for _, s := range l.sinks {
		if err := s.Present(l.kind, l.bounds, prims); err != nil {
			l.logger.LogSinkError(s.Name(), err)
		}
	}

	l.redrawsMux.Lock()
	l.redraws++
	l.redrawsMux.Unlock()
}
