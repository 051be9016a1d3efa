// Package lifecycle holds the displayed Timestamp, refreshes it on every timer
// tick and answers paint requests with the active renderer's primitives.
package lifecycle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kcz17/clockface/logging"
	"github.com/kcz17/clockface/painttime"
	"github.com/kcz17/clockface/render"
	"github.com/kcz17/clockface/timesource"
)

const (
	DefaultInterval = 1000 * time.Millisecond
	// DefaultStatsEvery is how many ticks pass between paint time reports.
	DefaultStatsEvery = 60
	paintTimesWindow  = 100
)

// Timer is the host's periodic timer. The host invokes callback every
// interval for as long as it returns true; returning false stops the timer.
type Timer interface {
	RegisterTimer(interval time.Duration, callback func() bool)
}

// Redrawer asks the host to schedule a paint. The paint may happen after
// RequestRedraw returns.
type Redrawer interface {
	RequestRedraw()
}

type State int

const (
	Idle State = iota
	Rendering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rendering:
		return "rendering"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Options struct {
	Clock    timesource.Clock
	Kind     render.Kind
	Renderer render.Renderer
	Redrawer Redrawer
	Logger   logging.Logger
	// PaintTimes records the duration of each paint. Defaults to a windowed
	// tachymeter collector.
	PaintTimes painttime.Collector
	Interval   time.Duration
	StatsEvery int
}

type Lifecycle struct {
	clock      timesource.Clock
	kind       render.Kind
	renderer   render.Renderer
	redrawer   Redrawer
	logger     logging.Logger
	paintTimes painttime.Collector
	interval   time.Duration
	statsEvery int
	// current and state are protected by mux so a paint always observes a
	// fully formed Timestamp.
	current render.Timestamp
	state   State
	ticks   int
	// profile additionally records every paint while a profiling run is in
	// progress, and is nil otherwise.
	profile painttime.Collector
	mux     *sync.RWMutex
}

func New(opts *Options) (*Lifecycle, error) {
	if opts.Clock == nil || opts.Renderer == nil || opts.Redrawer == nil {
		return nil, errors.New("lifecycle.New() expected non-nil Clock, Renderer and Redrawer")
	}

	l := &Lifecycle{
		clock:      opts.Clock,
		kind:       opts.Kind,
		renderer:   opts.Renderer,
		redrawer:   opts.Redrawer,
		logger:     opts.Logger,
		paintTimes: opts.PaintTimes,
		interval:   opts.Interval,
		statsEvery: opts.StatsEvery,
		state:      Idle,
		mux:        &sync.RWMutex{},
	}
	if l.logger == nil {
		l.logger = logging.NewNoopLogger()
	}
	if l.paintTimes == nil {
		l.paintTimes = painttime.NewTachymeterCollector(paintTimesWindow)
	}
	if l.interval <= 0 {
		l.interval = DefaultInterval
	}
	if l.statsEvery <= 0 {
		l.statsEvery = DefaultStatsEvery
	}

	// Read the clock once so a paint before the first tick has a time to show.
	l.current = render.TimestampOf(l.clock.Now())
	return l, nil
}

// Start registers Tick with the host timer.
func (l *Lifecycle) Start(timer Timer) {
	timer.RegisterTimer(l.interval, l.Tick)
}

// Tick replaces the held Timestamp with the current time and requests a
// repaint. It always returns true so the host re-arms the timer.
func (l *Lifecycle) Tick() bool {
	ts := render.TimestampOf(l.clock.Now())

	l.mux.Lock()
	l.current = ts
	l.ticks++
	reportStats := l.ticks%l.statsEvery == 0
	l.mux.Unlock()

	l.logger.LogTick(ts)
	if reportStats && l.paintTimes.Len() > 0 {
		l.logger.LogPaintTimes(l.paintTimes.Aggregate().Seconds())
	}

	l.redrawer.RequestRedraw()
	return true
}

// OnPaint returns the primitives for the held Timestamp on a surface of size
// b. Geometry is recomputed from b on every call.
func (l *Lifecycle) OnPaint(b render.Bounds) []render.Primitive {
	l.mux.Lock()
	ts := l.current
	l.state = Rendering
	l.mux.Unlock()

	start := time.Now()
	prims := l.renderer.Render(ts, b)
	elapsed := time.Since(start)

	l.mux.Lock()
	l.state = Idle
	profile := l.profile
	l.mux.Unlock()

	l.paintTimes.Add(elapsed)
	if profile != nil {
		profile.Add(elapsed)
	}
	l.logger.LogPaint(l.kind, b, len(prims), elapsed)
	return prims
}

func (l *Lifecycle) Timestamp() render.Timestamp {
	l.mux.RLock()
	defer l.mux.RUnlock()
	return l.current
}

func (l *Lifecycle) State() State {
	l.mux.RLock()
	defer l.mux.RUnlock()
	return l.state
}

func (l *Lifecycle) Kind() render.Kind {
	return l.kind
}

// PaintTimes aggregates the recorded paint durations.
func (l *Lifecycle) PaintTimes() *painttime.Aggregation {
	if l.paintTimes.Len() == 0 {
		return &painttime.Aggregation{}
	}
	return l.paintTimes.Aggregate()
}

// StartProfiling begins recording every paint time alongside the windowed
// paint times, replacing any run already in progress.
func (l *Lifecycle) StartProfiling() {
	l.mux.Lock()
	defer l.mux.Unlock()
	l.profile = painttime.NewProfileCollector()
}

// StopProfiling ends the profiling run and discards its paint times.
func (l *Lifecycle) StopProfiling() {
	l.mux.Lock()
	defer l.mux.Unlock()
	l.profile = nil
}

// Profile returns the collector of the profiling run in progress, or nil if
// there is none.
func (l *Lifecycle) Profile() painttime.Collector {
	l.mux.RLock()
	defer l.mux.RUnlock()
	return l.profile
}
