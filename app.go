package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kcz17/clockface/colour"
	"github.com/kcz17/clockface/config"
	"github.com/kcz17/clockface/framestore"
	"github.com/kcz17/clockface/host"
	"github.com/kcz17/clockface/lifecycle"
	"github.com/kcz17/clockface/logging"
	"github.com/kcz17/clockface/render"
	"github.com/kcz17/clockface/surface"
	"github.com/kcz17/clockface/timesource"
)

type runOptions struct {
	// At replaces the realtime clock with a fixed time when set.
	At *time.Time
	// Once renders a single frame to the sinks instead of running the loop.
	Once bool
}

// application is a clock face wired to its host loop, sinks and API server.
type application struct {
	kind      render.Kind
	bounds    render.Bounds
	logger    logging.Logger
	loop      *host.EventLoop
	lifecycle *lifecycle.Lifecycle
	sinks     []host.Sink
	api       *host.APIServer
	httpAddr  string
	once      bool
	closers   []func()
}

func newApplication(cfg *config.Config, opts *runOptions) (*application, error) {
	kind, err := render.ParseKind(*cfg.Clock.Interface)
	if err != nil {
		return nil, err
	}
	led, err := colour.Parse(*cfg.Clock.LEDColour)
	if err != nil {
		return nil, err
	}
	background, err := colour.Parse(*cfg.Surface.Background)
	if err != nil {
		return nil, err
	}
	format, err := surface.ParseFormat(*cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	var rowWidths [render.RowCount]int
	copy(rowWidths[:], cfg.Clock.RowWidths)
	renderer, err := render.New(kind, render.Options{Colour: led, Fit: *cfg.Surface.Fit, RowWidths: rowWidths})
	if err != nil {
		return nil, err
	}

	app := &application{
		kind:     kind,
		bounds:   surfaceBounds(kind, *cfg.Surface.Width, *cfg.Surface.Height),
		httpAddr: deref(cfg.HTTP.Addr),
		once:     opts.Once,
	}

	app.logger, err = app.newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	var clock timesource.Clock = timesource.NewRealtimeClock()
	if opts.At != nil {
		clock = timesource.FixedClock{T: *opts.At}
	}

	// The frame store stamps its events with the time on display, which is
	// only known once the lifecycle exists.
	var l *lifecycle.Lifecycle
	timestamp := func() render.Timestamp { return l.Timestamp() }

	if path := deref(cfg.Output.Path); path != "" {
		app.sinks = append(app.sinks, host.NewFileSink(path, format, background))
	}
	if *cfg.FrameStore.Enabled {
		store, err := app.newFrameStore(cfg.FrameStore, background, timestamp)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.sinks = append(app.sinks, store)
	}

	app.loop = host.NewEventLoop(&host.EventLoopOptions{
		Kind:   kind,
		Bounds: app.bounds,
		Sinks:  app.sinks,
		Logger: app.logger,
	})
	l, err = lifecycle.New(&lifecycle.Options{
		Clock:      clock,
		Kind:       kind,
		Renderer:   renderer,
		Redrawer:   app.loop,
		Logger:     app.logger,
		Interval:   time.Duration(*cfg.Clock.Interval) * time.Millisecond,
		StatsEvery: *cfg.Clock.StatsEvery,
	})
	if err != nil {
		app.Close()
		return nil, err
	}
	app.lifecycle = l
	app.loop.HandlePaint(l.OnPaint)

	if app.httpAddr != "" {
		app.api = &host.APIServer{Loop: app.loop, Lifecycle: l, Background: background}
	}

	return app, nil
}

func (a *application) newLogger(cfg config.Logging) (logging.Logger, error) {
	switch *cfg.Driver {
	case "stdout":
		return logging.NewStdoutLogger(), nil
	case "influxdb":
		addr, token := deref(cfg.InfluxDB.Host), deref(cfg.InfluxDB.Token)
		org, bucket := deref(cfg.InfluxDB.Org), deref(cfg.InfluxDB.Bucket)
		if addr == "" || token == "" || org == "" || bucket == "" {
			return nil, errors.New("expected logging.influxdb host, token, org and bucket to be set for the influxdb driver")
		}
		logger := logging.NewInfluxDBLogger(addr, token, org, bucket)
		a.closers = append(a.closers, logger.Close)
		return logger, nil
	default:
		return logging.NewNoopLogger(), nil
	}
}

func (a *application) newFrameStore(cfg config.FrameStore, background render.Colour, timestamp func() render.Timestamp) (*framestore.RedisStore, error) {
	client := framestore.NewRedisClient(*cfg.Addr, deref(cfg.Password), *cfg.DB)
	a.closers = append(a.closers, func() { client.Close() })
	if err := client.Ping().Err(); err != nil {
		return nil, fmt.Errorf("could not connect to frame store at %s: err = %w", *cfg.Addr, err)
	}

	opts := &framestore.Options{
		Client:     client,
		Prefix:     *cfg.Prefix,
		TTL:        time.Duration(*cfg.TTL) * time.Second,
		Format:     surface.SVG,
		Background: background,
		Timestamp:  timestamp,
	}
	if *cfg.Events {
		errCh := make(chan error, 10)
		done := make(chan struct{})
		a.closers = append(a.closers, func() { close(done) })
		go func() {
			for {
				select {
				case err := <-errCh:
					log.Printf("frame queue error: %v\n", err)
				case <-done:
					return
				}
			}
		}()

		queue, err := framestore.OpenFrameQueue(client, *cfg.Prefix, errCh)
		if err != nil {
			return nil, err
		}
		// Closers run in reverse: the heartbeat stops, then the error drain
		// exits, then the client closes.
		a.closers = append(a.closers, queue.Close)
		opts.Events = queue
	}

	return framestore.NewRedisStore(opts), nil
}

// Run shows the clock until ctx is cancelled, or renders a single frame when
// the application was built with Once.
func (a *application) Run(ctx context.Context) error {
	if a.once {
		return a.renderOnce()
	}

	if a.api != nil {
		go func() {
			if err := a.api.ListenAndServe(ctx, a.httpAddr); err != nil {
				log.Printf("API server stopped: %v\n", err)
			}
		}()
		log.Printf("serving %s on %s\n", a.kind.Title(), a.httpAddr)
	}

	a.lifecycle.Start(a.loop)
	// The first frame is shown without waiting for a tick.
	a.loop.RequestRedraw()
	log.Printf("showing %s on a %vx%v surface\n", a.kind.Title(), a.bounds.Width, a.bounds.Height)

	return a.loop.Run(ctx)
}

func (a *application) renderOnce() error {
	if len(a.sinks) == 0 {
		return errors.New("expected --output or an enabled frame store to render a single frame")
	}

	prims := a.lifecycle.OnPaint(a.bounds)
	for _, s := range a.sinks {
		if err := s.Present(a.kind, a.bounds, prims); err != nil {
			return fmt.Errorf("could not present frame to %s sink: err = %w", s.Name(), err)
		}
	}
	return nil
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// surfaceBounds uses the design size of kind for any dimension left at 0.
func surfaceBounds(kind render.Kind, width, height float64) render.Bounds {
	b := render.DefaultBounds(kind)
	if width > 0 {
		b.Width = width
	}
	if height > 0 {
		b.Height = height
	}
	return b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
