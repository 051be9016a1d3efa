package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	routing "github.com/jackwhelpton/fasthttp-routing/v2"
	"github.com/kcz17/clockface/lifecycle"
	"github.com/kcz17/clockface/painttime"
	"github.com/kcz17/clockface/render"
	"github.com/kcz17/clockface/surface"
	"github.com/valyala/fasthttp"
)

const (
	// maxDimension bounds the surface a client may ask for.
	maxDimension = 4096
	paintTimeout = 5 * time.Second
)

// APIServer serves the clock over HTTP. Each image request is a paint of a
// surface sized by the request's width and height query arguments.
type APIServer struct {
	Loop       *EventLoop
	Lifecycle  *lifecycle.Lifecycle
	Background render.Colour
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *APIServer) ListenAndServe(ctx context.Context, addr string) error {
	server := &fasthttp.Server{Handler: s.Router().HandleRequest}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(addr)
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown()
	case err := <-errCh:
		return fmt.Errorf("could not serve API on %s: err = %w", addr, err)
	}
}

func (s *APIServer) Router() *routing.Router {
	router := routing.New()

	router.Get("/clock.svg", s.clockHandler(surface.SVG))
	router.Get("/clock.png", s.clockHandler(surface.PNG))
	router.Get("/timestamp", s.timestampHandler())
	router.Get("/stats", s.statsHandler())

	router.Post("/collector", s.startProfilingHandler())
	router.Delete("/collector", s.stopProfilingHandler())
	router.Get("/collector", s.profileStatsHandler())

	return router
}

func (s *APIServer) clockHandler(format surface.Format) routing.Handler {
	return func(c *routing.Context) error {
		b, err := s.boundsFromQuery(c.QueryArgs())
		if err != nil {
			return routing.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(context.Background(), paintTimeout)
		defer cancel()
		prims, err := s.Loop.Paint(ctx, b)
		if err != nil {
			return fmt.Errorf("could not paint clock: err = %w", err)
		}

		var buf bytes.Buffer
		if err := surface.Encode(&buf, format, b, s.Background, prims); err != nil {
			if err == surface.ErrEmptySurface {
				return routing.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return fmt.Errorf("could not encode clock: err = %w", err)
		}

		c.Response.Header.Set("X-Clock-Interface", s.Lifecycle.Kind().Title())
		c.SetContentType(format.ContentType())
		c.SetBody(buf.Bytes())
		return nil
	}
}

func (s *APIServer) timestampHandler() routing.Handler {
	return func(c *routing.Context) error {
		b, err := json.Marshal(s.Lifecycle.Timestamp())
		if err != nil {
			return fmt.Errorf("could not marshal timestamp: err = %w", err)
		}
		c.SetContentType("application/json")
		c.SetBody(b)
		return nil
	}
}

func (s *APIServer) statsHandler() routing.Handler {
	return func(c *routing.Context) error {
		return writeAggregation(c, s.Lifecycle.PaintTimes(), 0)
	}
}

func (s *APIServer) startProfilingHandler() routing.Handler {
	return func(c *routing.Context) error {
		s.Lifecycle.StartProfiling()
		return c.Write("started\n")
	}
}

func (s *APIServer) stopProfilingHandler() routing.Handler {
	return func(c *routing.Context) error {
		s.Lifecycle.StopProfiling()
		return c.Write("stopped\n")
	}
}

func (s *APIServer) profileStatsHandler() routing.Handler {
	return func(c *routing.Context) error {
		profile := s.Lifecycle.Profile()
		if profile == nil {
			return routing.NewHTTPError(http.StatusNotFound, "no profiling run in progress; POST /collector to start one")
		}
		return writeAggregation(c, profile.Aggregate(), profile.Len())
	}
}

// writeAggregation responds with the aggregation in seconds. Samples is
// omitted when zero.
func writeAggregation(c *routing.Context, aggregation *painttime.Aggregation, samples int) error {
	response := &struct {
		P50     float64
		P75     float64
		P95     float64
		Mean    float64
		StdDev  float64
		Samples int `json:",omitempty"`
	}{
		P50:     aggregation.P50.Seconds(),
		P75:     aggregation.P75.Seconds(),
		P95:     aggregation.P95.Seconds(),
		Mean:    aggregation.Mean.Seconds(),
		StdDev:  aggregation.StdDev.Seconds(),
		Samples: samples,
	}

	b, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("could not marshal aggregation: err = %w", err)
	}
	c.SetContentType("application/json")
	c.SetBody(b)
	return nil
}

// boundsFromQuery reads width and height, defaulting to the design size of
// the active clock face.
func (s *APIServer) boundsFromQuery(args *fasthttp.Args) (render.Bounds, error) {
	b := render.DefaultBounds(s.Lifecycle.Kind())

	for _, dim := range []struct {
		key string
		dst *float64
	}{{"width", &b.Width}, {"height", &b.Height}} {
		if !args.Has(dim.key) {
			continue
		}
		v, err := args.GetUfloat(dim.key)
		if err != nil {
			return render.Bounds{}, fmt.Errorf("expected %s to be a positive number; got %q", dim.key, args.Peek(dim.key))
		}
		if v <= 0 || v > maxDimension {
			return render.Bounds{}, fmt.Errorf("expected %s between 0 and %d; got %v", dim.key, maxDimension, v)
		}
		*dim.dst = v
	}

	return b, nil
}
