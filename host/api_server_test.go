package host

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kcz17/clockface/lifecycle"
	"github.com/kcz17/clockface/render"
	"github.com/kcz17/clockface/surface"
	"github.com/kcz17/clockface/timesource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newTestAPIServer(t *testing.T) *APIServer {
	loop := NewEventLoop(&EventLoopOptions{Kind: render.Analogue, Bounds: render.DefaultBounds(render.Analogue)})
	l, err := lifecycle.New(&lifecycle.Options{
		Clock:    timesource.FixedClock{T: time.Date(2020, 1, 1, 3, 0, 0, 0, time.UTC)},
		Kind:     render.Analogue,
		Renderer: render.NewAnalogue(),
		Redrawer: loop,
	})
	require.NoError(t, err)
	loop.HandlePaint(l.OnPaint)
	startLoop(t, loop)

	return &APIServer{Loop: loop, Lifecycle: l, Background: render.White}
}

func serve(s *APIServer, uri string) *fasthttp.Response {
	return serveMethod(s, http.MethodGet, uri)
}

func serveMethod(s *APIServer, method string, uri string) *fasthttp.Response {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)

	var ctx fasthttp.RequestCtx
	ctx.Init(req, nil, nil)
	s.Router().HandleRequest(&ctx)

	resp := &fasthttp.Response{}
	ctx.Response.CopyTo(resp)
	return resp
}

func TestAPIServer_ClockPNG(t *testing.T) {
	s := newTestAPIServer(t)

	resp := serve(s, "/clock.png?width=120&height=80")
	require.Equal(t, http.StatusOK, resp.StatusCode(), string(resp.Body()))
	assert.Equal(t, "image/png", string(resp.Header.ContentType()))
	assert.Equal(t, "Analogue PyClock", string(resp.Header.Peek("X-Clock-Interface")))

	img, err := png.Decode(bytes.NewReader(resp.Body()))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestAPIServer_ClockSVGDefaultsToDesignSize(t *testing.T) {
	s := newTestAPIServer(t)

	resp := serve(s, "/clock.svg")
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "image/svg+xml", string(resp.Header.ContentType()))
	assert.Contains(t, string(resp.Body()), "<svg")
}

func TestAPIServer_ClockRejectsBadBounds(t *testing.T) {
	s := newTestAPIServer(t)

	tests := []struct {
		name string
		uri  string
	}{
		{name: "Negative width", uri: "/clock.png?width=-1"},
		{name: "Zero height", uri: "/clock.png?height=0"},
		{name: "Not a number", uri: "/clock.png?width=wide"},
		{name: "Too large", uri: "/clock.svg?width=100000"},
		{name: "Smaller than a pixel", uri: "/clock.png?width=0.5&height=0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, serve(s, tt.uri).StatusCode())
		})
	}
}

func TestAPIServer_TinySurfaceStillRenders(t *testing.T) {
	s := newTestAPIServer(t)
	resp := serve(s, "/clock.png?width=5&height=5")
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestAPIServer_Timestamp(t *testing.T) {
	s := newTestAPIServer(t)

	resp := serve(s, "/timestamp")
	require.Equal(t, http.StatusOK, resp.StatusCode())

	var ts render.Timestamp
	require.NoError(t, json.Unmarshal(resp.Body(), &ts))
	assert.Equal(t, render.Timestamp{Year: 2020, Month: 1, Day: 1, Hour: 3}, ts)
}

func TestAPIServer_Stats(t *testing.T) {
	s := newTestAPIServer(t)
	serve(s, "/clock.svg")

	resp := serve(s, "/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode())

	var stats map[string]float64
	require.NoError(t, json.Unmarshal(resp.Body(), &stats))
	assert.Contains(t, stats, "P95")
}

func TestAPIServer_Collector(t *testing.T) {
	s := newTestAPIServer(t)

	assert.Equal(t, http.StatusNotFound, serve(s, "/collector").StatusCode(), "no run started yet")

	serve(s, "/clock.svg")
	resp := serveMethod(s, http.MethodPost, "/collector")
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "started\n", string(resp.Body()))

	for i := 0; i < 2; i++ {
		serve(s, "/clock.svg")
	}

	resp = serve(s, "/collector")
	require.Equal(t, http.StatusOK, resp.StatusCode())
	var stats map[string]float64
	require.NoError(t, json.Unmarshal(resp.Body(), &stats))
	assert.Equal(t, 2.0, stats["Samples"], "only paints during the run are counted")
	assert.Greater(t, stats["P95"], 0.0)

	resp = serveMethod(s, http.MethodDelete, "/collector")
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "stopped\n", string(resp.Body()))
	assert.Equal(t, http.StatusNotFound, serve(s, "/collector").StatusCode())

	// The windowed paint times keep running throughout.
	assert.Equal(t, http.StatusOK, serve(s, "/stats").StatusCode())
}

func TestFileSink_Present(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock.svg")
	sink := NewFileSink(path, surface.SVG, render.White)
	assert.Equal(t, "file", sink.Name())

	b := render.DefaultBounds(render.Analogue)
	require.NoError(t, sink.Present(render.Analogue, b, render.NewAnalogue().Render(render.Timestamp{}, b)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestFileSink_PresentEmptySurface(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "clock.png"), surface.PNG, render.White)
	err := sink.Present(render.Analogue, render.Bounds{}, nil)
	assert.ErrorIs(t, err, surface.ErrEmptySurface)
}
