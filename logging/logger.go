package logging

import (
	"time"

	"github.com/kcz17/clockface/render"
)

type Logger interface {
	// LogTick logs the Timestamp held after a tick.
	LogTick(ts render.Timestamp)
	// LogPaint logs a single paint request and how long it took.
	LogPaint(kind render.Kind, b render.Bounds, primitives int, d time.Duration)
	// LogPaintTimes takes in percentiles in seconds.
	LogPaintTimes(p50 float64, p75 float64, p95 float64)
	// LogSinkError logs a frame that could not be presented.
	LogSinkError(sink string, err error)
}

// noopLogger does not perform any logging.
type noopLogger struct{}

func NewNoopLogger() *noopLogger {
	return &noopLogger{}
}

func (*noopLogger) LogTick(render.Timestamp) {
	return
}

func (*noopLogger) LogPaint(render.Kind, render.Bounds, int, time.Duration) {
	return
}

func (*noopLogger) LogPaintTimes(float64, float64, float64) {
	return
}

func (*noopLogger) LogSinkError(string, error) {
	return
}
