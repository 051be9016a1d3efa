package logging

import (
	"log"
	"time"

	"github.com/kcz17/clockface/render"
)

// stdoutLogger logs the output to standard output.
type stdoutLogger struct{}

func NewStdoutLogger() *stdoutLogger {
	return &stdoutLogger{}
}

func (*stdoutLogger) LogTick(ts render.Timestamp) {
	log.Printf("tick: %04d-%02d-%02d %02d:%02d:%02d\n", ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second)
}

func (*stdoutLogger) LogPaint(kind render.Kind, b render.Bounds, primitives int, d time.Duration) {
	// Individual paints are aggregated through LogPaintTimes instead.
	return
}

func (*stdoutLogger) LogPaintTimes(p50 float64, p75 float64, p95 float64) {
	log.Printf("paint p50: %.6f, p75: %.6f, p95: %.6f\n", p50, p75, p95)
}

func (*stdoutLogger) LogSinkError(sink string, err error) {
	log.Printf("%s: could not present frame: %v\n", sink, err)
}
