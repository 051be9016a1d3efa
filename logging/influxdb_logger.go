package logging

import (
	"log"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/kcz17/clockface/render"
)

// influxDBLogger logs the output to an external InfluxDB instance.
type influxDBLogger struct {
	client      influxdb2.Client
	asyncWriter api.WriteAPI
}

func NewInfluxDBLogger(baseURL, authToken, org, bucket string) *influxDBLogger {
	options := influxdb2.DefaultOptions()
	options.WriteOptions().SetBatchSize(100)
	options.WriteOptions().SetFlushInterval(1000)

	client := influxdb2.NewClientWithOptions(baseURL, authToken, options)
	writeAPI := client.WriteAPI(org, bucket)

	// Create a goroutine for reading and logging async write errors.
	errorsCh := writeAPI.Errors()
	go func() {
		for err := range errorsCh {
			log.Printf("influxdb2 logging async write error: %v\n", err)
		}
	}()

	return &influxDBLogger{
		client:      client,
		asyncWriter: writeAPI,
	}
}

func (l *influxDBLogger) LogTick(ts render.Timestamp) {
	p := influxdb2.NewPointWithMeasurement("clockface_tick").
		AddField("hour", ts.Hour).
		AddField("minute", ts.Minute).
		AddField("second", ts.Second).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogPaint(kind render.Kind, b render.Bounds, primitives int, d time.Duration) {
	p := influxdb2.NewPointWithMeasurement("clockface_paint").
		AddTag("interface", kind.String()).
		AddField("width", b.Width).
		AddField("height", b.Height).
		AddField("primitives", primitives).
		AddField("t", d.Seconds()).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogPaintTimes(p50 float64, p75 float64, p95 float64) {
	p := influxdb2.NewPointWithMeasurement("clockface_paint_time").
		AddField("p50", p50).
		AddField("p75", p75).
		AddField("p95", p95).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogSinkError(sink string, err error) {
	p := influxdb2.NewPointWithMeasurement("clockface_sink_error").
		AddTag("sink", sink).
		AddField("error", err.Error()).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

// Close flushes pending points and releases the client.
func (l *influxDBLogger) Close() {
	l.asyncWriter.Flush()
	l.client.Close()
}
