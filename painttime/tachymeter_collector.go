package painttime

import (
	"time"

	"github.com/jamiealquiza/tachymeter"
)

// tachymeterCollector keeps a sliding window of the most recent paint times
// using jamiealquiza/tachymeter. It is the collector used by a running clock.
type tachymeterCollector struct {
	tach *tachymeter.Tachymeter
}

func NewTachymeterCollector(window int) *tachymeterCollector {
	return &tachymeterCollector{tach: tachymeter.New(&tachymeter.Config{
		Size: window,
	})}
}

func (c *tachymeterCollector) Len() int {
	return c.tach.Calc().Count
}

func (c *tachymeterCollector) Add(t time.Duration) {
	c.tach.AddTime(t)
}

func (c *tachymeterCollector) Aggregate() *Aggregation {
	metrics := c.tach.Calc()
	return &Aggregation{
		P50:    metrics.Time.P50,
		P75:    metrics.Time.P75,
		P95:    metrics.Time.P95,
		Mean:   metrics.Time.Avg,
		StdDev: metrics.Time.StdDev,
	}
}

func (c *tachymeterCollector) Reset() {
	c.tach.Reset()
}
