// Package painttime collects how long each paint takes so the host can
// report render latency.
package painttime

import "time"

type Aggregation struct {
	P50    time.Duration // P50 is the 50th percentile paint time.
	P75    time.Duration // P75 is the 75th percentile paint time.
	P95    time.Duration // P95 is the 95th percentile paint time.
	Mean   time.Duration
	StdDev time.Duration
}

// Seconds returns p50, p75 and p95 in seconds, the unit loggers expect.
func (a *Aggregation) Seconds() (p50, p75, p95 float64) {
	return a.P50.Seconds(), a.P75.Seconds(), a.P95.Seconds()
}

type Collector interface {
	Len() int                // Len gets the number of paint times collected.
	Add(t time.Duration)     // Add records the duration of one paint.
	Aggregate() *Aggregation // Aggregate calculates percentiles over the collected paints.
	Reset()                  // Reset resets the state of the collector for reuse.
}
