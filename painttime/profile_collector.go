package painttime

import (
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// profileCollector keeps every paint time of a profiling run, so its
// aggregation covers the whole run rather than a recent window. Memory grows
// with the run; profiling runs are started and stopped explicitly.
type profileCollector struct {
	mux     *sync.Mutex
	samples stats.Float64Data
}

func NewProfileCollector() *profileCollector {
	return &profileCollector{mux: &sync.Mutex{}}
}

// Samples returns a copy of every paint time in seconds.
func (c *profileCollector) Samples() []float64 {
	c.mux.Lock()
	defer c.mux.Unlock()
	return append([]float64(nil), c.samples...)
}

func (c *profileCollector) Len() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.samples.Len()
}

func (c *profileCollector) Add(t time.Duration) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.samples = append(c.samples, t.Seconds())
}

func (c *profileCollector) Aggregate() *Aggregation {
	samples := stats.Float64Data(c.Samples())
	if samples.Len() == 0 {
		return &Aggregation{}
	}

	// The stats package only fails on empty input, which is ruled out above.
	median, _ := samples.Median()
	a := &Aggregation{P50: seconds(median)}
	for _, q := range []struct {
		percent float64
		dst     *time.Duration
	}{{75, &a.P75}, {95, &a.P95}} {
		v, _ := samples.Percentile(q.percent)
		*q.dst = seconds(v)
	}

	if samples.Len() > 1 {
		mean, stdDev := stat.MeanStdDev(samples, nil)
		a.Mean, a.StdDev = seconds(mean), seconds(stdDev)
	} else {
		a.Mean = seconds(samples[0])
	}
	return a
}

func (c *profileCollector) Reset() {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.samples = nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
