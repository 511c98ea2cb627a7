package stats

// Noop discards all metrics.
type Noop struct{}

// Compile-time check that Noop implements Collector.
var _ Collector = Noop{}

// NewNoop returns a no-op collector.
func NewNoop() Noop {
	return Noop{}
}

func (Noop) IncCounter(string, int64)         {}
func (Noop) SetGauge(string, int64)           {}
func (Noop) ObserveHistogram(string, float64) {}
