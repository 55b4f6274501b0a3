package editor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Faultbox/isotile/internal/terrain"
)

// Metrics counts editing activity. A nil *Metrics records nothing.
type Metrics struct {
	units       *prometheus.CounterVec
	shortfall   prometheus.Counter
	touched     prometheus.Counter
	generations prometheus.Histogram
}

// NewMetrics creates the editor metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isotile",
			Name:      "edit_units_total",
			Help:      "Height units applied by edits, by direction.",
		}, []string{"direction"}),
		shortfall: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "isotile",
			Name:      "edit_shortfall_total",
			Help:      "Requested units that could not be applied at the floor or ceiling.",
		}),
		touched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "isotile",
			Name:      "tiles_touched_total",
			Help:      "Tiles reported as affected by edits, including softened neighbours.",
		}),
		generations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "isotile",
			Name:      "soften_generations",
			Help:      "Worklist generations per soften pass.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16, 32},
		}),
	}
	reg.MustRegister(m.units, m.shortfall, m.touched, m.generations)
	return m
}

func (m *Metrics) observe(requested int, res terrain.EditResult) {
	if m == nil {
		return
	}
	dir := "raise"
	if requested < 0 {
		dir = "lower"
	}
	m.units.WithLabelValues(dir).Add(float64(abs(res.Delta)))
	if short := abs(requested) - abs(res.Delta); short > 0 {
		m.shortfall.Add(float64(short))
	}
	m.touched.Add(float64(len(res.Affected)))
	if res.Generations > 0 {
		m.generations.Observe(float64(res.Generations))
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
