package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pass labels
const (
	PassFunction       = "function"
	PassJacobian       = "jacobian"
	PassEdgeFunction   = "edge_function"
	PassEdgeJacobian   = "edge_jacobian"
	PassLumpedFunction = "lumped_function"
	PassLumpedJacobian = "lumped_jacobian"
	PassPseudoFunction = "pseudo_function"
	PassPseudoJacobian = "pseudo_jacobian"
	PassConvergence    = "pseudo_convergence"
	PassUpdate         = "update"
	PassSyncGhosts     = "sync_ghosts"
	PassFill           = "fill"
)

// Entry kinds
const (
	KindResidual = "residual"
	KindJacobian = "jacobian"
)

// Collector groups the assembly metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	passes      *prometheus.CounterVec
	entries     *prometheus.CounterVec
	unconverged prometheus.Gauge
	resNorm     prometheus.Histogram
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fvmetal_assembly_passes_total",
				Help: "Total number of assembly passes by pass type",
			},
			[]string{"pass"},
		),
		entries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fvmetal_entries_total",
				Help: "Total number of residual and Jacobian entries emitted",
			},
			[]string{"kind"},
		),
		unconverged: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fvmetal_pseudo_unconverged_nodes",
			Help: "Unconverged node count of the last pseudo time convergence test",
		}),
		resNorm: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fvmetal_newton_residual_norm",
			Help:    "Residual 2-norm per Newton iteration",
			Buckets: prometheus.ExponentialBuckets(1e-15, 10, 16),
		}),
	}
	for _, col := range []prometheus.Collector{c.passes, c.entries, c.unconverged, c.resNorm} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Pass counts one assembly pass and the entries it emitted
func (c *Collector) Pass(pass, kind string, entries int) {
	if c == nil {
		return
	}
	c.Count(pass)
	if entries > 0 {
		c.entries.WithLabelValues(kind).Add(float64(entries))
	}
}

// Count counts a pass that emits no residual or Jacobian entries, such as a
// state commit
func (c *Collector) Count(pass string) {
	if c == nil {
		return
	}
	c.passes.WithLabelValues(pass).Inc()
}

// Unconverged records the result of a convergence test
func (c *Collector) Unconverged(n int) {
	if c == nil {
		return
	}
	c.passes.WithLabelValues(PassConvergence).Inc()
	c.unconverged.Set(float64(n))
}

// ResidualNorm observes the residual norm of a Newton iteration
func (c *Collector) ResidualNorm(norm float64) {
	if c == nil {
		return
	}
	c.resNorm.Observe(norm)
}
