package store

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
)

// allocPath labels which of the allocator's three fixed-order strategies
// placed a cell.
type allocPath string

const (
	pathHeadInit allocPath = "head_init"
	pathFreeList allocPath = "free_reuse"
	pathTailBump allocPath = "tail_bump"
)

// opOutcome labels the result of a public Get/Set/Del call.
type opOutcome string

const (
	outcomeHit        opOutcome = "hit"
	outcomeMiss       opOutcome = "miss"
	outcomeOutOfSpace opOutcome = "out_of_space"
)

// metrics groups the counters an Engine registers. A fresh, unregistered
// set is created per-Engine by default (newMetrics) so tests and multiple
// engines in one process never collide on prometheus's default registry;
// callers that want process-wide metrics pass prometheus.DefaultRegisterer
// to WithRegisterer explicitly.
type metrics struct {
	allocTotal *prometheus.CounterVec
	opTotal    *prometheus.CounterVec
}

func newMetrics() *metrics {
	return &metrics{
		allocTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ekvdb",
			Name:      "alloc_total",
			Help:      "Cells placed by the allocator, by strategy.",
		}, []string{"path"}),
		opTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ekvdb",
			Name:      "op_total",
			Help:      "Public engine calls, by operation and outcome.",
		}, []string{"op", "outcome"}),
	}
}

// register attaches the engine's counters to reg. Safe to call with nil,
// which leaves the counters unregistered but still incrementable.
func (m *metrics) register(reg prometheus.Registerer) error {
	if reg == nil {
		return nil
	}
	if err := reg.Register(m.allocTotal); err != nil {
		return err
	}
	return reg.Register(m.opTotal)
}

func (m *metrics) observeAlloc(p allocPath) {
	m.allocTotal.WithLabelValues(string(p)).Inc()
}

func (m *metrics) observeOp(op string, outcome opOutcome) {
	m.opTotal.WithLabelValues(op, string(outcome)).Inc()
}

// allocCount reads the current value of one allocator-path counter.
func (m *metrics) allocCount(p allocPath) float64 {
	c, err := m.allocTotal.GetMetricWithLabelValues(string(p))
	if err != nil {
		return 0
	}
	var pb dto.Metric
	if err := c.Write(&pb); err != nil {
		return 0
	}
	return pb.GetCounter().GetValue()
}
