package qtest

import (
	"deedles.dev/textq/internal/alloc"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	reg *prometheus.Registry

	ops        *prometheus.CounterVec
	violations prometheus.Counter
	size       prometheus.Gauge
}

func newMetrics(tracker *alloc.Tracker) *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qtest_commands_total",
			Help: "Commands executed, by command and result",
		}, []string{"cmd", "result"}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qtest_invariant_violations_total",
			Help: "Commands after which the queue failed its structure check",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qtest_queue_size",
			Help: "Number of elements after the last command",
		}),
	}

	liveBlocks := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "qtest_alloc_live_blocks",
		Help: "Blocks allocated and not yet freed",
	}, func() float64 {
		b, _ := tracker.Live()
		return float64(b)
	})
	allocFailures := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "qtest_alloc_failures_total",
		Help: "Allocations refused by fault injection",
	}, func() float64 {
		return float64(tracker.Stats().Failures)
	})

	m.reg.MustRegister(m.ops, m.violations, m.size, liveBlocks, allocFailures)
	return m
}

func (m *metrics) observe(cmd string, err error, size int) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ops.WithLabelValues(cmd, result).Inc()
	m.size.Set(float64(size))
}

func (m *metrics) writeTo(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
