package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mProbes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coloscope_probes_total", Help: "TLS probes attempted",
	})
	mColo = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coloscope_colo_total", Help: "Probes classified COLO",
	})
	mSlow = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coloscope_slow_total", Help: "Probes classified SLOW",
	})
	mFail = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coloscope_fail_total", Help: "Probes classified FAIL",
	})
	mUnresolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coloscope_unresolved_domains_total", Help: "Domains that resolved to no addresses",
	})
	mProbeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coloscope_probe_latency_seconds",
		Help:    "TLS handshake latency",
		Buckets: prometheus.DefBuckets,
	})
)
