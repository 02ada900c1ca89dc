// Package metrics exposes Prometheus collectors for Verkle tree
// construction, proof generation and proof verification. A nil *Metrics
// is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "verkle"

// Verification result label values.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Metrics groups the collectors of one process.
type Metrics struct {
	NodesCommitted  prometheus.Counter
	TreesBuilt      prometheus.Counter
	ProofsGenerated prometheus.Counter
	ProofCacheHits  prometheus.Counter
	ProofsVerified  *prometheus.CounterVec
	BuildDuration   prometheus.Histogram
	ProveDuration   prometheus.Histogram
	VerifyDuration  prometheus.Histogram
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NodesCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "nodes_committed_total",
			Help:      "Inner nodes interpolated and committed.",
		}),
		TreesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "trees_built_total",
			Help:      "Trees built.",
		}),
		ProofsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "proofs_generated_total",
			Help:      "Proof chains generated, excluding cache hits.",
		}),
		ProofCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "proof_cache_hits_total",
			Help:      "Proof requests answered from the cache.",
		}),
		ProofsVerified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "proofs_verified_total",
			Help:      "Proof chains verified, by result.",
		}, []string{"result"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "build_duration_seconds",
			Help:      "Time to build a tree.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		ProveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "prove_duration_seconds",
			Help:      "Time to generate a proof chain.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		VerifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "verify_duration_seconds",
			Help:      "Time to verify a proof chain.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.NodesCommitted,
			m.TreesBuilt,
			m.ProofsGenerated,
			m.ProofCacheHits,
			m.ProofsVerified,
			m.BuildDuration,
			m.ProveDuration,
			m.VerifyDuration,
		)
	}
	return m
}

// ObserveBuild records a finished tree build.
func (m *Metrics) ObserveBuild(d time.Duration, nodes int) {
	if m == nil {
		return
	}
	m.TreesBuilt.Inc()
	m.NodesCommitted.Add(float64(nodes))
	m.BuildDuration.Observe(d.Seconds())
}

// ObserveProof records a proof request.
func (m *Metrics) ObserveProof(d time.Duration, cached bool) {
	if m == nil {
		return
	}
	if cached {
		m.ProofCacheHits.Inc()
		return
	}
	m.ProofsGenerated.Inc()
	m.ProveDuration.Observe(d.Seconds())
}

// ObserveVerify records a verification and its outcome.
func (m *Metrics) ObserveVerify(d time.Duration, ok bool) {
	if m == nil {
		return
	}
	result := ResultInvalid
	if ok {
		result = ResultValid
	}
	m.ProofsVerified.WithLabelValues(result).Inc()
	m.VerifyDuration.Observe(d.Seconds())
}
