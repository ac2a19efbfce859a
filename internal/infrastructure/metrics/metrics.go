// Package metrics exposes prometheus counters for the quota and feature
// gates. Rejections are the interesting signal: a spike in quota rejections
// on a resource usually precedes an upgrade-flow support ticket.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotaChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tavern",
		Subsystem: "quota",
		Name:      "checks_total",
		Help:      "Quota gate evaluations by resource and outcome.",
	}, []string{"resource", "outcome"})

	QuotaRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tavern",
		Subsystem: "quota",
		Name:      "rejections_total",
		Help:      "Quota rejections by resource.",
	}, []string{"resource"})

	FeatureDenialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tavern",
		Subsystem: "features",
		Name:      "denials_total",
		Help:      "Feature gate denials by feature key.",
	}, []string{"feature"})
)

const (
	OutcomeAllowed  = "allowed"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// ObserveQuotaCheck records one gate evaluation
func ObserveQuotaCheck(resource, outcome string) {
	QuotaChecksTotal.WithLabelValues(resource, outcome).Inc()
	if outcome == OutcomeRejected {
		QuotaRejectionsTotal.WithLabelValues(resource).Inc()
	}
}

// ObserveFeatureDenial records one feature gate denial
func ObserveFeatureDenial(feature string) {
	FeatureDenialsTotal.WithLabelValues(feature).Inc()
}
