// Package metrics defines and registers the custom Prometheus metrics for the
// care-access API. It is the single source of truth for metric names, labels,
// and help strings; registration happens via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "care_access"

// PolicyEvaluationsTotal counts completed visible-client evaluations.
// Label:
//   - role: the evaluated user's role, or "unknown" when the identity did not
//     resolve to a directory user.
var PolicyEvaluationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_evaluations_total",
		Help:      "Total number of access-policy evaluations, by caller role.",
	},
	[]string{"role"},
)

// ClientsGrantedTotal counts client rows released by the policy, by the reason
// that granted them.
var ClientsGrantedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_clients_granted_total",
		Help:      "Total number of client records made visible, by grant reason.",
	},
	[]string{"reason"},
)

// PolicyEvaluationDuration measures one full evaluation, store reads included.
var PolicyEvaluationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "policy_evaluation_duration_seconds",
		Help:      "Duration of a full visible-client evaluation.",
		Buckets:   prometheus.DefBuckets,
	},
)
