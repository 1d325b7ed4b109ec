// Package metrics defines and registers the custom Prometheus metrics of the
// expense ledger API. Metrics register with the default registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "expenses"

// ── Mutation metrics ──────────────────────────────────────────────────────────

// MutationsTotal counts create, update and delete requests.
// Labels:
//   - op: "create", "update" or "delete"
//   - result: "ok", "invalid", "not_found" or "error"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of expense mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ValidationRejectionsTotal counts drafts refused before reaching the store.
// Label:
//   - field: the offending request field, or "record" for cross-field rules
var ValidationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "Total number of expense drafts rejected by validation.",
	},
	[]string{"field"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreOperationDuration measures record store calls.
// Labels:
//   - backend: "postgres", "mongo", "local" or "remote"
//   - op: "list", "insert", "replace" or "remove"
//   - result: "ok" or "error"
var StoreOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_operation_duration_seconds",
		Help:      "Duration of record store operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend", "op", "result"},
)

// RecordsStored is the record count observed by the last list call.
var RecordsStored = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "records_stored",
		Help:      "Number of expense records returned by the most recent full listing.",
	},
)
