// Package metrics defines the custom Prometheus metrics of the memo service.
// HTTP request metrics come from echoprometheus; the counters here track
// account and memo activity and are registered on the router's registry.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "memos"

// AccountsCreatedTotal counts successful signups.
var AccountsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// MemoOperationsTotal counts completed memo operations.
// Label:
//   - operation: "create", "list", "update" or "delete"
var MemoOperationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "memo_operations_total",
		Help:      "Total number of successful memo operations, by operation.",
	},
	[]string{"operation"},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{AccountsCreatedTotal, LoginsTotal, MemoOperationsTotal}
}

// Register adds the counters to reg. Registering twice on the same registry
// is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
