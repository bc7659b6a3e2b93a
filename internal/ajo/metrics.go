package ajo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ajo_operations_total",
		Help: "Engine operations by name and outcome.",
	},
	[]string{"op", "status"},
)

// countOp records one engine operation outcome. Protocol rejections and
// internal failures both count as errors; the HTTP layer separates them.
func countOp(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	operationsTotal.WithLabelValues(op, status).Inc()
}
