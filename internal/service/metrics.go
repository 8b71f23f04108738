package service

import (
	"errors"

	"taskboard/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var TaskOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "task_operations_total",
		Help: "Task store writes by operation and outcome",
	},
	[]string{"op", "result"},
)

func init() {
	prometheus.MustRegister(TaskOps)
}

func observeTaskOp(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case domain.IsValidation(err):
		result = "invalid"
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	TaskOps.WithLabelValues(op, result).Inc()
}
