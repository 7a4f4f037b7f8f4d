package metrics

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics считает HTTP-запросы по операциям
type Metrics struct {
	requests *prometheus.CounterVec
}

func New(requests *prometheus.CounterVec) *Metrics {
	return &Metrics{requests: requests}
}

func (m *Metrics) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		next(ctx)

		operation := "unknown"
		if op := ctx.Operation(); op != nil {
			operation = op.OperationID
		}
		m.requests.WithLabelValues(operation, ctx.Method(), strconv.Itoa(ctx.Status())).Inc()
	}
}
