package rpc

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sei_client",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of query requests sent to the node",
		},
		[]string{"service", "method", "status"},
	)

	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sei_client",
			Subsystem: "rpc",
			Name:      "request_latency_seconds",
			Help:      "Query request latency in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method"},
	)
)

var _ Transport = &MeteredTransport{}

// MeteredTransport wraps a Transport and records request counts and
// latencies per service method.
type MeteredTransport struct {
	next Transport
}

func NewMeteredTransport(next Transport) *MeteredTransport {
	return &MeteredTransport{next: next}
}

func (t *MeteredTransport) Request(ctx context.Context, fullMethod string, data []byte) ([]byte, error) {
	start := time.Now()
	bz, err := t.next.Request(ctx, fullMethod, data)

	service, method := SplitMethod(fullMethod)

	status := statusOK
	if err != nil {
		status = statusError
	}
	requestsTotal.WithLabelValues(service, method, status).Inc()
	requestLatency.WithLabelValues(service, method).Observe(time.Since(start).Seconds())

	return bz, err
}
