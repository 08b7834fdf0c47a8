package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// metrics instruments the query service. A nil Registerer leaves them unregistered.
type metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	bytesFetched    prometheus.Counter
}

func newMetrics(r prometheus.Registerer) *metrics {
	return &metrics{
		requests: promauto.With(r).NewCounterVec(prometheus.CounterOpts{
			Name: "remoteframe_query_requests_total",
			Help: "Total number of query service requests, by method and status code.",
		}, []string{"method", "code"}),
		requestDuration: promauto.With(r).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "remoteframe_query_request_duration_seconds",
			Help:    "Time taken to serve a query service request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		bytesFetched: promauto.With(r).NewCounter(prometheus.CounterOpts{
			Name: "remoteframe_query_fetched_bytes_total",
			Help: "Total number of data frame bytes streamed to clients.",
		}),
	}
}

func (m *metrics) observe(method string, start time.Time, err error) {
	m.requests.WithLabelValues(method, status.Code(err).String()).Inc()
	m.requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (m *metrics) unaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	res, err := handler(ctx, req)
	m.observe(info.FullMethod, start, err)
	return res, err
}

func (m *metrics) streamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	m.observe(info.FullMethod, start, err)
	return err
}
