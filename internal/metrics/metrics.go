package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hostel_http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hostel_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	AllocationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_allocations_created_total",
		Help: "Bed allocations successfully created",
	})

	AllocationsEnded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_allocations_ended_total",
		Help: "Bed allocations ended",
	})

	AllocationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostel_allocation_conflicts_total",
		Help: "Allocation attempts rejected because the bed or room was taken",
	})
)
