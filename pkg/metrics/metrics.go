package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const unmatchedPath = "unmatched"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transitmerge",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "transitmerge",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	UpstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transitmerge",
		Subsystem: "upstream",
		Name:      "calls_total",
		Help:      "Upstream provider calls by outcome",
	}, []string{"source", "mode", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "transitmerge",
		Subsystem: "upstream",
		Name:      "call_duration_seconds",
		Help:      "Latency of upstream provider calls",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"source", "mode"})

	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "transitmerge",
		Subsystem: "planner",
		Name:      "aggregation_duration_seconds",
		Help:      "Time taken to plan one itinerary request end to end",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	ItinerariesReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "transitmerge",
		Subsystem: "planner",
		Name:      "itineraries_returned",
		Help:      "Number of itineraries returned per plan",
		Buckets:   []float64{0, 1, 2, 5, 10},
	})

	PartialFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "transitmerge",
		Subsystem: "planner",
		Name:      "partial_failures_total",
		Help:      "Plans answered while at least one upstream call failed",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transitmerge",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total result cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "transitmerge",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total result cache misses",
	}, []string{"operation"})
)

// ObserveUpstream records one upstream call, err decides the outcome label
func ObserveUpstream(source string, mode string, started time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	UpstreamCalls.WithLabelValues(source, mode, outcome).Inc()
	UpstreamDuration.WithLabelValues(source, mode).Observe(time.Since(started).Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		path := c.Route().Path

		// requests no route answered share one series whatever their URL
		var fiberError *fiber.Error
		if errors.As(err, &fiberError) {
			status = fiberError.Code
			if fiberError.Code == fiber.StatusNotFound {
				path = unmatchedPath
			}
		}
		if path == "" {
			path = unmatchedPath
		}

		httpRequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler serves the Prometheus exposition format
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())

	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
