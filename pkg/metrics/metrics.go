// Package metrics exposes Prometheus metrics for HTTP traffic, model calls and
// generated workflows.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dukex/flowsmith/pkg/events"
	"github.com/dukex/flowsmith/pkg/llm"
	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// Collector holds all Prometheus metrics for the service on its own registry.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	LLMRequests *prometheus.CounterVec
	LLMDuration *prometheus.HistogramVec

	WorkflowsGenerated prometheus.Counter
	WorkflowNodes      prometheus.Histogram
}

var _ llm.Observer = (*Collector)(nil)

// NewCollector creates a collector with every metric prefixed by namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		LLMRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "Total number of model completion calls",
			},
			[]string{"purpose", "outcome"},
		),
		LLMDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_request_duration_seconds",
				Help:      "Model completion latency in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"purpose"},
		),
		WorkflowsGenerated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workflows_generated_total",
				Help:      "Total number of workflows generated and stored",
			},
		),
		WorkflowNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "workflow_nodes",
				Help:      "Number of nodes per generated workflow",
				Buckets:   prometheus.LinearBuckets(1, 2, 10),
			},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.LLMRequests,
		c.LLMDuration,
		c.WorkflowsGenerated,
		c.WorkflowNodes,
	)

	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveCompletion records one model call.
func (c *Collector) ObserveCompletion(purpose llm.Purpose, duration time.Duration, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}

	c.LLMRequests.WithLabelValues(string(purpose), outcome).Inc()
	c.LLMDuration.WithLabelValues(string(purpose)).Observe(duration.Seconds())
}

// HandleWorkflowGenerated is an event bus handler for WorkflowGenerated.
func (c *Collector) HandleWorkflowGenerated(_ context.Context, event any) error {
	generated, ok := event.(*events.WorkflowGenerated)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	c.WorkflowsGenerated.Inc()
	c.WorkflowNodes.Observe(float64(generated.NodeCount))

	return nil
}

// Middleware counts requests by their route pattern so ids in paths do not
// explode label cardinality.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		route := ctx.Route().Path
		method := ctx.Method()

		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		c.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}
