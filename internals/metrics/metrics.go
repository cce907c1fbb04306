// Package metrics: counter & histogram prometheus untuk HTTP dan mutasi data.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	recordsMutated *prometheus.CounterVec
}

// New memakai registry sendiri, bukan prometheus.DefaultRegisterer.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tahfidz_http_requests_total",
			Help: "Jumlah request HTTP per method, route, dan status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tahfidz_http_request_duration_seconds",
			Help:    "Durasi request HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recordsMutated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tahfidz_records_mutated_total",
			Help: "Jumlah record yang dibuat, diubah, atau dihapus per tabel.",
		}, []string{"table", "op"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.recordsMutated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware mencatat setiap request. Label route memakai pola route fiber
// (mis. /api/santri/:id) agar kardinalitas tetap kecil.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" || route == "/" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler: endpoint /metrics
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// RecordMutation dipanggil service setelah create/update/delete berhasil.
// Aman dipanggil pada receiver nil.
func (m *Metrics) RecordMutation(table, op string) {
	if m == nil {
		return
	}
	m.recordsMutated.WithLabelValues(table, op).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
