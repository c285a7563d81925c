package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exposed on /metrics. Registered once at package init via promauto.
var (
	ProduccionesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aluen_producciones_total",
		Help: "Production runs committed",
	})

	VentasTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aluen_ventas_total",
		Help: "Sales committed",
	})

	ConflictosStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aluen_conflictos_stock_total",
		Help: "Transactions rolled back by the conditional stock guard",
	})

	AlertasStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aluen_alertas_stock_total",
		Help: "Low stock alerts enqueued",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aluen_http_requests_total",
		Help: "HTTP requests served, by method and status",
	}, []string{"method", "status"})
)
