// Package metrics expone colectores Prometheus del API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/billing"
)

const namespace = "ledger"

var _ billing.MetricsRecorder = (*Recorder)(nil)

// Recorder colectores de documentos y de HTTP.
type Recorder struct {
	docsSaved  *prometheus.CounterVec
	grandTotal *prometheus.HistogramVec
	reqTotal   *prometheus.CounterVec
	reqDur     *prometheus.HistogramVec
}

// NewRecorder registra los colectores en reg (DefaultRegisterer si es nil).
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		docsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_saved_total",
			Help:      "Documentos guardados por tipo.",
		}, []string{"type"}),
		grandTotal: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_grand_total",
			Help:      "Distribución del total a pagar por tipo de documento.",
			Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		}, []string{"type"}),
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "Latencia HTTP en milisegundos.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
	}
	reg.MustRegister(r.docsSaved, r.grandTotal, r.reqTotal, r.reqDur)
	return r
}

// DocumentSaved cuenta el documento y observa su total.
func (r *Recorder) DocumentSaved(docType string, grandTotal decimal.Decimal) {
	r.docsSaved.WithLabelValues(docType).Inc()
	r.grandTotal.WithLabelValues(docType).Observe(grandTotal.InexactFloat64())
}

// Middleware mide cada petición usando la ruta registrada como etiqueta.
func (r *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		r.reqTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		r.reqDur.WithLabelValues(c.Method(), route).Observe(float64(time.Since(start)) / float64(time.Millisecond))
		return err
	}
}
