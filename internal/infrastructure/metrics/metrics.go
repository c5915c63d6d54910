// Package metrics expone los contadores operativos del motor de lotes en un
// servidor HTTP lateral (separado de la API para que el scrape no pase por
// el middleware de autenticación).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors métricas del motor de lotes.
type Collectors struct {
	IngestedBatches   prometheus.Counter
	IngestFailures    prometheus.Counter
	SlowMovingBatches prometheus.Gauge
	LandedPending     prometheus.Gauge
	UnknownChannel    prometheus.Gauge
	ValuationRequests *prometheus.CounterVec
}

// NewCollectors registra los colectores en el registry por defecto.
func NewCollectors() *Collectors {
	return &Collectors{
		IngestedBatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "acero_legacy_batches_ingested_total",
			Help: "Lotes sincronizados desde el servicio legado.",
		}),
		IngestFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "acero_legacy_ingest_failures_total",
			Help: "Corridas de ingesta que terminaron en error.",
		}),
		SlowMovingBatches: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "acero_slow_moving_batches",
			Help: "Lotes activos con más de 90 días en stock (última auditoría).",
		}),
		LandedPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "acero_landed_pending_batches",
			Help: "Lotes importados activos valorados al FOB por landed pendiente.",
		}),
		UnknownChannel: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "acero_unknown_channel_batches",
			Help: "Lotes activos con canal de adquisición fuera del enum.",
		}),
		ValuationRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "acero_valuation_requests_total",
			Help: "Consultas de valoración servidas, por endpoint.",
		}, []string{"endpoint"}),
	}
}
