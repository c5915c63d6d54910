// Package scheduler corre las tareas programadas del motor de lotes: la
// ingesta desde el servicio legado y la auditoría diaria de envejecimiento.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/internal/domain/valuation"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/legacy"
	"github.com/tu-usuario/acero-erp/internal/infrastructure/metrics"
	"github.com/tu-usuario/acero-erp/pkg/config"
	"github.com/tu-usuario/acero-erp/pkg/logger"
)

// BatchUpserter persistencia local de los lotes sincronizados.
type BatchUpserter interface {
	Upsert(ctx context.Context, b *entity.StockBatch) error
}

// ActiveBatchLister lectura del conjunto activo de toda la empresa, para la
// auditoría de envejecimiento.
type ActiveBatchLister interface {
	ListActive(ctx context.Context, companyID string) ([]entity.StockBatch, error)
}

// Scheduler administra los trabajos cron.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.BatchesConfig
	legacy   legacy.Client
	upserter BatchUpserter
	lister   ActiveBatchLister
	mets     *metrics.Collectors
	log      *logger.Logger

	lastSync time.Time
}

// New construye el scheduler. Si no hay servicio legado configurado, el
// trabajo de ingesta no se registra.
func New(
	cfg config.BatchesConfig,
	legacyClient legacy.Client,
	upserter BatchUpserter,
	lister ActiveBatchLister,
	mets *metrics.Collectors,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		legacy:   legacyClient,
		upserter: upserter,
		lister:   lister,
		mets:     mets,
		log:      log,
	}
}

// Start registra los trabajos y arranca el cron.
func (s *Scheduler) Start() {
	if s.cfg.LegacyURL != "" {
		if _, err := s.cron.AddFunc(s.cfg.IngestSchedule, s.runIngest); err != nil {
			s.log.Error().Err(err).Str("schedule", s.cfg.IngestSchedule).
				Msg("no se pudo programar la ingesta del legado")
		}
	}
	if _, err := s.cron.AddFunc(s.cfg.AuditSchedule, s.runAgingAudit); err != nil {
		s.log.Error().Err(err).Str("schedule", s.cfg.AuditSchedule).
			Msg("no se pudo programar la auditoría de envejecimiento")
	}
	s.cron.Start()
	s.log.Info().Msg("scheduler iniciado")
}

// Stop detiene el cron y espera a que terminen los trabajos en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler detenido")
}

// runIngest sincroniza los lotes del servicio legado hacia la base local.
// Incremental: solo pide lo modificado desde la última corrida exitosa.
func (s *Scheduler) runIngest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	batches, err := s.legacy.FetchBatches(ctx, s.cfg.LegacyCompanyID, s.lastSync)
	if err != nil {
		s.mets.IngestFailures.Inc()
		s.log.Error().Err(err).Msg("ingesta del legado falló; la copia local queda como estaba")
		return
	}

	synced := 0
	for i := range batches {
		if err := s.upserter.Upsert(ctx, &batches[i]); err != nil {
			s.log.Error().Err(err).Str("batch_id", batches[i].ID).Msg("no se pudo persistir lote sincronizado")
			continue
		}
		synced++
	}
	s.mets.IngestedBatches.Add(float64(synced))
	s.lastSync = time.Now()
	s.log.Info().Int("synced", synced).Int("fetched", len(batches)).
		Msg("ingesta del legado completada")
}

// runAgingAudit recorre el conjunto activo y publica los contadores de
// lotes lentos, landed pendiente y canal desconocido. Solo observa: no muta.
func (s *Scheduler) runAgingAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	active, err := s.lister.ListActive(ctx, s.cfg.LegacyCompanyID)
	if err != nil {
		s.log.Error().Err(err).Msg("auditoría de envejecimiento no pudo leer el conjunto activo")
		return
	}

	now := time.Now()
	var slow, pending, unknown int
	for i := range active {
		b := &active[i]
		if valuation.IsSlowMoving(b.ReceivedAt, now) {
			slow++
			days, _ := valuation.DaysInStock(b.ReceivedAt, now)
			s.log.Warn().
				Str("batch_id", b.ID).
				Str("product_id", b.ProductID).
				Int("days_in_stock", days).
				Msg("lote de lento movimiento")
		}
		if valuation.IsEstimatedCost(*b) {
			pending++
		}
		if !b.ProcurementChannel.IsValid() {
			unknown++
		}
	}

	s.mets.SlowMovingBatches.Set(float64(slow))
	s.mets.LandedPending.Set(float64(pending))
	s.mets.UnknownChannel.Set(float64(unknown))
	s.log.Info().
		Int("active", len(active)).
		Int("slow_moving", slow).
		Int("landed_pending", pending).
		Int("unknown_channel", unknown).
		Msg("auditoría de envejecimiento completada")
}
