package worker

// stock_alert_worker.go
// Processes low-stock alert jobs from QueueStockAlert. A production or sale
// that leaves a finished-goods record at or below its minimum enqueues one of
// these; the worker re-reads current stock and forwards an email job so a
// stale alert never fires after a restock.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// StockAlertJobPayload is the job envelope sent to QueueStockAlert.
type StockAlertJobPayload struct {
	InventarioID string `json:"inventario_id"`
	NombreVela   string `json:"nombre_vela"`
}

type StockAlertWorker struct {
	inventarioRepo repository.InventarioRepository
	dispatcher     *Dispatcher
	alertEmail     string
	negocio        string
}

func NewStockAlertWorker(inventarioRepo repository.InventarioRepository, dispatcher *Dispatcher, alertEmail, negocio string) *StockAlertWorker {
	return &StockAlertWorker{
		inventarioRepo: inventarioRepo,
		dispatcher:     dispatcher,
		alertEmail:     alertEmail,
		negocio:        negocio,
	}
}

func (w *StockAlertWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload StockAlertJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("stock_alert_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if w.alertEmail == "" {
		log.Debug().Msg("stock_alert_worker: ALERT_EMAIL not configured, skipping")
		return nil
	}

	id, err := uuid.Parse(payload.InventarioID)
	if err != nil {
		log.Error().Str("inventario_id", payload.InventarioID).Msg("stock_alert_worker: invalid inventario_id")
		return nil
	}

	inv, err := w.inventarioRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("stock_alert_worker: inventario %s: %w", payload.InventarioID, err)
	}
	if !inv.BajoStock() {
		log.Debug().Str("nombre", inv.NombreVela).Msg("stock_alert_worker: restocked since enqueue, dropping alert")
		return nil
	}

	subject := fmt.Sprintf("[%s] Stock bajo: %s", w.negocio, inv.NombreVela)
	body := fmt.Sprintf(
		"La vela %q quedó en %d unidades (mínimo configurado: %d).\n\nReponer producción.",
		inv.NombreVela, inv.StockActual, inv.StockMinimo,
	)

	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: w.alertEmail,
		Subject: subject,
		Body:    body,
	})
}
