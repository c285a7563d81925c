package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"
	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubInventarioRepo struct {
	registros map[uuid.UUID]*model.InventarioVela
}

var _ repository.InventarioRepository = (*stubInventarioRepo)(nil)

func (r *stubInventarioRepo) CreateTx(_ *gorm.DB, inv *model.InventarioVela) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.registros[inv.ID] = inv
	return nil
}

func (r *stubInventarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventarioVela, error) {
	inv, ok := r.registros[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return inv, nil
}

func (r *stubInventarioRepo) FindByNombre(_ context.Context, nombre string) (*model.InventarioVela, error) {
	for _, inv := range r.registros {
		if inv.NombreVela == nombre {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventarioRepo) List(_ context.Context, _ dto.InventarioFilter) ([]model.InventarioVela, error) {
	return nil, nil
}

func (r *stubInventarioRepo) ListBajoStock(_ context.Context) ([]model.InventarioVela, error) {
	return nil, nil
}

func (r *stubInventarioRepo) Update(_ context.Context, inv *model.InventarioVela) error {
	r.registros[inv.ID] = inv
	return nil
}

func (r *stubInventarioRepo) AgregarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int, _ time.Time) error {
	r.registros[id].StockActual += cantidad
	return nil
}

func (r *stubInventarioRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int, _ time.Time) error {
	r.registros[id].StockActual -= cantidad
	return nil
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

func seedInventario(repo *stubInventarioRepo, nombre string, actual, minimo int) *model.InventarioVela {
	inv := &model.InventarioVela{
		ID:          uuid.New(),
		NombreVela:  nombre,
		StockActual: actual,
		StockMinimo: minimo,
	}
	repo.registros[inv.ID] = inv
	return inv
}

func alertPayload(t *testing.T, inv *model.InventarioVela) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(StockAlertJobPayload{
		InventarioID: inv.ID.String(),
		NombreVela:   inv.NombreVela,
	})
	require.NoError(t, err)
	return raw
}

func TestStockAlertWorker_DropsAlertAfterRestock(t *testing.T) {
	repo := &stubInventarioRepo{registros: make(map[uuid.UUID]*model.InventarioVela)}
	inv := seedInventario(repo, "Vela Lavanda Lila 250ml", 50, 10)

	// nil dispatcher: EnqueueEmail would still no-op, but the worker must
	// drop the alert before enqueueing anything.
	w := NewStockAlertWorker(repo, NewDispatcher(nil), "alertas@aluenvelas.com", "Aluen")
	err := w.Process(context.Background(), alertPayload(t, inv))
	assert.NoError(t, err)
}

func TestStockAlertWorker_MalformedPayloadNotRetried(t *testing.T) {
	repo := &stubInventarioRepo{registros: make(map[uuid.UUID]*model.InventarioVela)}
	w := NewStockAlertWorker(repo, NewDispatcher(nil), "alertas@aluenvelas.com", "Aluen")

	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{no es json`)))
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{"inventario_id":"no-uuid"}`)))
}

func TestStockAlertWorker_SkipsWithoutAlertEmail(t *testing.T) {
	repo := &stubInventarioRepo{registros: make(map[uuid.UUID]*model.InventarioVela)}
	inv := seedInventario(repo, "Vela Vainilla Beige 120ml", 2, 10)

	w := NewStockAlertWorker(repo, NewDispatcher(nil), "", "Aluen")
	assert.NoError(t, w.Process(context.Background(), alertPayload(t, inv)))
}

func TestStockAlertWorker_UnknownInventarioRetries(t *testing.T) {
	repo := &stubInventarioRepo{registros: make(map[uuid.UUID]*model.InventarioVela)}
	w := NewStockAlertWorker(repo, NewDispatcher(nil), "alertas@aluenvelas.com", "Aluen")

	raw, err := json.Marshal(StockAlertJobPayload{InventarioID: uuid.NewString(), NombreVela: "Fantasma"})
	require.NoError(t, err)

	// Transient lookup failures return the error so the pool requeues.
	assert.Error(t, w.Process(context.Background(), raw))
}
