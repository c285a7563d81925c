package service

import (
	"context"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/repository"
	"github.com/aluenvelas/Back-aluen/internal/worker"

	"github.com/google/uuid"
)

// InventarioService manages finished-goods stock outside of production and
// sale transactions: listings, manual corrections and low-stock alerts.
type InventarioService interface {
	Obtener(ctx context.Context, id uuid.UUID) (*dto.InventarioVelaResponse, error)
	Listar(ctx context.Context, filter dto.InventarioFilter) ([]dto.InventarioVelaResponse, error)
	Alertas(ctx context.Context) ([]dto.InventarioVelaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInventarioRequest) (*dto.InventarioVelaResponse, error)
}

type inventarioService struct {
	repo       repository.InventarioRepository
	dispatcher *worker.Dispatcher
}

func NewInventarioService(repo repository.InventarioRepository, dispatcher *worker.Dispatcher) InventarioService {
	return &inventarioService{repo: repo, dispatcher: dispatcher}
}

func (s *inventarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.InventarioVelaResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("inventario")
	}
	resp := inventarioToResponse(inv)
	return &resp, nil
}

func (s *inventarioService) Listar(ctx context.Context, filter dto.InventarioFilter) ([]dto.InventarioVelaResponse, error) {
	inventario, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InventarioVelaResponse, len(inventario))
	for i := range inventario {
		resp[i] = inventarioToResponse(&inventario[i])
	}
	return resp, nil
}

func (s *inventarioService) Alertas(ctx context.Context) ([]dto.InventarioVelaResponse, error) {
	inventario, err := s.repo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.InventarioVelaResponse, len(inventario))
	for i := range inventario {
		resp[i] = inventarioToResponse(&inventario[i])
	}
	return resp, nil
}

// Actualizar applies a manual correction. StockActual sets an absolute value,
// Ajuste a delta; the result never goes below zero.
func (s *inventarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInventarioRequest) (*dto.InventarioVelaResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("inventario")
	}

	if req.StockMinimo != nil {
		inv.StockMinimo = *req.StockMinimo
	}
	if req.StockActual != nil {
		inv.StockActual = *req.StockActual
	} else if req.Ajuste != nil {
		nuevo := inv.StockActual + *req.Ajuste
		if nuevo < 0 {
			nuevo = 0
		}
		inv.StockActual = nuevo
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if inv.BajoStock() {
		_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertJobPayload{
			InventarioID: inv.ID.String(),
			NombreVela:   inv.NombreVela,
		})
	}

	resp := inventarioToResponse(inv)
	return &resp, nil
}
