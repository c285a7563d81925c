package service

import (
	"context"
	"errors"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"
	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/google/uuid"
)

type MaterialService interface {
	Crear(ctx context.Context, req dto.CrearMaterialRequest) (*dto.MaterialResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	Listar(ctx context.Context, filter dto.MaterialFilter) ([]dto.MaterialResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMaterialRequest) (*dto.MaterialResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.MaterialResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type materialService struct {
	repo repository.MaterialRepository
}

func NewMaterialService(repo repository.MaterialRepository) MaterialService {
	return &materialService{repo: repo}
}

func (s *materialService) Crear(ctx context.Context, req dto.CrearMaterialRequest) (*dto.MaterialResponse, error) {
	unidad := req.Unidad
	if unidad == "" {
		unidad = "gramos"
	}
	m := &model.Material{
		Nombre:         req.Nombre,
		Tipo:           req.Tipo,
		PrecioPorGramo: req.PrecioPorGramo,
		Proveedor:      req.Proveedor,
		Descripcion:    req.Descripcion,
		Stock:          req.Stock,
		Unidad:         unidad,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("material")
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) Listar(ctx context.Context, filter dto.MaterialFilter) ([]dto.MaterialResponse, error) {
	materiales, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MaterialResponse, len(materiales))
	for i := range materiales {
		resp[i] = materialToResponse(&materiales[i])
	}
	return resp, nil
}

func (s *materialService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("material")
	}
	if req.Nombre != "" {
		m.Nombre = req.Nombre
	}
	if req.Tipo != "" {
		m.Tipo = req.Tipo
	}
	if req.PrecioPorGramo != nil {
		m.PrecioPorGramo = *req.PrecioPorGramo
	}
	if req.Proveedor != "" {
		m.Proveedor = req.Proveedor
	}
	if req.Descripcion != nil {
		m.Descripcion = req.Descripcion
	}
	if req.Unidad != "" {
		m.Unidad = req.Unidad
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("material")
	}
	if err := s.repo.AjustarStock(ctx, id, req.Ajuste); err != nil {
		if errors.Is(err, repository.ErrConflictoStock) {
			return nil, apierror.StockInsuficiente(m.Nombre, "g", req.Ajuste.Neg(), m.Stock)
		}
		return nil, err
	}
	m, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("material")
	}
	return s.repo.SoftDelete(ctx, id)
}

func materialToResponse(m *model.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:             m.ID.String(),
		Nombre:         m.Nombre,
		Tipo:           m.Tipo,
		PrecioPorGramo: m.PrecioPorGramo,
		Proveedor:      m.Proveedor,
		Descripcion:    m.Descripcion,
		Stock:          m.Stock,
		Unidad:         m.Unidad,
		Activo:         m.Activo,
	}
}
