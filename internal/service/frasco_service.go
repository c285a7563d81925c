package service

import (
	"context"
	"errors"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"
	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FrascoService interface {
	Crear(ctx context.Context, req dto.CrearFrascoRequest) (*dto.FrascoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.FrascoResponse, error)
	Listar(ctx context.Context, activo string) ([]dto.FrascoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFrascoRequest) (*dto.FrascoResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarFrascoStockRequest) (*dto.FrascoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type frascoService struct {
	repo repository.FrascoRepository
}

func NewFrascoService(repo repository.FrascoRepository) FrascoService {
	return &frascoService{repo: repo}
}

func (s *frascoService) Crear(ctx context.Context, req dto.CrearFrascoRequest) (*dto.FrascoResponse, error) {
	unidad := req.Unidad
	if unidad == "" {
		unidad = "ml"
	}
	f := &model.Frasco{
		Nombre:      req.Nombre,
		Capacidad:   req.Capacidad,
		Unidad:      unidad,
		Material:    req.Material,
		Precio:      req.Precio,
		Proveedor:   req.Proveedor,
		Descripcion: req.Descripcion,
		ImagenURL:   req.ImagenURL,
		Stock:       req.Stock,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	resp := frascoToResponse(f)
	return &resp, nil
}

func (s *frascoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.FrascoResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("frasco")
	}
	resp := frascoToResponse(f)
	return &resp, nil
}

func (s *frascoService) Listar(ctx context.Context, activo string) ([]dto.FrascoResponse, error) {
	frascos, err := s.repo.List(ctx, activo)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FrascoResponse, len(frascos))
	for i := range frascos {
		resp[i] = frascoToResponse(&frascos[i])
	}
	return resp, nil
}

func (s *frascoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFrascoRequest) (*dto.FrascoResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("frasco")
	}
	if req.Nombre != "" {
		f.Nombre = req.Nombre
	}
	if req.Capacidad != nil {
		f.Capacidad = *req.Capacidad
	}
	if req.Unidad != "" {
		f.Unidad = req.Unidad
	}
	if req.Material != "" {
		f.Material = req.Material
	}
	if req.Precio != nil {
		f.Precio = *req.Precio
	}
	if req.Proveedor != "" {
		f.Proveedor = req.Proveedor
	}
	if req.Descripcion != nil {
		f.Descripcion = req.Descripcion
	}
	if req.ImagenURL != nil {
		f.ImagenURL = req.ImagenURL
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	resp := frascoToResponse(f)
	return &resp, nil
}

func (s *frascoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarFrascoStockRequest) (*dto.FrascoResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("frasco")
	}
	if err := s.repo.AjustarStock(ctx, id, req.Ajuste); err != nil {
		if errors.Is(err, repository.ErrConflictoStock) {
			return nil, apierror.StockInsuficiente(f.Nombre, " unidades",
				decimal.NewFromInt(int64(-req.Ajuste)), decimal.NewFromInt(int64(f.Stock)))
		}
		return nil, err
	}
	f, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := frascoToResponse(f)
	return &resp, nil
}

func (s *frascoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("frasco")
	}
	return s.repo.SoftDelete(ctx, id)
}

func frascoToResponse(f *model.Frasco) dto.FrascoResponse {
	return dto.FrascoResponse{
		ID:          f.ID.String(),
		Nombre:      f.Nombre,
		Capacidad:   f.Capacidad,
		Unidad:      f.Unidad,
		Material:    f.Material,
		Precio:      f.Precio,
		Proveedor:   f.Proveedor,
		Descripcion: f.Descripcion,
		ImagenURL:   f.ImagenURL,
		Stock:       f.Stock,
		Activo:      f.Activo,
	}
}
