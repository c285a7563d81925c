package service

import (
	"context"
	"fmt"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"
	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/google/uuid"
)

type NombreVelaService interface {
	Crear(ctx context.Context, req dto.CrearNombreVelaRequest) (*dto.NombreVelaResponse, error)
	Listar(ctx context.Context, soloActivos bool) ([]dto.NombreVelaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type nombreVelaService struct {
	repo         repository.NombreVelaRepository
	frascoRepo   repository.FrascoRepository
	materialRepo repository.MaterialRepository
}

func NewNombreVelaService(
	repo repository.NombreVelaRepository,
	frascoRepo repository.FrascoRepository,
	materialRepo repository.MaterialRepository,
) NombreVelaService {
	return &nombreVelaService{repo: repo, frascoRepo: frascoRepo, materialRepo: materialRepo}
}

func (s *nombreVelaService) Crear(ctx context.Context, req dto.CrearNombreVelaRequest) (*dto.NombreVelaResponse, error) {
	frascoID, err := uuid.Parse(req.Frasco)
	if err != nil {
		return nil, apierror.New("frasco inválido")
	}
	frasco, err := s.frascoRepo.FindByID(ctx, frascoID)
	if err != nil {
		return nil, apierror.NotFound("frasco")
	}

	esenciaID, err := uuid.Parse(req.Esencia)
	if err != nil {
		return nil, apierror.New("esencia inválida")
	}
	esencia, err := s.materialRepo.FindByID(ctx, esenciaID)
	if err != nil {
		return nil, apierror.NotFound("esencia")
	}

	nombre := req.Nombre
	if nombre == "" {
		// "Vela Lavanda Lila 250ml" — essence + color + container capacity
		nombre = fmt.Sprintf("Vela %s %s %s%s", esencia.Nombre, req.Color, frasco.Capacidad.String(), frasco.Unidad)
	}

	if existente, err := s.repo.FindByNombre(ctx, nombre); err == nil && existente != nil {
		return nil, apierror.New(fmt.Sprintf("El nombre %q ya está registrado", nombre))
	}

	nv := &model.NombreVela{
		Nombre:      nombre,
		FrascoID:    frasco.ID,
		EsenciaID:   esencia.ID,
		Color:       req.Color,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, nv); err != nil {
		return nil, err
	}
	resp := nombreVelaToResponse(nv)
	return &resp, nil
}

func (s *nombreVelaService) Listar(ctx context.Context, soloActivos bool) ([]dto.NombreVelaResponse, error) {
	nombres, err := s.repo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.NombreVelaResponse, len(nombres))
	for i := range nombres {
		resp[i] = nombreVelaToResponse(&nombres[i])
	}
	return resp, nil
}

func (s *nombreVelaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("nombre de vela")
	}
	return s.repo.SetActivo(ctx, id, false)
}

func nombreVelaToResponse(nv *model.NombreVela) dto.NombreVelaResponse {
	return dto.NombreVelaResponse{
		ID:          nv.ID.String(),
		Nombre:      nv.Nombre,
		FrascoID:    nv.FrascoID.String(),
		EsenciaID:   nv.EsenciaID.String(),
		Color:       nv.Color,
		Descripcion: nv.Descripcion,
		Activo:      nv.Activo,
	}
}
