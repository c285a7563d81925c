package repository

import (
	"context"

	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NombreVelaRepository stores the candle display-name catalog.
type NombreVelaRepository interface {
	Create(ctx context.Context, nv *model.NombreVela) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NombreVela, error)
	FindByNombre(ctx context.Context, nombre string) (*model.NombreVela, error)
	List(ctx context.Context, soloActivos bool) ([]model.NombreVela, error)
	Update(ctx context.Context, nv *model.NombreVela) error
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type nombreVelaRepo struct{ db *gorm.DB }

func NewNombreVelaRepository(db *gorm.DB) NombreVelaRepository { return &nombreVelaRepo{db: db} }

func (r *nombreVelaRepo) Create(ctx context.Context, nv *model.NombreVela) error {
	return r.db.WithContext(ctx).Create(nv).Error
}

func (r *nombreVelaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.NombreVela, error) {
	var nv model.NombreVela
	err := r.db.WithContext(ctx).Preload("Frasco").Preload("Esencia").First(&nv, "id = ?", id).Error
	return &nv, err
}

func (r *nombreVelaRepo) FindByNombre(ctx context.Context, nombre string) (*model.NombreVela, error) {
	var nv model.NombreVela
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&nv).Error
	return &nv, err
}

func (r *nombreVelaRepo) List(ctx context.Context, soloActivos bool) ([]model.NombreVela, error) {
	q := r.db.WithContext(ctx).Preload("Frasco").Preload("Esencia")
	if soloActivos {
		q = q.Where("activo = true")
	}
	var nombres []model.NombreVela
	err := q.Order("nombre ASC").Find(&nombres).Error
	return nombres, err
}

func (r *nombreVelaRepo) Update(ctx context.Context, nv *model.NombreVela) error {
	return r.db.WithContext(ctx).Save(nv).Error
}

func (r *nombreVelaRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.NombreVela{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}

// PuntoVentaRepository stores points of sale.
type PuntoVentaRepository interface {
	Create(ctx context.Context, pv *model.PuntoVenta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PuntoVenta, error)
	List(ctx context.Context, soloActivos bool) ([]model.PuntoVenta, error)
	Update(ctx context.Context, pv *model.PuntoVenta) error
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type puntoVentaRepo struct{ db *gorm.DB }

func NewPuntoVentaRepository(db *gorm.DB) PuntoVentaRepository { return &puntoVentaRepo{db: db} }

func (r *puntoVentaRepo) Create(ctx context.Context, pv *model.PuntoVenta) error {
	return r.db.WithContext(ctx).Create(pv).Error
}

func (r *puntoVentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PuntoVenta, error) {
	var pv model.PuntoVenta
	err := r.db.WithContext(ctx).First(&pv, "id = ?", id).Error
	return &pv, err
}

func (r *puntoVentaRepo) List(ctx context.Context, soloActivos bool) ([]model.PuntoVenta, error) {
	q := r.db.WithContext(ctx).Model(&model.PuntoVenta{})
	if soloActivos {
		q = q.Where("activo = true")
	}
	var puntos []model.PuntoVenta
	err := q.Order("nombre ASC").Find(&puntos).Error
	return puntos, err
}

func (r *puntoVentaRepo) Update(ctx context.Context, pv *model.PuntoVenta) error {
	return r.db.WithContext(ctx).Save(pv).Error
}

func (r *puntoVentaRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.PuntoVenta{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}

// ActivoFijoRepository stores workshop equipment.
type ActivoFijoRepository interface {
	Create(ctx context.Context, af *model.ActivoFijo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ActivoFijo, error)
	List(ctx context.Context, tipo string, soloActivos bool) ([]model.ActivoFijo, error)
	Update(ctx context.Context, af *model.ActivoFijo) error
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error
}

type activoFijoRepo struct{ db *gorm.DB }

func NewActivoFijoRepository(db *gorm.DB) ActivoFijoRepository { return &activoFijoRepo{db: db} }

func (r *activoFijoRepo) Create(ctx context.Context, af *model.ActivoFijo) error {
	return r.db.WithContext(ctx).Create(af).Error
}

func (r *activoFijoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ActivoFijo, error) {
	var af model.ActivoFijo
	err := r.db.WithContext(ctx).First(&af, "id = ?", id).Error
	return &af, err
}

func (r *activoFijoRepo) List(ctx context.Context, tipo string, soloActivos bool) ([]model.ActivoFijo, error) {
	q := r.db.WithContext(ctx).Model(&model.ActivoFijo{})
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if soloActivos {
		q = q.Where("activo = true")
	}
	var activos []model.ActivoFijo
	err := q.Order("nombre ASC").Find(&activos).Error
	return activos, err
}

func (r *activoFijoRepo) Update(ctx context.Context, af *model.ActivoFijo) error {
	return r.db.WithContext(ctx).Save(af).Error
}

func (r *activoFijoRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).Model(&model.ActivoFijo{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}
