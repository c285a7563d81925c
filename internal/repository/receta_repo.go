package repository

import (
	"context"

	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecetaRepository is the data access contract for recipes.
type RecetaRepository interface {
	CreateTx(tx *gorm.DB, r *model.Receta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Receta, error)

	// FindByFormulaHash resolves the recipe lineage for duplicate-formula
	// detection. Only active recipes participate.
	FindByFormulaHash(ctx context.Context, hash string) (*model.Receta, error)

	// UltimoCodigoConPrefijo returns the highest existing code for a prefix
	// ("SOJ-" → "SOJ-0042"), or gorm.ErrRecordNotFound when none exists.
	UltimoCodigoConPrefijo(ctx context.Context, prefijo string) (string, error)

	List(ctx context.Context, filter dto.RecetaFilter) ([]model.Receta, error)
	Update(ctx context.Context, r *model.Receta) error
	MarcarInventarioDescontadoTx(tx *gorm.DB, id uuid.UUID) error
	SetActivo(ctx context.Context, id uuid.UUID, activo bool) error

	DB() *gorm.DB
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) CreateTx(tx *gorm.DB, receta *model.Receta) error {
	return tx.Create(receta).Error
}

func (r *recetaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	var receta model.Receta
	err := r.db.WithContext(ctx).
		Preload("Cera").Preload("Aditivo").Preload("Esencia").Preload("Frasco").
		First(&receta, "id = ?", id).Error
	return &receta, err
}

func (r *recetaRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Receta, error) {
	var receta model.Receta
	err := r.db.WithContext(ctx).
		Preload("Frasco").
		First(&receta, "codigo = ?", codigo).Error
	return &receta, err
}

func (r *recetaRepo) FindByFormulaHash(ctx context.Context, hash string) (*model.Receta, error) {
	var receta model.Receta
	err := r.db.WithContext(ctx).
		Where("formula_hash = ? AND activo = true", hash).
		First(&receta).Error
	return &receta, err
}

func (r *recetaRepo) UltimoCodigoConPrefijo(ctx context.Context, prefijo string) (string, error) {
	var receta model.Receta
	err := r.db.WithContext(ctx).
		Select("codigo").
		Where("codigo LIKE ?", prefijo+"-%").
		Order("codigo DESC").
		First(&receta).Error
	return receta.Codigo, err
}

func (r *recetaRepo) List(ctx context.Context, filter dto.RecetaFilter) ([]model.Receta, error) {
	q := r.db.WithContext(ctx).Model(&model.Receta{}).
		Preload("Cera").Preload("Aditivo").Preload("Esencia").Preload("Frasco")

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
	default:
		q = q.Where("activo = true")
	}

	var recetas []model.Receta
	err := q.Order("created_at DESC").Find(&recetas).Error
	return recetas, err
}

func (r *recetaRepo) Update(ctx context.Context, receta *model.Receta) error {
	return r.db.WithContext(ctx).Save(receta).Error
}

func (r *recetaRepo) MarcarInventarioDescontadoTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Receta{}).Where("id = ?", id).
		Update("inventario_descontado", true).Error
}

func (r *recetaRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	res := r.db.WithContext(ctx).Model(&model.Receta{}).Where("id = ?", id).Update("activo", activo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recetaRepo) DB() *gorm.DB { return r.db }
