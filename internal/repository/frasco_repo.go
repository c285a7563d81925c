package repository

import (
	"context"

	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FrascoRepository is the data access contract for containers.
type FrascoRepository interface {
	Create(ctx context.Context, f *model.Frasco) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Frasco, error)
	List(ctx context.Context, activo string) ([]model.Frasco, error)
	Update(ctx context.Context, f *model.Frasco) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	AjustarStock(ctx context.Context, id uuid.UUID, delta int) error
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, unidades int) error
}

type frascoRepo struct{ db *gorm.DB }

func NewFrascoRepository(db *gorm.DB) FrascoRepository { return &frascoRepo{db: db} }

func (r *frascoRepo) Create(ctx context.Context, f *model.Frasco) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *frascoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Frasco, error) {
	var f model.Frasco
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *frascoRepo) List(ctx context.Context, activo string) ([]model.Frasco, error) {
	q := r.db.WithContext(ctx).Model(&model.Frasco{})
	switch activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
	default:
		q = q.Where("activo = true")
	}
	var frascos []model.Frasco
	err := q.Order("nombre ASC").Find(&frascos).Error
	return frascos, err
}

func (r *frascoRepo) Update(ctx context.Context, f *model.Frasco) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *frascoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Frasco{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *frascoRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).Model(&model.Frasco{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflictoStock
	}
	return nil
}

func (r *frascoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, unidades int) error {
	res := tx.Model(&model.Frasco{}).
		Where("id = ? AND stock >= ?", id, unidades).
		Update("stock", gorm.Expr("stock - ?", unidades))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflictoStock
	}
	return nil
}
