package repository

import (
	"context"
	"errors"

	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrConflictoStock is returned by conditional stock writes when the guarded
// update matched no rows — i.e. another writer drained the stock between the
// verify and commit phases. The enclosing transaction must roll back.
var ErrConflictoStock = errors.New("conflicto de stock: la escritura condicional no afectó filas")

// MaterialRepository defines the data access contract for raw materials.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, error)
	Update(ctx context.Context, m *model.Material) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// AjustarStock applies a delta outside any production transaction
	// (manual corrections). The guard keeps stock from going negative.
	AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// DescontarStockTx runs inside a production transaction. The conditional
	// WHERE acts as a compare-and-swap: zero affected rows means a concurrent
	// writer consumed the stock after our verify phase.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, gramos decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *materialRepo) List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, error) {
	q := r.db.WithContext(ctx).Model(&model.Material{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var materiales []model.Material
	err := q.Order("nombre ASC").Find(&materiales).Error
	return materiales, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *materialRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Material{}).
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

func (r *materialRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, gramos decimal.Decimal) error {
	res := tx.Model(&model.Material{}).
		Where("id = ? AND stock >= ?", id, gramos).
		Update("stock", gorm.Expr("stock - ?", gramos))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflictoStock
	}
	return nil
}

func (r *materialRepo) DB() *gorm.DB { return r.db }
