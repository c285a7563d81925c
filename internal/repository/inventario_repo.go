package repository

import (
	"context"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioRepository is the data access contract for finished-goods stock.
// The display name is the lookup key; recipe ids are display-only references.
type InventarioRepository interface {
	CreateTx(tx *gorm.DB, inv *model.InventarioVela) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventarioVela, error)
	FindByNombre(ctx context.Context, nombreVela string) (*model.InventarioVela, error)
	List(ctx context.Context, filter dto.InventarioFilter) ([]model.InventarioVela, error)
	ListBajoStock(ctx context.Context) ([]model.InventarioVela, error)
	Update(ctx context.Context, inv *model.InventarioVela) error

	// AgregarStockTx increments finished-goods stock inside a production
	// transaction, stamping the last-production fields.
	AgregarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int, fecha time.Time) error

	// DescontarStockTx decrements finished-goods stock inside a sale
	// transaction, stamping the last-sale fields. The conditional WHERE keeps
	// stock non-negative even under concurrent sales.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int, fecha time.Time) error

	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) CreateTx(tx *gorm.DB, inv *model.InventarioVela) error {
	return tx.Create(inv).Error
}

func (r *inventarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventarioVela, error) {
	var inv model.InventarioVela
	err := r.db.WithContext(ctx).Preload("Receta").First(&inv, "id = ?", id).Error
	return &inv, err
}

func (r *inventarioRepo) FindByNombre(ctx context.Context, nombreVela string) (*model.InventarioVela, error) {
	var inv model.InventarioVela
	err := r.db.WithContext(ctx).
		Where("nombre_vela = ? AND activo = true", nombreVela).
		First(&inv).Error
	return &inv, err
}

func (r *inventarioRepo) List(ctx context.Context, filter dto.InventarioFilter) ([]model.InventarioVela, error) {
	q := r.db.WithContext(ctx).Model(&model.InventarioVela{}).Preload("Receta")

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
	default:
		q = q.Where("activo = true")
	}

	var inventario []model.InventarioVela
	err := q.Order("nombre_vela ASC").Find(&inventario).Error
	return inventario, err
}

func (r *inventarioRepo) ListBajoStock(ctx context.Context) ([]model.InventarioVela, error) {
	var inventario []model.InventarioVela
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock_actual <= stock_minimo").
		Order("stock_actual ASC").
		Find(&inventario).Error
	return inventario, err
}

func (r *inventarioRepo) Update(ctx context.Context, inv *model.InventarioVela) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *inventarioRepo) AgregarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int, fecha time.Time) error {
	return tx.Model(&model.InventarioVela{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_actual":               gorm.Expr("stock_actual + ?", cantidad),
			"ultima_produccion_fecha":    fecha,
			"ultima_produccion_cantidad": cantidad,
		}).Error
}

func (r *inventarioRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int, fecha time.Time) error {
	res := tx.Model(&model.InventarioVela{}).
		Where("id = ? AND stock_actual >= ?", id, cantidad).
		Updates(map[string]interface{}{
			"stock_actual":          gorm.Expr("stock_actual - ?", cantidad),
			"ultima_venta_fecha":    fecha,
			"ultima_venta_cantidad": cantidad,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflictoStock
	}
	return nil
}

func (r *inventarioRepo) DB() *gorm.DB { return r.db }
