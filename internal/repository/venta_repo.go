package repository

import (
	"context"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, venta *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// UltimoNumeroConPrefijo returns the highest sale number starting with the
	// given month prefix (e.g. "V-202608-"). Called inside the sale transaction
	// so the sequence cannot go backwards.
	UltimoNumeroConPrefijo(tx *gorm.DB, prefijo string) (string, error)

	TotalesPorMetodo(ctx context.Context, desde, hasta time.Time) ([]dto.VentasPorMetodo, error)
	ProductosMasVendidos(ctx context.Context, desde, hasta time.Time, limite int) ([]dto.ProductoVendido, error)
	VentasPorDia(ctx context.Context, desde, hasta time.Time) ([]dto.VentasPorDia, error)
	Totales(ctx context.Context, desde, hasta time.Time) (int64, decimal.Decimal, error)

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(tx *gorm.DB, venta *model.Venta) error {
	return tx.Create(venta).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var venta model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("PuntoVenta").
		First(&venta, "id = ?", id).Error
	return &venta, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.MetodoPago != "" {
		q = q.Where("metodo_pago = ?", filter.MetodoPago)
	}
	if filter.Cliente != "" {
		q = q.Where("cliente_nombre ILIKE ?", "%"+filter.Cliente+"%")
	}
	if filter.FechaInicio != "" {
		if t, err := time.Parse("2006-01-02", filter.FechaInicio); err == nil {
			q = q.Where("fecha >= ?", t)
		}
	}
	if filter.FechaFin != "" {
		if t, err := time.Parse("2006-01-02", filter.FechaFin); err == nil {
			q = q.Where("fecha < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ventas []model.Venta
	err := q.Preload("Items").
		Order("fecha DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *ventaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venta_id = ?", id).Delete(&model.VentaItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Venta{}, "id = ?", id).Error
	})
}

func (r *ventaRepo) UltimoNumeroConPrefijo(tx *gorm.DB, prefijo string) (string, error) {
	var venta model.Venta
	err := tx.Where("numero_venta LIKE ?", prefijo+"%").
		Order("numero_venta DESC").
		First(&venta).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return venta.NumeroVenta, nil
}

func (r *ventaRepo) TotalesPorMetodo(ctx context.Context, desde, hasta time.Time) ([]dto.VentasPorMetodo, error) {
	var filas []dto.VentasPorMetodo
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("metodo_pago, SUM(total) AS total, COUNT(*) AS cantidad").
		Where("estado = 'completada' AND fecha >= ? AND fecha < ?", desde, hasta).
		Group("metodo_pago").
		Order("total DESC").
		Scan(&filas).Error
	return filas, err
}

func (r *ventaRepo) ProductosMasVendidos(ctx context.Context, desde, hasta time.Time, limite int) ([]dto.ProductoVendido, error) {
	var filas []dto.ProductoVendido
	err := r.db.WithContext(ctx).Model(&model.VentaItem{}).
		Select("venta_items.receta_nombre AS nombre, SUM(venta_items.cantidad) AS cantidad, SUM(venta_items.subtotal) AS ingresos").
		Joins("JOIN ventas ON ventas.id = venta_items.venta_id").
		Where("ventas.estado = 'completada' AND ventas.fecha >= ? AND ventas.fecha < ?", desde, hasta).
		Group("venta_items.receta_nombre").
		Order("cantidad DESC").
		Limit(limite).
		Scan(&filas).Error
	return filas, err
}

func (r *ventaRepo) VentasPorDia(ctx context.Context, desde, hasta time.Time) ([]dto.VentasPorDia, error) {
	var filas []dto.VentasPorDia
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("TO_CHAR(fecha, 'YYYY-MM-DD') AS fecha, SUM(total) AS total, COUNT(*) AS cantidad").
		Where("estado = 'completada' AND fecha >= ? AND fecha < ?", desde, hasta).
		Group("TO_CHAR(fecha, 'YYYY-MM-DD')").
		Order("fecha ASC").
		Scan(&filas).Error
	return filas, err
}

func (r *ventaRepo) Totales(ctx context.Context, desde, hasta time.Time) (int64, decimal.Decimal, error) {
	var fila struct {
		Cantidad int64
		Total    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Select("COUNT(*) AS cantidad, COALESCE(SUM(total), 0) AS total").
		Where("estado = 'completada' AND fecha >= ? AND fecha < ?", desde, hasta).
		Scan(&fila).Error
	return fila.Cantidad, fila.Total, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
