package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VentaItem is one line of a sale. RecetaNombre and the unit price are
// snapshots at sale time — later recipe edits must not rewrite history.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecetaID       uuid.UUID       `gorm:"type:uuid;not null"`
	RecetaNombre   string          `gorm:"not null"`
	FrascoID       *uuid.UUID      `gorm:"type:uuid"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Descripcion    *string

	Receta *Receta `gorm:"foreignKey:RecetaID"`
	Frasco *Frasco `gorm:"foreignKey:FrascoID"`
}

func (VentaItem) TableName() string { return "venta_items" }

// Venta is a completed (or pending/cancelled) sale. NumeroVenta follows
// V-<year><month>-<seq>, sequence restarting each month.
type Venta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroVenta string    `gorm:"uniqueIndex;not null"`
	Fecha       time.Time `gorm:"index;not null"`

	ClienteNombre    string `gorm:"not null;default:'Cliente'"`
	ClienteEmail     *string
	ClienteTelefono  *string
	ClienteDireccion *string

	PuntoVentaID     *uuid.UUID `gorm:"type:uuid"`
	PuntoVentaNombre *string

	Items []VentaItem `gorm:"foreignKey:VentaID"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Descuento decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Impuestos decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	MetodoPago string `gorm:"not null;default:'efectivo'"` // efectivo | tarjeta | transferencia | otro
	Estado     string `gorm:"index;not null;default:'completada'"`
	Notas      *string

	CreadoPorID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	PuntoVenta *PuntoVenta `gorm:"foreignKey:PuntoVentaID"`
	CreadoPor  *Usuario    `gorm:"foreignKey:CreadoPorID"`
}

func (Venta) TableName() string { return "ventas" }
