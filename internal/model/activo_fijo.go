package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivoFijo is workshop equipment: moldes, pistola de calor, estanterías…
type ActivoFijo struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string    `gorm:"index;not null"`
	Tipo             string    `gorm:"not null"` // equipo | herramienta | mueble | tecnologia | otro
	Descripcion      *string
	Valor            decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	FechaAdquisicion time.Time       `gorm:"not null"`
	Proveedor        string
	Estado           string `gorm:"not null;default:'bueno'"` // nuevo | bueno | regular | malo | obsoleto
	Ubicacion        string
	Activo           bool `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (ActivoFijo) TableName() string { return "activos_fijos" }
