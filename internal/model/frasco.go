package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Frasco is a candle container. Stock is tracked in whole units.
type Frasco struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string          `gorm:"index;not null"`
	Capacidad   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unidad      string          `gorm:"not null;default:'ml'"` // "ml" | "gramos"
	Material    string          `gorm:"not null"`              // vidrio, cerámica, lata…
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Proveedor   string          `gorm:"not null"`
	Descripcion *string
	ImagenURL   *string
	Stock       int  `gorm:"not null;default:0"`
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Frasco) TableName() string { return "frascos" }
