package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a raw input of the workshop: wax, additive or fragrance.
// Stock is tracked in grams and never goes below zero.
type Material struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string          `gorm:"index;not null"`
	Tipo           string          `gorm:"not null"` // "cera" | "aditivo" | "esencia" | "otro"
	PrecioPorGramo decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Proveedor      string          `gorm:"not null"`
	Descripcion    *string
	Stock          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"` // grams
	Unidad         string          `gorm:"not null;default:'gramos'"`             // "gramos" | "ml" | "unidades"
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName overrides GORM's default pluralization (materials → materiales).
func (Material) TableName() string { return "materiales" }
