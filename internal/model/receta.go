package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receta is a candle bill-of-materials plus its derived cost fields.
//
// Codigo is generated once on first production (PREFIX-NNNN, prefix derived
// from the wax name) and never regenerated. FormulaHash is the canonical
// identity of the formula — two production runs with equal hashes belong to
// the same lineage and do not create a second Receta row.
type Receta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string

	// Formula: cera + aditivo opcional + esencia, porcentajes suman 100.
	CeraID            uuid.UUID       `gorm:"type:uuid;not null"`
	CeraPorcentaje    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:85"`
	AditivoID         *uuid.UUID      `gorm:"type:uuid"`
	AditivoPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	EsenciaID         uuid.UUID       `gorm:"type:uuid;not null"`
	EsenciaPorcentaje decimal.Decimal `gorm:"type:decimal(5,2);not null;default:10"`
	FrascoID          uuid.UUID       `gorm:"type:uuid;not null"`

	GramajeTotal     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnidadesProducir int             `gorm:"not null;default:1"`

	// Costos fijos por unidad (siete renglones).
	CostoPabiloChapeta decimal.Decimal `gorm:"type:decimal(12,2);not null;default:500"`
	CostoTrabajo       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:2500"`
	CostoServicios     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:400"`
	CostoServilletas   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:200"`
	CostoAnilina       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:50"`
	CostoStickers      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:100"`
	CostoEmpaque       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:1000"`

	// Derivados — recalculados en cada guardado por internal/costing.
	CostoPorUnidad      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoTotal          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostosFijosTotales  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:4750"`
	PorcentajeGanancia  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:20"`
	PrecioVentaSugerido decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	FormulaHash          string `gorm:"index;not null"`
	ImagenURL            *string
	InventarioDescontado bool `gorm:"not null;default:false"`
	// Visible controls catalog exposure; independent of the Activo soft delete.
	Visible   bool `gorm:"not null;default:true"`
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cera    *Material `gorm:"foreignKey:CeraID"`
	Aditivo *Material `gorm:"foreignKey:AditivoID"`
	Esencia *Material `gorm:"foreignKey:EsenciaID"`
	Frasco  *Frasco   `gorm:"foreignKey:FrascoID"`
}

func (Receta) TableName() string { return "recetas" }
