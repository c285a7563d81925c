package model

import (
	"time"

	"github.com/google/uuid"
)

// InventarioVela is the finished-goods stock record. Keyed by the candle's
// display name — multiple recipe variants can share one name, so the name is
// the authoritative stock-bearing key, not the recipe id. The recipe
// reference exists for display only.
type InventarioVela struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecetaID    *uuid.UUID `gorm:"type:uuid"`
	NombreVela  string     `gorm:"uniqueIndex;not null"`
	StockActual int        `gorm:"not null;default:0"`
	StockMinimo int        `gorm:"not null;default:10"`

	UltimaProduccionFecha    *time.Time
	UltimaProduccionCantidad int `gorm:"not null;default:0"`
	UltimaVentaFecha         *time.Time
	UltimaVentaCantidad      int `gorm:"not null;default:0"`

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Receta *Receta `gorm:"foreignKey:RecetaID"`
}

func (InventarioVela) TableName() string { return "inventario_velas" }

// BajoStock reports whether the record is at or below its minimum threshold.
func (i *InventarioVela) BajoStock() bool { return i.StockActual <= i.StockMinimo }
