package model

import (
	"time"

	"github.com/google/uuid"
)

// NombreVela is the catalog of candle display names. When no explicit name is
// given, one is generated from the essence, color and container capacity
// ("Vela Lavanda Lila 250ml").
type NombreVela struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	FrascoID    uuid.UUID `gorm:"type:uuid;not null"`
	EsenciaID   uuid.UUID `gorm:"type:uuid;not null"`
	Color       string    `gorm:"not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time

	Frasco  *Frasco   `gorm:"foreignKey:FrascoID"`
	Esencia *Material `gorm:"foreignKey:EsenciaID"`
}

func (NombreVela) TableName() string { return "nombres_velas" }
