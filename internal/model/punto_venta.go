package model

import (
	"time"

	"github.com/google/uuid"
)

// PuntoVenta is a physical or online point of sale (feria, tienda, web).
type PuntoVenta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Direccion   string
	Telefono    string
	Email       string
	Responsable string
	Descripcion string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PuntoVenta) TableName() string { return "puntos_venta" }
