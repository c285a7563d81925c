package dto

import "github.com/shopspring/decimal"

type CrearFrascoRequest struct {
	Nombre      string          `json:"nombre"      validate:"required,min=2"`
	Capacidad   decimal.Decimal `json:"capacidad"   validate:"required,gt=0"`
	Unidad      string          `json:"unidad"      validate:"omitempty,oneof=ml gramos"`
	Material    string          `json:"material"    validate:"required"`
	Precio      decimal.Decimal `json:"precio"      validate:"required,min=0"`
	Proveedor   string          `json:"proveedor"   validate:"required"`
	Descripcion *string         `json:"descripcion"`
	ImagenURL   *string         `json:"imagen_url"  validate:"omitempty,url"`
	Stock       int             `json:"stock"       validate:"min=0"`
}

type ActualizarFrascoRequest struct {
	Nombre      string           `json:"nombre"      validate:"omitempty,min=2"`
	Capacidad   *decimal.Decimal `json:"capacidad"`
	Unidad      string           `json:"unidad"      validate:"omitempty,oneof=ml gramos"`
	Material    string           `json:"material"`
	Precio      *decimal.Decimal `json:"precio"`
	Proveedor   string           `json:"proveedor"`
	Descripcion *string          `json:"descripcion"`
	ImagenURL   *string          `json:"imagen_url"  validate:"omitempty,url"`
}

// AjustarFrascoStockRequest adjusts container stock by whole units.
type AjustarFrascoStockRequest struct {
	Ajuste int    `json:"ajuste" validate:"required"`
	Motivo string `json:"motivo"`
}

type FrascoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Capacidad   decimal.Decimal `json:"capacidad"`
	Unidad      string          `json:"unidad"`
	Material    string          `json:"material"`
	Precio      decimal.Decimal `json:"precio"`
	Proveedor   string          `json:"proveedor"`
	Descripcion *string         `json:"descripcion,omitempty"`
	ImagenURL   *string         `json:"imagen_url,omitempty"`
	Stock       int             `json:"stock"`
	Activo      bool            `json:"activo"`
}
