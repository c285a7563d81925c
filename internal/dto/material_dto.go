package dto

import "github.com/shopspring/decimal"

type CrearMaterialRequest struct {
	Nombre         string          `json:"nombre"           validate:"required,min=2"`
	Tipo           string          `json:"tipo"             validate:"required,oneof=cera aditivo esencia otro"`
	PrecioPorGramo decimal.Decimal `json:"precio_por_gramo" validate:"required,gt=0"`
	Proveedor      string          `json:"proveedor"        validate:"required"`
	Descripcion    *string         `json:"descripcion"`
	Stock          decimal.Decimal `json:"stock"            validate:"min=0"`
	Unidad         string          `json:"unidad"           validate:"omitempty,oneof=gramos ml unidades"`
}

type ActualizarMaterialRequest struct {
	Nombre         string           `json:"nombre"           validate:"omitempty,min=2"`
	Tipo           string           `json:"tipo"             validate:"omitempty,oneof=cera aditivo esencia otro"`
	PrecioPorGramo *decimal.Decimal `json:"precio_por_gramo" validate:"omitempty"`
	Proveedor      string           `json:"proveedor"`
	Descripcion    *string          `json:"descripcion"`
	Unidad         string           `json:"unidad"           validate:"omitempty,oneof=gramos ml unidades"`
}

// AjustarStockRequest adds (positive) or removes (negative) stock.
type AjustarStockRequest struct {
	Ajuste decimal.Decimal `json:"ajuste" validate:"required"`
	Motivo string          `json:"motivo"`
}

type MaterialFilter struct {
	Tipo   string `form:"tipo"   validate:"omitempty,oneof=cera aditivo esencia otro"`
	Activo string `form:"activo"` // "true" | "false" | "all" (default activos)
}

type MaterialResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Tipo           string          `json:"tipo"`
	PrecioPorGramo decimal.Decimal `json:"precio_por_gramo"`
	Proveedor      string          `json:"proveedor"`
	Descripcion    *string         `json:"descripcion,omitempty"`
	Stock          decimal.Decimal `json:"stock"`
	Unidad         string          `json:"unidad"`
	Activo         bool            `json:"activo"`
}
