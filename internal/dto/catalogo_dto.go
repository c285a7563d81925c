package dto

import "github.com/shopspring/decimal"

// ─── Nombres de velas ────────────────────────────────────────────────────────

// CrearNombreVelaRequest registers a display name. When Nombre is empty it is
// generated as "Vela <esencia> <color> <capacidad><unidad>".
type CrearNombreVelaRequest struct {
	Nombre      string  `json:"nombre"`
	Frasco      string  `json:"frasco"  validate:"required,uuid"`
	Esencia     string  `json:"esencia" validate:"required,uuid"`
	Color       string  `json:"color"   validate:"required"`
	Descripcion *string `json:"descripcion"`
}

type NombreVelaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	FrascoID    string  `json:"frasco_id"`
	EsenciaID   string  `json:"esencia_id"`
	Color       string  `json:"color"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      bool    `json:"activo"`
}

// ─── Puntos de venta ─────────────────────────────────────────────────────────

type PuntoVentaRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=2"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email"  validate:"omitempty,email"`
	Responsable string `json:"responsable"`
	Descripcion string `json:"descripcion"`
}

type PuntoVentaResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Direccion   string `json:"direccion,omitempty"`
	Telefono    string `json:"telefono,omitempty"`
	Email       string `json:"email,omitempty"`
	Responsable string `json:"responsable,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
	Activo      bool   `json:"activo"`
}

// ─── Activos fijos ───────────────────────────────────────────────────────────

type ActivoFijoRequest struct {
	Nombre           string          `json:"nombre"            validate:"required,min=2"`
	Tipo             string          `json:"tipo"              validate:"required,oneof=equipo herramienta mueble tecnologia otro"`
	Descripcion      *string         `json:"descripcion"`
	Valor            decimal.Decimal `json:"valor"             validate:"required,min=0"`
	FechaAdquisicion string          `json:"fecha_adquisicion" validate:"required,datetime=2006-01-02"`
	Proveedor        string          `json:"proveedor"`
	Estado           string          `json:"estado"            validate:"omitempty,oneof=nuevo bueno regular malo obsoleto"`
	Ubicacion        string          `json:"ubicacion"`
}

type ActivoFijoResponse struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	Tipo             string          `json:"tipo"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	Valor            decimal.Decimal `json:"valor"`
	FechaAdquisicion string          `json:"fecha_adquisicion"`
	Proveedor        string          `json:"proveedor,omitempty"`
	Estado           string          `json:"estado"`
	Ubicacion        string          `json:"ubicacion,omitempty"`
	Activo           bool            `json:"activo"`
}

// ─── Consulta pública de precio ──────────────────────────────────────────────

// ConsultaPrecioResponse is the public price-check payload, cached in redis.
type ConsultaPrecioResponse struct {
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	PrecioSugerido  decimal.Decimal `json:"precio_sugerido"`
	StockDisponible int             `json:"stock_disponible"`
}
