package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /api/ventas.
type VentaFilter struct {
	Estado      string `form:"estado"       validate:"omitempty,oneof=pendiente completada cancelada reembolsada all"`
	FechaInicio string `form:"fecha_inicio"` // YYYY-MM-DD
	FechaFin    string `form:"fecha_fin"`
	Cliente     string `form:"cliente"`
	MetodoPago  string `form:"metodo_pago"  validate:"omitempty,oneof=efectivo tarjeta transferencia otro"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ClienteRequest struct {
	Nombre    string  `json:"nombre"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ItemVentaRequest struct {
	Receta         string          `json:"receta"          validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
	Descripcion    *string         `json:"descripcion"`
}

type RegistrarVentaRequest struct {
	Cliente    *ClienteRequest    `json:"cliente"`
	PuntoVenta *string            `json:"punto_venta" validate:"omitempty,uuid"`
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	Descuento  decimal.Decimal    `json:"descuento"   validate:"min=0"`
	Impuestos  decimal.Decimal    `json:"impuestos"   validate:"min=0"`
	MetodoPago string             `json:"metodo_pago" validate:"omitempty,oneof=efectivo tarjeta transferencia otro"`
	Notas      *string            `json:"notas"`
}

type CambiarEstadoVentaRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente completada cancelada reembolsada"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	Receta         string          `json:"receta"`
	RecetaNombre   string          `json:"receta_nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type ClienteResponse struct {
	Nombre    string  `json:"nombre"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
}

type VentaResponse struct {
	ID               string              `json:"id"`
	NumeroVenta      string              `json:"numero_venta"`
	Fecha            string              `json:"fecha"`
	Cliente          ClienteResponse     `json:"cliente"`
	PuntoVentaNombre *string             `json:"punto_venta_nombre,omitempty"`
	Items            []ItemVentaResponse `json:"items"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	Descuento        decimal.Decimal     `json:"descuento"`
	Impuestos        decimal.Decimal     `json:"impuestos"`
	Total            decimal.Decimal     `json:"total"`
	MetodoPago       string              `json:"metodo_pago"`
	Estado           string              `json:"estado"`
	Notas            *string             `json:"notas,omitempty"`
}

// DeduccionVenta names one finished-goods decrement applied by a sale.
type DeduccionVenta struct {
	Nombre        string `json:"nombre"`
	Cantidad      int    `json:"cantidad"`
	StockRestante int    `json:"stock_restante"`
}

type RegistrarVentaResponse struct {
	Venta                VentaResponse    `json:"venta"`
	Mensaje              string           `json:"mensaje"`
	InventarioDescontado []DeduccionVenta `json:"inventario_descontado"`
}

// ─── Estadísticas ────────────────────────────────────────────────────────────

type VentasPorMetodo struct {
	MetodoPago string          `json:"metodo_pago"`
	Total      decimal.Decimal `json:"total"`
	Cantidad   int64           `json:"cantidad"`
}

type ProductoVendido struct {
	Nombre   string          `json:"nombre"`
	Cantidad int64           `json:"cantidad"`
	Ingresos decimal.Decimal `json:"ingresos"`
}

type VentasPorDia struct {
	Fecha    string          `json:"fecha"`
	Total    decimal.Decimal `json:"total"`
	Cantidad int64           `json:"cantidad"`
}

type EstadisticasVentasResponse struct {
	TotalVentas          int64             `json:"total_ventas"`
	IngresosTotales      decimal.Decimal   `json:"ingresos_totales"`
	VentasPorMetodo      []VentasPorMetodo `json:"ventas_por_metodo"`
	ProductosMasVendidos []ProductoVendido `json:"productos_mas_vendidos"`
	VentasPorDia         []VentasPorDia    `json:"ventas_por_dia"`
}
