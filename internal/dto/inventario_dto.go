package dto

type InventarioFilter struct {
	Activo string `form:"activo"` // "true" | "false" | "all"
}

// ActualizarInventarioRequest updates a finished-goods record. StockActual
// sets an absolute value; Ajuste applies a delta (never below zero); both nil
// leaves stock untouched (e.g. only changing the minimum).
type ActualizarInventarioRequest struct {
	StockMinimo *int   `json:"stock_minimo" validate:"omitempty,min=0"`
	StockActual *int   `json:"stock_actual" validate:"omitempty,min=0"`
	Ajuste      *int   `json:"ajuste"`
	Motivo      string `json:"motivo"`
}

type ProduccionVentaResumen struct {
	Fecha    string `json:"fecha"`
	Cantidad int    `json:"cantidad"`
}

type InventarioVelaResponse struct {
	ID               string                  `json:"id"`
	NombreVela       string                  `json:"nombre_vela"`
	RecetaID         *string                 `json:"receta_id,omitempty"`
	RecetaCodigo     string                  `json:"receta_codigo,omitempty"`
	StockActual      int                     `json:"stock_actual"`
	StockMinimo      int                     `json:"stock_minimo"`
	BajoStock        bool                    `json:"bajo_stock"`
	UltimaProduccion *ProduccionVentaResumen `json:"ultima_produccion,omitempty"`
	UltimaVenta      *ProduccionVentaResumen `json:"ultima_venta,omitempty"`
	Activo           bool                    `json:"activo"`
}
