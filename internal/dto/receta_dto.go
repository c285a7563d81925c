package dto

import "github.com/shopspring/decimal"

// ComponenteRequest references a material with the percentage of the batch
// weight it occupies.
type ComponenteRequest struct {
	Material   string          `json:"material"   validate:"required,uuid"`
	Porcentaje decimal.Decimal `json:"porcentaje" validate:"required"`
}

// CostosFijosRequest overrides the default fixed-cost table. Nil fields keep
// the workshop defaults.
type CostosFijosRequest struct {
	PabiloChapeta *decimal.Decimal `json:"pabilo_chapeta"`
	Trabajo       *decimal.Decimal `json:"trabajo"`
	Servicios     *decimal.Decimal `json:"servicios"`
	Servilletas   *decimal.Decimal `json:"servilletas"`
	Anilina       *decimal.Decimal `json:"anilina"`
	Stickers      *decimal.Decimal `json:"stickers"`
	Empaque       *decimal.Decimal `json:"empaque"`
}

// ProducirRecetaRequest creates a recipe (or reuses a duplicate formula) and
// runs a production: raw material stock down, finished-goods stock up.
type ProducirRecetaRequest struct {
	Nombre             string              `json:"nombre"              validate:"required,min=2"`
	Descripcion        *string             `json:"descripcion"`
	Cera               ComponenteRequest   `json:"cera"                validate:"required"`
	Aditivo            *ComponenteRequest  `json:"aditivo"`
	Esencia            ComponenteRequest   `json:"esencia"             validate:"required"`
	Frasco             string              `json:"frasco"              validate:"required,uuid"`
	GramajeTotal       decimal.Decimal     `json:"gramaje_total"       validate:"required,gt=0"`
	UnidadesProducir   int                 `json:"unidades_producir"   validate:"required,min=1"`
	CostosFijos        *CostosFijosRequest `json:"costos_fijos"`
	PorcentajeGanancia *decimal.Decimal    `json:"porcentaje_ganancia"`
	ImagenURL          *string             `json:"imagen_url"`
}

// ActualizarRecetaRequest edits descriptive and pricing inputs. Formula and
// codigo are immutable after creation (a new formula is a new production).
type ActualizarRecetaRequest struct {
	Nombre             string              `json:"nombre"              validate:"omitempty,min=2"`
	Descripcion        *string             `json:"descripcion"`
	CostosFijos        *CostosFijosRequest `json:"costos_fijos"`
	PorcentajeGanancia *decimal.Decimal    `json:"porcentaje_ganancia"`
	ImagenURL          *string             `json:"imagen_url"`
}

type RecetaFilter struct {
	Activo string `form:"activo"` // "true" | "false" | "all"
}

type ComponenteResponse struct {
	MaterialID string          `json:"material_id"`
	Nombre     string          `json:"nombre"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

type RecetaResponse struct {
	ID          string  `json:"id"`
	Codigo      string  `json:"codigo"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`

	Cera    ComponenteResponse  `json:"cera"`
	Aditivo *ComponenteResponse `json:"aditivo,omitempty"`
	Esencia ComponenteResponse  `json:"esencia"`

	FrascoID     string          `json:"frasco_id"`
	FrascoNombre string          `json:"frasco_nombre"`
	GramajeTotal decimal.Decimal `json:"gramaje_total"`

	UnidadesProducir    int             `json:"unidades_producir"`
	CostoPorUnidad      decimal.Decimal `json:"costo_por_unidad"`
	CostoTotal          decimal.Decimal `json:"costo_total"`
	CostosFijosTotales  decimal.Decimal `json:"costos_fijos_totales"`
	PorcentajeGanancia  decimal.Decimal `json:"porcentaje_ganancia"`
	PrecioVentaSugerido decimal.Decimal `json:"precio_venta_sugerido"`

	ImagenURL *string `json:"imagen_url,omitempty"`
	Visible   bool    `json:"visible"`
	Activo    bool    `json:"activo"`
	CreatedAt string  `json:"created_at"`
}

// DeduccionStock names one stock decrement applied by a production run.
type DeduccionStock struct {
	Entidad  string          `json:"entidad"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Unidad   string          `json:"unidad"`
}

// ProduccionResponse is the outcome of POST /api/recetas.
type ProduccionResponse struct {
	Receta          RecetaResponse         `json:"receta"`
	RecetaDuplicada bool                   `json:"receta_duplicada"`
	Mensaje         string                 `json:"mensaje"`
	Deducciones     []DeduccionStock       `json:"inventario_descontado"`
	InventarioVela  InventarioVelaResponse `json:"inventario_velas"`
}
