// Package apierror provides standardized error response structures for the API
// plus the typed domain errors raised by the stock reconciliation services.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return e.Detail
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ─── Domain errors ───────────────────────────────────────────────────────────
// Raised during the verify phase of a production run or a sale. Handlers map
// them to HTTP statuses; services never write HTTP responses themselves.

// NotFoundError marks a dangling reference (material, frasco, receta,
// inventario) discovered during verification.
type NotFoundError struct {
	Entidad string
}

func (e *NotFoundError) Error() string {
	return e.Entidad + " no encontrado"
}

func NotFound(entidad string) *NotFoundError {
	return &NotFoundError{Entidad: entidad}
}

// StockInsuficienteError reports a verification-phase shortfall, naming the
// entity and the required vs. available quantities.
type StockInsuficienteError struct {
	Entidad    string          `json:"entidad"`
	Unidad     string          `json:"unidad"`
	Requerido  decimal.Decimal `json:"requerido"`
	Disponible decimal.Decimal `json:"disponible"`
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("Stock insuficiente de %s. Necesitas %s%s pero solo hay %s%s disponibles",
		e.Entidad, e.Requerido.String(), e.Unidad, e.Disponible.String(), e.Unidad)
}

func StockInsuficiente(entidad, unidad string, requerido, disponible decimal.Decimal) *StockInsuficienteError {
	return &StockInsuficienteError{Entidad: entidad, Unidad: unidad, Requerido: requerido, Disponible: disponible}
}

// PorcentajeError marks a formula whose component percentages do not sum to
// 100 within the 0.01 tolerance.
type PorcentajeError struct {
	Suma decimal.Decimal
}

func (e *PorcentajeError) Error() string {
	return fmt.Sprintf("Los porcentajes deben sumar 100%%. Actualmente suman %s%%", e.Suma.String())
}
