package apierror

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Every envelope and domain type must satisfy error so services can return
// them through plain error values.
var (
	_ error = (*APIError)(nil)
	_ error = (*ValidationError)(nil)
	_ error = (*NotFoundError)(nil)
	_ error = (*StockInsuficienteError)(nil)
	_ error = (*PorcentajeError)(nil)
)

func TestAPIError_Error(t *testing.T) {
	err := New("El descuento no puede superar el subtotal")
	assert.Equal(t, "El descuento no puede superar el subtotal", err.Error())
	assert.Equal(t, err.Detail, err.Error())
}

func TestNotFoundError_Error(t *testing.T) {
	assert.Equal(t, "receta no encontrado", NotFound("receta").Error())
}

func TestStockInsuficienteError_Error(t *testing.T) {
	err := StockInsuficiente("Cera de soja", "g", decimal.NewFromInt(400), decimal.NewFromInt(150))
	assert.Contains(t, err.Error(), "Cera de soja")
	assert.Contains(t, err.Error(), "400g")
	assert.Contains(t, err.Error(), "150g")
}

func TestPorcentajeError_Error(t *testing.T) {
	err := &PorcentajeError{Suma: decimal.NewFromFloat(99.5)}
	assert.Contains(t, err.Error(), "99.5")
	assert.Contains(t, err.Error(), "100%")
}
