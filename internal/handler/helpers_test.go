package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func respuestaPara(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, err)
	return w
}

func TestRespondError_ErrorDeNegocio(t *testing.T) {
	w := respuestaPara(apierror.New("El descuento no puede superar el subtotal"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "El descuento no puede superar el subtotal")
}

func TestRespondError_NoEncontrado(t *testing.T) {
	w := respuestaPara(apierror.NotFound("receta"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "receta no encontrado")
}

func TestRespondError_StockInsuficiente(t *testing.T) {
	w := respuestaPara(apierror.StockInsuficiente("Vela Lavanda", " unidades", decimal.NewFromInt(5), decimal.NewFromInt(2)))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Vela Lavanda")
}

func TestRespondError_ConflictoStockEnvuelto(t *testing.T) {
	err := fmt.Errorf("descontando Cera de Soja: %w", repository.ErrConflictoStock)
	w := respuestaPara(err)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Reintente")
}

func TestRespondError_RegistroInexistente(t *testing.T) {
	w := respuestaPara(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondError_ErrorInternoNoFiltraDetalle(t *testing.T) {
	err := errors.New(`pq: duplicate key value violates unique constraint "recetas_codigo_key"`)
	w := respuestaPara(err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error interno del servidor")
	assert.NotContains(t, w.Body.String(), "recetas_codigo_key", "los detalles de la base nunca llegan al cliente")
	assert.NotContains(t, w.Body.String(), "pq:")
}
