package handler

import (
	"net/http"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/service"

	"github.com/gin-gonic/gin"
)

// RecetasHandler exposes the production flow and recipe catalog. POST is not
// a plain create: it runs the full costing + stock reconciliation pipeline.
type RecetasHandler struct{ svc service.RecetaService }

func NewRecetasHandler(svc service.RecetaService) *RecetasHandler {
	return &RecetasHandler{svc: svc}
}

// Producir godoc
// @Summary Registrar una produccion
// @Description Calcula costos y precio de la formula, verifica stock de materias primas, y en una transaccion crea (o reutiliza) la receta, descuenta materiales y frascos, y acredita el inventario de velas terminadas.
// @Tags recetas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ProducirRecetaRequest true "Formula y unidades a producir"
// @Success 201 {object} dto.ProduccionResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/recetas [post]
func (h *RecetasHandler) Producir(c *gin.Context) {
	var req dto.ProducirRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Producir(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RecetasHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerReceta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorCodigo looks a recipe up by its production code (e.g. SOJ-0001).
func (h *RecetasHandler) ObtenerPorCodigo(c *gin.Context) {
	resp, err := h.svc.ObtenerPorCodigo(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) Listar(c *gin.Context) {
	var filter dto.RecetaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarRecetas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar recetas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar edits name, description, fixed costs and margin; prices are
// recomputed. Formula and codigo are immutable.
func (h *RecetasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarRecetaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarReceta(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleVisibilidad flips whether the recipe shows in the public catalog.
func (h *RecetasHandler) ToggleVisibilidad(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ToggleVisibilidad(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecetasHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarReceta(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
