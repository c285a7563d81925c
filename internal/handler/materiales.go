package handler

import (
	"net/http"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/service"

	"github.com/gin-gonic/gin"
)

// MaterialesHandler covers raw materials (ceras, aditivos, esencias).
type MaterialesHandler struct{ svc service.MaterialService }

func NewMaterialesHandler(svc service.MaterialService) *MaterialesHandler {
	return &MaterialesHandler{svc: svc}
}

// Crear godoc
// @Summary Alta de material
// @Tags materiales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMaterialRequest true "Material"
// @Success 201 {object} dto.MaterialResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /api/materiales [post]
func (h *MaterialesHandler) Crear(c *gin.Context) {
	var req dto.CrearMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MaterialesHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Listar materiales
// @Tags materiales
// @Produce json
// @Security BearerAuth
// @Param tipo   query string false "cera | aditivo | esencia | otro"
// @Param activo query string false "true | false | all (default true)"
// @Success 200 {array} dto.MaterialResponse
// @Router /api/materiales [get]
func (h *MaterialesHandler) Listar(c *gin.Context) {
	var filter dto.MaterialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar materiales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjustarStock applies a manual stock correction (compra, merma, conteo).
func (h *MaterialesHandler) AjustarStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaterialesHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
