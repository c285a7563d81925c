package handler

import (
	"net/http"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/service"

	"github.com/gin-gonic/gin"
)

// InventarioHandler serves the finished-goods inventory. Stock moves mainly
// through producciones and ventas; this surface is for consultas, minimums
// and manual corrections.
type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

func (h *InventarioHandler) Listar(c *gin.Context) {
	var filter dto.InventarioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar inventario"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alertas godoc
// @Summary Velas con stock en o bajo el minimo
// @Tags inventario
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InventarioVelaResponse
// @Router /api/inventario/alertas [get]
func (h *InventarioHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventarioHandler) Obtener(c *gin.Context) {
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

func (h *InventarioHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarInventarioRequest
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
