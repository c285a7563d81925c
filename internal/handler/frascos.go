package handler

import (
	"net/http"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/service"

	"github.com/gin-gonic/gin"
)

type FrascosHandler struct{ svc service.FrascoService }

func NewFrascosHandler(svc service.FrascoService) *FrascosHandler {
	return &FrascosHandler{svc: svc}
}

func (h *FrascosHandler) Crear(c *gin.Context) {
	var req dto.CrearFrascoRequest
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

func (h *FrascosHandler) Obtener(c *gin.Context) {
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

func (h *FrascosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("activo"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar frascos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FrascosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarFrascoRequest
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

func (h *FrascosHandler) AjustarStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AjustarFrascoStockRequest
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

func (h *FrascosHandler) Desactivar(c *gin.Context) {
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
