package handler

import (
	"net/http"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/middleware"
	"github.com/aluenvelas/Back-aluen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Registrar godoc
// @Summary Registrar una venta
// @Description Verifica stock de cada linea, y en una transaccion numera la venta (V-AAAAMM-NNNN), la persiste y descuenta el inventario de velas terminadas. Dispara alertas de stock bajo.
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success 201 {object} dto.RegistrarVentaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/ventas [post]
func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro invalido"))
		return
	}
	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary Cambiar estado de una venta
// @Description Cancelar o reembolsar una venta completada restaura el stock de cada linea en la misma transaccion.
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id   path string                        true "UUID de la venta"
// @Param body body dto.CambiarEstadoVentaRequest true "Nuevo estado"
// @Success 200 {object} dto.VentaResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/ventas/{id}/estado [patch]
func (h *VentasHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar removes a sale outright. Admin only; no stock restoration — use
// cancelar/reembolsar for that.
func (h *VentasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarVenta(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Estadisticas godoc
// @Summary Estadisticas de ventas del periodo
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param desde query string false "YYYY-MM-DD (default: hace 30 dias)"
// @Param hasta query string false "YYYY-MM-DD inclusive (default: hoy)"
// @Success 200 {object} dto.EstadisticasVentasResponse
// @Router /api/ventas/estadisticas [get]
func (h *VentasHandler) Estadisticas(c *gin.Context) {
	desde, hasta, err := rangoFechas(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida, formato esperado YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.Estadisticas(c.Request.Context(), desde, hasta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// rangoFechas parses desde/hasta query params. Defaults to the last 30 days;
// hasta is inclusive so the returned upper bound is the following midnight.
func rangoFechas(desdeStr, hastaStr string) (time.Time, time.Time, error) {
	hoy := time.Now().Truncate(24 * time.Hour)
	desde := hoy.AddDate(0, 0, -30)
	hasta := hoy.AddDate(0, 0, 1)

	if desdeStr != "" {
		d, err := time.Parse("2006-01-02", desdeStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		desde = d
	}
	if hastaStr != "" {
		h, err := time.Parse("2006-01-02", hastaStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		hasta = h.AddDate(0, 0, 1)
	}
	return desde, hasta, nil
}
