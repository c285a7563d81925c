package handler

import (
	"net/http"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/service"

	"github.com/gin-gonic/gin"
)

// PrecioHandler serves the public price check by recipe code. No auth, no
// side effects; the service caches responses in redis.
type PrecioHandler struct{ svc service.PrecioService }

func NewPrecioHandler(svc service.PrecioService) *PrecioHandler {
	return &PrecioHandler{svc: svc}
}

// Consultar godoc
// @Summary Consulta publica de precio por codigo de receta
// @Tags precio
// @Produce json
// @Param codigo path string true "Codigo de receta (ej. SOJ-0001)"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/precio/{codigo} [get]
func (h *PrecioHandler) Consultar(c *gin.Context) {
	resp, err := h.svc.ConsultarPrecio(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Receta no encontrada"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
