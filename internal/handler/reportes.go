package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// VentasPDF godoc
// @Summary Reporte de ventas en PDF
// @Description Genera el PDF del periodo y lo descarga. Si se pasa enviar_a, ademas lo encola para envio por email.
// @Tags reportes
// @Produce application/pdf
// @Security BearerAuth
// @Param desde    query string false "YYYY-MM-DD (default: hace 30 dias)"
// @Param hasta    query string false "YYYY-MM-DD inclusive (default: hoy)"
// @Param enviar_a query string false "Email de destino"
// @Success 200 {file} file
// @Failure 400 {object} apierror.APIError
// @Router /api/reportes/pdf/ventas [get]
func (h *ReportesHandler) VentasPDF(c *gin.Context) {
	desde, hasta, err := rangoFechas(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha invalida, formato esperado YYYY-MM-DD"))
		return
	}
	path, err := h.svc.ReporteVentasPDF(c.Request.Context(), desde, hasta, c.Query("enviar_a"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ventas_%s.pdf"`, time.Now().Format("20060102")))
	c.File(path)
}

func (h *ReportesHandler) InventarioPDF(c *gin.Context) {
	path, err := h.svc.ReporteInventarioPDF(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el reporte"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="inventario_%s.pdf"`, time.Now().Format("20060102")))
	c.File(path)
}

// InventarioExcel streams the finished-goods inventory as an .xlsx download.
func (h *ReportesHandler) InventarioExcel(c *gin.Context) {
	b, err := h.svc.ExportInventarioExcel(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el export"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="inventario_%s.xlsx"`, time.Now().Format("20060102")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
}
