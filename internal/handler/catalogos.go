package handler

import (
	"net/http"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"
	"github.com/aluenvelas/Back-aluen/internal/repository"
	"github.com/aluenvelas/Back-aluen/internal/service"

	"github.com/gin-gonic/gin"
)

// ─── Nombres de velas ────────────────────────────────────────────────────────

type NombresVelasHandler struct{ svc service.NombreVelaService }

func NewNombresVelasHandler(svc service.NombreVelaService) *NombresVelasHandler {
	return &NombresVelasHandler{svc: svc}
}

func (h *NombresVelasHandler) Crear(c *gin.Context) {
	var req dto.CrearNombreVelaRequest
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

func (h *NombresVelasHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("activo") != "all"
	resp, err := h.svc.Listar(c.Request.Context(), soloActivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar nombres de velas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NombresVelasHandler) Desactivar(c *gin.Context) {
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

// ─── Puntos de venta ─────────────────────────────────────────────────────────
// Thin enough that the handler talks to the repository directly.

type PuntosVentaHandler struct {
	repo repository.PuntoVentaRepository
}

func NewPuntosVentaHandler(repo repository.PuntoVentaRepository) *PuntosVentaHandler {
	return &PuntosVentaHandler{repo: repo}
}

func (h *PuntosVentaHandler) Crear(c *gin.Context) {
	var req dto.PuntoVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pv := model.PuntoVenta{
		Nombre:      req.Nombre,
		Direccion:   req.Direccion,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Responsable: req.Responsable,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := h.repo.Create(c.Request.Context(), &pv); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, puntoVentaToResponse(&pv))
}

func (h *PuntosVentaHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("activo") != "all"
	puntos, err := h.repo.List(c.Request.Context(), soloActivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar puntos de venta"))
		return
	}
	resp := make([]dto.PuntoVentaResponse, len(puntos))
	for i := range puntos {
		resp[i] = puntoVentaToResponse(&puntos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PuntosVentaHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.PuntoVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pv, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Punto de venta no encontrado"))
		return
	}
	pv.Nombre = req.Nombre
	pv.Direccion = req.Direccion
	pv.Telefono = req.Telefono
	pv.Email = req.Email
	pv.Responsable = req.Responsable
	pv.Descripcion = req.Descripcion
	if err := h.repo.Update(c.Request.Context(), pv); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, puntoVentaToResponse(pv))
}

func (h *PuntosVentaHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.SetActivo(c.Request.Context(), id, false); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func puntoVentaToResponse(pv *model.PuntoVenta) dto.PuntoVentaResponse {
	return dto.PuntoVentaResponse{
		ID:          pv.ID.String(),
		Nombre:      pv.Nombre,
		Direccion:   pv.Direccion,
		Telefono:    pv.Telefono,
		Email:       pv.Email,
		Responsable: pv.Responsable,
		Descripcion: pv.Descripcion,
		Activo:      pv.Activo,
	}
}

// ─── Activos fijos ───────────────────────────────────────────────────────────

type ActivosHandler struct {
	repo repository.ActivoFijoRepository
}

func NewActivosHandler(repo repository.ActivoFijoRepository) *ActivosHandler {
	return &ActivosHandler{repo: repo}
}

func (h *ActivosHandler) Crear(c *gin.Context) {
	var req dto.ActivoFijoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fecha, err := time.Parse("2006-01-02", req.FechaAdquisicion)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha de adquisicion invalida"))
		return
	}
	estado := req.Estado
	if estado == "" {
		estado = "bueno"
	}
	af := model.ActivoFijo{
		Nombre:           req.Nombre,
		Tipo:             req.Tipo,
		Descripcion:      req.Descripcion,
		Valor:            req.Valor,
		FechaAdquisicion: fecha,
		Proveedor:        req.Proveedor,
		Estado:           estado,
		Ubicacion:        req.Ubicacion,
		Activo:           true,
	}
	if err := h.repo.Create(c.Request.Context(), &af); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activoToResponse(&af))
}

func (h *ActivosHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("activo") != "all"
	activos, err := h.repo.List(c.Request.Context(), c.Query("tipo"), soloActivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar activos"))
		return
	}
	resp := make([]dto.ActivoFijoResponse, len(activos))
	for i := range activos {
		resp[i] = activoToResponse(&activos[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ActivosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActivoFijoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	af, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Activo no encontrado"))
		return
	}
	fecha, err := time.Parse("2006-01-02", req.FechaAdquisicion)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Fecha de adquisicion invalida"))
		return
	}
	af.Nombre = req.Nombre
	af.Tipo = req.Tipo
	af.Descripcion = req.Descripcion
	af.Valor = req.Valor
	af.FechaAdquisicion = fecha
	af.Proveedor = req.Proveedor
	if req.Estado != "" {
		af.Estado = req.Estado
	}
	af.Ubicacion = req.Ubicacion
	if err := h.repo.Update(c.Request.Context(), af); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activoToResponse(af))
}

func (h *ActivosHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.repo.SetActivo(c.Request.Context(), id, false); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func activoToResponse(af *model.ActivoFijo) dto.ActivoFijoResponse {
	return dto.ActivoFijoResponse{
		ID:               af.ID.String(),
		Nombre:           af.Nombre,
		Tipo:             af.Tipo,
		Descripcion:      af.Descripcion,
		Valor:            af.Valor,
		FechaAdquisicion: af.FechaAdquisicion.Format("2006-01-02"),
		Proveedor:        af.Proveedor,
		Estado:           af.Estado,
		Ubicacion:        af.Ubicacion,
		Activo:           af.Activo,
	}
}
