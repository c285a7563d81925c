package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/costing"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/infra"
	"github.com/aluenvelas/Back-aluen/internal/model"
	"github.com/aluenvelas/Back-aluen/internal/repository"
	"github.com/aluenvelas/Back-aluen/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	// Registrar runs the sale's two-phase flow: verify every line against
	// finished-goods stock, then atomically persist the sale and decrement.
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.RegistrarVentaResponse, error)

	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.VentaResponse, error)
	EliminarVenta(ctx context.Context, id uuid.UUID) error
	Estadisticas(ctx context.Context, desde, hasta time.Time) (*dto.EstadisticasVentasResponse, error)
}

type ventaService struct {
	ventaRepo      repository.VentaRepository
	recetaRepo     repository.RecetaRepository
	inventarioRepo repository.InventarioRepository
	puntoRepo      repository.PuntoVentaRepository
	dispatcher     *worker.Dispatcher
}

func NewVentaService(
	ventaRepo repository.VentaRepository,
	recetaRepo repository.RecetaRepository,
	inventarioRepo repository.InventarioRepository,
	puntoRepo repository.PuntoVentaRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		ventaRepo:      ventaRepo,
		recetaRepo:     recetaRepo,
		inventarioRepo: inventarioRepo,
		puntoRepo:      puntoRepo,
		dispatcher:     dispatcher,
	}
}

// lineaResuelta is one sale line with its recipe and finished-goods record
// loaded during the verify phase.
type lineaResuelta struct {
	receta     *model.Receta
	inventario *model.InventarioVela
	cantidad   int
	precio     decimal.Decimal
	subtotal   decimal.Decimal
}

func (s *ventaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.RegistrarVentaResponse, error) {
	// Verify phase: resolve every line and check finished-goods stock
	lineas := make([]lineaResuelta, 0, len(req.Items))
	subtotal := decimal.Zero

	for _, item := range req.Items {
		rid, err := uuid.Parse(item.Receta)
		if err != nil {
			return nil, apierror.New("receta inválida")
		}
		receta, err := s.recetaRepo.FindByID(ctx, rid)
		if err != nil || !receta.Activo {
			return nil, apierror.NotFound("receta " + item.Receta)
		}

		inv, err := s.inventarioRepo.FindByNombre(ctx, receta.Nombre)
		if err != nil {
			return nil, apierror.NotFound("inventario de " + receta.Nombre)
		}
		if inv.StockActual < item.Cantidad {
			return nil, apierror.StockInsuficiente(receta.Nombre, " unidades",
				decimal.NewFromInt(int64(item.Cantidad)), decimal.NewFromInt(int64(inv.StockActual)))
		}

		precio := item.PrecioUnitario
		if precio.IsZero() {
			precio = receta.PrecioVentaSugerido
		}
		lineSubtotal := precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		subtotal = subtotal.Add(lineSubtotal)

		lineas = append(lineas, lineaResuelta{
			receta:     receta,
			inventario: inv,
			cantidad:   item.Cantidad,
			precio:     precio,
			subtotal:   lineSubtotal,
		})
	}

	total := subtotal.Sub(req.Descuento).Add(req.Impuestos)
	if total.IsNegative() {
		return nil, apierror.New("El descuento no puede superar el subtotal")
	}

	// Optional point of sale
	var puntoID *uuid.UUID
	var puntoNombre *string
	if req.PuntoVenta != nil {
		pid, err := uuid.Parse(*req.PuntoVenta)
		if err != nil {
			return nil, apierror.New("punto_venta inválido")
		}
		punto, err := s.puntoRepo.FindByID(ctx, pid)
		if err != nil || !punto.Activo {
			return nil, apierror.NotFound("punto de venta")
		}
		puntoID = &punto.ID
		puntoNombre = &punto.Nombre
	}

	metodo := req.MetodoPago
	if metodo == "" {
		metodo = "efectivo"
	}
	clienteNombre := "Cliente"
	var clienteEmail, clienteTelefono, clienteDireccion *string
	if req.Cliente != nil {
		if req.Cliente.Nombre != "" {
			clienteNombre = req.Cliente.Nombre
		}
		clienteEmail = req.Cliente.Email
		clienteTelefono = req.Cliente.Telefono
		clienteDireccion = req.Cliente.Direccion
	}

	// Commit phase
	ahora := time.Now()
	var venta model.Venta
	var deducciones []dto.DeduccionVenta

	txErr := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		numero, err := s.siguienteNumero(tx, ahora)
		if err != nil {
			return err
		}

		var uid *uuid.UUID
		if usuarioID != uuid.Nil {
			uid = &usuarioID
		}
		venta = model.Venta{
			NumeroVenta:      numero,
			Fecha:            ahora,
			ClienteNombre:    clienteNombre,
			ClienteEmail:     clienteEmail,
			ClienteTelefono:  clienteTelefono,
			ClienteDireccion: clienteDireccion,
			PuntoVentaID:     puntoID,
			PuntoVentaNombre: puntoNombre,
			Subtotal:         subtotal,
			Descuento:        req.Descuento,
			Impuestos:        req.Impuestos,
			Total:            total,
			MetodoPago:       metodo,
			Estado:           "completada",
			Notas:            req.Notas,
			CreadoPorID:      uid,
		}
		for i, l := range lineas {
			frascoID := l.receta.FrascoID
			venta.Items = append(venta.Items, model.VentaItem{
				RecetaID:       l.receta.ID,
				RecetaNombre:   l.receta.Nombre,
				FrascoID:       &frascoID,
				Cantidad:       l.cantidad,
				PrecioUnitario: l.precio,
				Subtotal:       l.subtotal,
				Descripcion:    req.Items[i].Descripcion,
			})
		}
		if err := s.ventaRepo.CreateTx(tx, &venta); err != nil {
			return err
		}

		for i := range lineas {
			l := &lineas[i]
			if err := s.inventarioRepo.DescontarStockTx(tx, l.inventario.ID, l.cantidad, ahora); err != nil {
				return fmt.Errorf("descontando %s: %w", l.inventario.NombreVela, err)
			}
			l.inventario.StockActual -= l.cantidad
			deducciones = append(deducciones, dto.DeduccionVenta{
				Nombre:        l.inventario.NombreVela,
				Cantidad:      l.cantidad,
				StockRestante: l.inventario.StockActual,
			})
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, repository.ErrConflictoStock) {
			infra.ConflictosStockTotal.Inc()
		}
		return nil, txErr
	}

	infra.VentasTotal.Inc()
	log.Info().
		Str("numero", venta.NumeroVenta).
		Str("total", venta.Total.String()).
		Int("items", len(venta.Items)).
		Msg("venta registrada")

	// Async low-stock alerts — best effort, never blocks the sale
	for i := range lineas {
		l := &lineas[i]
		if l.inventario.BajoStock() {
			infra.AlertasStockTotal.Inc()
			_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertJobPayload{
				InventarioID: l.inventario.ID.String(),
				NombreVela:   l.inventario.NombreVela,
			})
		}
	}

	resp := ventaToResponse(&venta)
	return &dto.RegistrarVentaResponse{
		Venta:                *resp,
		Mensaje:              fmt.Sprintf("Venta %s registrada", venta.NumeroVenta),
		InventarioDescontado: deducciones,
	}, nil
}

// siguienteNumero allocates the next V-YYYYMM-NNNN sale number. The sequence
// restarts each month; the lookup runs inside the sale transaction.
func (s *ventaService) siguienteNumero(tx *gorm.DB, fecha time.Time) (string, error) {
	prefijo := "V-" + fecha.Format("200601") + "-"
	ultimo, err := s.ventaRepo.UltimoNumeroConPrefijo(tx, prefijo)
	if err != nil {
		return "", err
	}
	seq := 0
	if ultimo != "" {
		if n, ok := costing.Secuencia(ultimo); ok {
			seq = n
		}
	}
	return fmt.Sprintf("%s%04d", prefijo, seq+1), nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venta")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.ventaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		data[i] = *ventaToResponse(&ventas[i])
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ventaService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.VentaResponse, error) {
	venta, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("venta")
	}
	if venta.Estado == estado {
		return ventaToResponse(venta), nil
	}

	// Cancelling or refunding a completed sale restores finished-goods stock.
	restaura := venta.Estado == "completada" && (estado == "cancelada" || estado == "reembolsada")

	txErr := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		if restaura {
			for _, item := range venta.Items {
				inv, err := s.inventarioRepo.FindByNombre(ctx, item.RecetaNombre)
				if err != nil {
					return apierror.NotFound("inventario de " + item.RecetaNombre)
				}
				if err := s.inventarioRepo.AgregarStockTx(tx, inv.ID, item.Cantidad, time.Now()); err != nil {
					return err
				}
			}
		}
		if tx == nil {
			return s.ventaRepo.UpdateEstado(ctx, id, estado)
		}
		return tx.Model(&model.Venta{}).Where("id = ?", id).Update("estado", estado).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	venta.Estado = estado
	log.Info().Str("numero", venta.NumeroVenta).Str("estado", estado).Msg("estado de venta actualizado")
	return ventaToResponse(venta), nil
}

func (s *ventaService) EliminarVenta(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ventaRepo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("venta")
	}
	return s.ventaRepo.Delete(ctx, id)
}

func (s *ventaService) Estadisticas(ctx context.Context, desde, hasta time.Time) (*dto.EstadisticasVentasResponse, error) {
	cantidad, ingresos, err := s.ventaRepo.Totales(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	porMetodo, err := s.ventaRepo.TotalesPorMetodo(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	masVendidos, err := s.ventaRepo.ProductosMasVendidos(ctx, desde, hasta, 10)
	if err != nil {
		return nil, err
	}
	porDia, err := s.ventaRepo.VentasPorDia(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	return &dto.EstadisticasVentasResponse{
		TotalVentas:          cantidad,
		IngresosTotales:      ingresos,
		VentasPorMetodo:      porMetodo,
		ProductosMasVendidos: masVendidos,
		VentasPorDia:         porDia,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = dto.ItemVentaResponse{
			Receta:         item.RecetaID.String(),
			RecetaNombre:   item.RecetaNombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		}
	}
	return &dto.VentaResponse{
		ID:          v.ID.String(),
		NumeroVenta: v.NumeroVenta,
		Fecha:       v.Fecha.Format(time.RFC3339),
		Cliente: dto.ClienteResponse{
			Nombre:    v.ClienteNombre,
			Email:     v.ClienteEmail,
			Telefono:  v.ClienteTelefono,
			Direccion: v.ClienteDireccion,
		},
		PuntoVentaNombre: v.PuntoVentaNombre,
		Items:            items,
		Subtotal:         v.Subtotal,
		Descuento:        v.Descuento,
		Impuestos:        v.Impuestos,
		Total:            v.Total,
		MetodoPago:       v.MetodoPago,
		Estado:           v.Estado,
		Notas:            v.Notas,
	}
}
