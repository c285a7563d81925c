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

type RecetaService interface {
	// Producir runs the full two-phase flow: cost the formula, verify raw
	// material stock, then atomically create/reuse the recipe, discount
	// materials and credit finished goods.
	Producir(ctx context.Context, req dto.ProducirRecetaRequest) (*dto.ProduccionResponse, error)

	ObtenerReceta(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.RecetaResponse, error)
	ListarRecetas(ctx context.Context, filter dto.RecetaFilter) ([]dto.RecetaResponse, error)
	ActualizarReceta(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error)
	ToggleVisibilidad(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error)
	DesactivarReceta(ctx context.Context, id uuid.UUID) error
}

type recetaService struct {
	recetaRepo     repository.RecetaRepository
	materialRepo   repository.MaterialRepository
	frascoRepo     repository.FrascoRepository
	inventarioRepo repository.InventarioRepository
	dispatcher     *worker.Dispatcher
}

func NewRecetaService(
	recetaRepo repository.RecetaRepository,
	materialRepo repository.MaterialRepository,
	frascoRepo repository.FrascoRepository,
	inventarioRepo repository.InventarioRepository,
	dispatcher *worker.Dispatcher,
) RecetaService {
	return &recetaService{
		recetaRepo:     recetaRepo,
		materialRepo:   materialRepo,
		frascoRepo:     frascoRepo,
		inventarioRepo: inventarioRepo,
		dispatcher:     dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// componenteResuelto is a formula ingredient with its material loaded and the
// total gram requirement for the whole run already computed.
type componenteResuelto struct {
	material   *model.Material
	porcentaje decimal.Decimal
	gramosRun  decimal.Decimal // per-unit ceiled grams × unidades
}

// ── Producir ─────────────────────────────────────────────────────────────────
// Two phases:
//   1. VERIFY (outside tx): validate percentages, resolve refs, check every
//      stock level, detect duplicate formula, compute costs and code.
//   2. COMMIT (single tx): create recipe row if new, conditional-decrement
//      each material and the frasco, upsert finished-goods stock. Any
//      conditional write affecting zero rows aborts and rolls back everything.

func (s *recetaService) Producir(ctx context.Context, req dto.ProducirRecetaRequest) (*dto.ProduccionResponse, error) {
	aditivoPct := decimal.Zero
	if req.Aditivo != nil {
		aditivoPct = req.Aditivo.Porcentaje
	}
	if err := costing.ValidarPorcentajes(req.Cera.Porcentaje, aditivoPct, req.Esencia.Porcentaje); err != nil {
		return nil, err
	}

	// Resolve references
	cera, err := s.resolverMaterial(ctx, req.Cera.Material, "cera")
	if err != nil {
		return nil, err
	}
	var aditivo *model.Material
	if req.Aditivo != nil && req.Aditivo.Porcentaje.IsPositive() {
		if aditivo, err = s.resolverMaterial(ctx, req.Aditivo.Material, "aditivo"); err != nil {
			return nil, err
		}
	}
	esencia, err := s.resolverMaterial(ctx, req.Esencia.Material, "esencia")
	if err != nil {
		return nil, err
	}

	frascoID, err := uuid.Parse(req.Frasco)
	if err != nil {
		return nil, apierror.New("frasco inválido")
	}
	frasco, err := s.frascoRepo.FindByID(ctx, frascoID)
	if err != nil || !frasco.Activo {
		return nil, apierror.NotFound("frasco")
	}

	unidades := decimal.NewFromInt(int64(req.UnidadesProducir))

	// Verify stock for the whole run
	componentes := []componenteResuelto{
		{material: cera, porcentaje: req.Cera.Porcentaje},
	}
	if aditivo != nil {
		componentes = append(componentes, componenteResuelto{material: aditivo, porcentaje: req.Aditivo.Porcentaje})
	}
	componentes = append(componentes, componenteResuelto{material: esencia, porcentaje: req.Esencia.Porcentaje})

	for i := range componentes {
		c := &componentes[i]
		c.gramosRun = costing.GramosComponente(req.GramajeTotal, c.porcentaje).Mul(unidades)
		if c.material.Stock.LessThan(c.gramosRun) {
			return nil, apierror.StockInsuficiente(c.material.Nombre, "g", c.gramosRun, c.material.Stock)
		}
	}
	if frasco.Stock < req.UnidadesProducir {
		return nil, apierror.StockInsuficiente(frasco.Nombre, " unidades",
			decimal.NewFromInt(int64(req.UnidadesProducir)), decimal.NewFromInt(int64(frasco.Stock)))
	}

	// Duplicate formula detection via canonical hash
	aditivoID := ""
	if aditivo != nil {
		aditivoID = aditivo.ID.String()
	}
	hash := costing.HashFormula(
		cera.ID.String(), req.Cera.Porcentaje,
		aditivoID, aditivoPct,
		esencia.ID.String(), req.Esencia.Porcentaje,
		frasco.ID.String(), req.GramajeTotal,
	)

	existente, err := s.recetaRepo.FindByFormulaHash(ctx, hash)
	duplicada := err == nil && existente != nil && existente.ID != uuid.Nil

	// Cost the formula
	fijos := costosFijosDesdeRequest(req.CostosFijos)
	ganancia := decimal.NewFromInt(20)
	if req.PorcentajeGanancia != nil {
		ganancia = *req.PorcentajeGanancia
	}

	entrada := costing.Entrada{
		Cera:               costing.Componente{PrecioPorGramo: cera.PrecioPorGramo, Porcentaje: req.Cera.Porcentaje},
		Esencia:            costing.Componente{PrecioPorGramo: esencia.PrecioPorGramo, Porcentaje: req.Esencia.Porcentaje},
		PrecioFrasco:       frasco.Precio,
		GramajeTotal:       req.GramajeTotal,
		Unidades:           req.UnidadesProducir,
		CostosFijos:        fijos,
		PorcentajeGanancia: ganancia,
	}
	if aditivo != nil {
		entrada.Aditivo = &costing.Componente{PrecioPorGramo: aditivo.PrecioPorGramo, Porcentaje: aditivoPct}
	}
	resultado := costing.Calcular(entrada)

	var receta *model.Receta
	if duplicada {
		receta = existente
	} else {
		codigo, err := s.siguienteCodigo(ctx, cera.Nombre)
		if err != nil {
			return nil, err
		}
		receta = &model.Receta{
			Codigo:            codigo,
			Nombre:            req.Nombre,
			Descripcion:       req.Descripcion,
			CeraID:            cera.ID,
			CeraPorcentaje:    req.Cera.Porcentaje,
			EsenciaID:         esencia.ID,
			EsenciaPorcentaje: req.Esencia.Porcentaje,
			FrascoID:          frasco.ID,
			GramajeTotal:      req.GramajeTotal,
			UnidadesProducir:  req.UnidadesProducir,

			CostoPabiloChapeta: fijos.PabiloChapeta,
			CostoTrabajo:       fijos.Trabajo,
			CostoServicios:     fijos.Servicios,
			CostoServilletas:   fijos.Servilletas,
			CostoAnilina:       fijos.Anilina,
			CostoStickers:      fijos.Stickers,
			CostoEmpaque:       fijos.Empaque,

			CostoPorUnidad:      resultado.CostoMateriales,
			CostoTotal:          resultado.CostoTotal,
			CostosFijosTotales:  resultado.CostosFijosTotales,
			PorcentajeGanancia:  ganancia,
			PrecioVentaSugerido: resultado.PrecioVentaSugerido,

			FormulaHash: hash,
			ImagenURL:   req.ImagenURL,
			Visible:     true,
			Activo:      true,
		}
		if aditivo != nil {
			id := aditivo.ID
			receta.AditivoID = &id
			receta.AditivoPorcentaje = aditivoPct
		}
	}

	// Commit phase — one transaction, full rollback on any failure
	ahora := time.Now()
	var invVela *model.InventarioVela
	var deducciones []dto.DeduccionStock

	txErr := runTx(ctx, s.recetaRepo.DB(), func(tx *gorm.DB) error {
		if !duplicada {
			if err := s.recetaRepo.CreateTx(tx, receta); err != nil {
				return err
			}
		}

		for _, c := range componentes {
			if err := s.materialRepo.DescontarStockTx(tx, c.material.ID, c.gramosRun); err != nil {
				return fmt.Errorf("descontando %s: %w", c.material.Nombre, err)
			}
			deducciones = append(deducciones, dto.DeduccionStock{
				Entidad:  c.material.Nombre,
				Cantidad: c.gramosRun,
				Unidad:   "g",
			})
		}

		if err := s.frascoRepo.DescontarStockTx(tx, frasco.ID, req.UnidadesProducir); err != nil {
			return fmt.Errorf("descontando %s: %w", frasco.Nombre, err)
		}
		deducciones = append(deducciones, dto.DeduccionStock{
			Entidad:  frasco.Nombre,
			Cantidad: unidades,
			Unidad:   "unidades",
		})

		// Finished goods: upsert by the recipe's canonical name. On a
		// duplicate formula this is the existing recipe's name, so repeat
		// runs keep accruing on a single inventory record even when the
		// request carries a different display name.
		inv, err := s.inventarioRepo.FindByNombre(ctx, receta.Nombre)
		switch {
		case err == nil:
			if err := s.inventarioRepo.AgregarStockTx(tx, inv.ID, req.UnidadesProducir, ahora); err != nil {
				return err
			}
			inv.StockActual += req.UnidadesProducir
			inv.UltimaProduccionFecha = &ahora
			inv.UltimaProduccionCantidad = req.UnidadesProducir
			invVela = inv
		case errors.Is(err, gorm.ErrRecordNotFound):
			recetaID := receta.ID
			nuevo := &model.InventarioVela{
				RecetaID:                 &recetaID,
				NombreVela:               receta.Nombre,
				StockActual:              req.UnidadesProducir,
				StockMinimo:              10,
				UltimaProduccionFecha:    &ahora,
				UltimaProduccionCantidad: req.UnidadesProducir,
				Activo:                   true,
			}
			if err := s.inventarioRepo.CreateTx(tx, nuevo); err != nil {
				return err
			}
			invVela = nuevo
		default:
			return err
		}

		if !receta.InventarioDescontado {
			if err := s.recetaRepo.MarcarInventarioDescontadoTx(tx, receta.ID); err != nil {
				return err
			}
			receta.InventarioDescontado = true
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, repository.ErrConflictoStock) {
			infra.ConflictosStockTotal.Inc()
		}
		return nil, txErr
	}

	infra.ProduccionesTotal.Inc()

	// A short run can leave the finished-goods record still at or under its
	// minimum; alert the same way a sale does.
	if invVela != nil && invVela.BajoStock() {
		infra.AlertasStockTotal.Inc()
		_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertJobPayload{
			InventarioID: invVela.ID.String(),
			NombreVela:   invVela.NombreVela,
		})
	}

	log.Info().
		Str("codigo", receta.Codigo).
		Str("nombre", receta.Nombre).
		Int("unidades", req.UnidadesProducir).
		Bool("duplicada", duplicada).
		Msg("producción registrada")

	mensaje := fmt.Sprintf("Producción registrada: %d unidades de %s", req.UnidadesProducir, receta.Nombre)
	if duplicada {
		mensaje = fmt.Sprintf("Fórmula ya registrada como %s; stock producido sobre la receta existente", receta.Codigo)
	}

	receta.Cera, receta.Aditivo, receta.Esencia, receta.Frasco = cera, aditivo, esencia, frasco
	return &dto.ProduccionResponse{
		Receta:          recetaToResponse(receta),
		RecetaDuplicada: duplicada,
		Mensaje:         mensaje,
		Deducciones:     deducciones,
		InventarioVela:  inventarioToResponse(invVela),
	}, nil
}

func (s *recetaService) resolverMaterial(ctx context.Context, idStr, tipo string) (*model.Material, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, apierror.New(tipo + " inválido")
	}
	m, err := s.materialRepo.FindByID(ctx, id)
	if err != nil || !m.Activo {
		return nil, apierror.NotFound(tipo)
	}
	return m, nil
}

// siguienteCodigo allocates the next PREFIX-NNNN code for the wax family.
func (s *recetaService) siguienteCodigo(ctx context.Context, nombreCera string) (string, error) {
	prefijo := costing.Prefijo(nombreCera)
	ultimo, err := s.recetaRepo.UltimoCodigoConPrefijo(ctx, prefijo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return costing.Codigo(prefijo, 1), nil
		}
		return "", err
	}
	seq, ok := costing.Secuencia(ultimo)
	if !ok {
		seq = 0
	}
	return costing.Codigo(prefijo, seq+1), nil
}

func (s *recetaService) ObtenerReceta(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error) {
	receta, err := s.recetaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("receta")
	}
	resp := recetaToResponse(receta)
	return &resp, nil
}

func (s *recetaService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.RecetaResponse, error) {
	receta, err := s.recetaRepo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, apierror.NotFound("receta")
	}
	resp := recetaToResponse(receta)
	return &resp, nil
}

func (s *recetaService) ListarRecetas(ctx context.Context, filter dto.RecetaFilter) ([]dto.RecetaResponse, error) {
	recetas, err := s.recetaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecetaResponse, len(recetas))
	for i := range recetas {
		resp[i] = recetaToResponse(&recetas[i])
	}
	return resp, nil
}

// ActualizarReceta edits descriptive and pricing inputs. Formula fields and
// codigo never change here; derived prices are recomputed from the stored
// formula with the new fixed costs / margin.
func (s *recetaService) ActualizarReceta(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error) {
	receta, err := s.recetaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("receta")
	}

	if req.Nombre != "" {
		receta.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		receta.Descripcion = req.Descripcion
	}
	if req.ImagenURL != nil {
		receta.ImagenURL = req.ImagenURL
	}
	if req.CostosFijos != nil {
		base := costing.CostosFijos{
			PabiloChapeta: receta.CostoPabiloChapeta,
			Trabajo:       receta.CostoTrabajo,
			Servicios:     receta.CostoServicios,
			Servilletas:   receta.CostoServilletas,
			Anilina:       receta.CostoAnilina,
			Stickers:      receta.CostoStickers,
			Empaque:       receta.CostoEmpaque,
		}
		aplicarCostosFijos(&base, req.CostosFijos)
		receta.CostoPabiloChapeta = base.PabiloChapeta
		receta.CostoTrabajo = base.Trabajo
		receta.CostoServicios = base.Servicios
		receta.CostoServilletas = base.Servilletas
		receta.CostoAnilina = base.Anilina
		receta.CostoStickers = base.Stickers
		receta.CostoEmpaque = base.Empaque
	}
	if req.PorcentajeGanancia != nil {
		receta.PorcentajeGanancia = *req.PorcentajeGanancia
	}

	if receta.Cera == nil || receta.Esencia == nil || receta.Frasco == nil {
		return nil, apierror.New("receta con referencias incompletas")
	}

	entrada := costing.Entrada{
		Cera:         costing.Componente{PrecioPorGramo: receta.Cera.PrecioPorGramo, Porcentaje: receta.CeraPorcentaje},
		Esencia:      costing.Componente{PrecioPorGramo: receta.Esencia.PrecioPorGramo, Porcentaje: receta.EsenciaPorcentaje},
		PrecioFrasco: receta.Frasco.Precio,
		GramajeTotal: receta.GramajeTotal,
		Unidades:     receta.UnidadesProducir,
		CostosFijos: costing.CostosFijos{
			PabiloChapeta: receta.CostoPabiloChapeta,
			Trabajo:       receta.CostoTrabajo,
			Servicios:     receta.CostoServicios,
			Servilletas:   receta.CostoServilletas,
			Anilina:       receta.CostoAnilina,
			Stickers:      receta.CostoStickers,
			Empaque:       receta.CostoEmpaque,
		},
		PorcentajeGanancia: receta.PorcentajeGanancia,
	}
	if receta.Aditivo != nil {
		entrada.Aditivo = &costing.Componente{PrecioPorGramo: receta.Aditivo.PrecioPorGramo, Porcentaje: receta.AditivoPorcentaje}
	}
	resultado := costing.Calcular(entrada)
	receta.CostoPorUnidad = resultado.CostoMateriales
	receta.CostoTotal = resultado.CostoTotal
	receta.CostosFijosTotales = resultado.CostosFijosTotales
	receta.PrecioVentaSugerido = resultado.PrecioVentaSugerido

	if err := s.recetaRepo.Update(ctx, receta); err != nil {
		return nil, err
	}
	resp := recetaToResponse(receta)
	return &resp, nil
}

// ToggleVisibilidad flips catalog exposure without touching the soft delete.
func (s *recetaService) ToggleVisibilidad(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error) {
	receta, err := s.recetaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("receta")
	}
	receta.Visible = !receta.Visible
	if err := s.recetaRepo.Update(ctx, receta); err != nil {
		return nil, err
	}
	resp := recetaToResponse(receta)
	return &resp, nil
}

func (s *recetaService) DesactivarReceta(ctx context.Context, id uuid.UUID) error {
	if err := s.recetaRepo.SetActivo(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("receta")
		}
		return err
	}
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func costosFijosDesdeRequest(req *dto.CostosFijosRequest) costing.CostosFijos {
	fijos := costing.CostosFijosPorDefecto()
	aplicarCostosFijos(&fijos, req)
	return fijos
}

func aplicarCostosFijos(fijos *costing.CostosFijos, req *dto.CostosFijosRequest) {
	if req == nil {
		return
	}
	if req.PabiloChapeta != nil {
		fijos.PabiloChapeta = *req.PabiloChapeta
	}
	if req.Trabajo != nil {
		fijos.Trabajo = *req.Trabajo
	}
	if req.Servicios != nil {
		fijos.Servicios = *req.Servicios
	}
	if req.Servilletas != nil {
		fijos.Servilletas = *req.Servilletas
	}
	if req.Anilina != nil {
		fijos.Anilina = *req.Anilina
	}
	if req.Stickers != nil {
		fijos.Stickers = *req.Stickers
	}
	if req.Empaque != nil {
		fijos.Empaque = *req.Empaque
	}
}

func recetaToResponse(r *model.Receta) dto.RecetaResponse {
	resp := dto.RecetaResponse{
		ID:          r.ID.String(),
		Codigo:      r.Codigo,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Cera: dto.ComponenteResponse{
			MaterialID: r.CeraID.String(),
			Porcentaje: r.CeraPorcentaje,
		},
		Esencia: dto.ComponenteResponse{
			MaterialID: r.EsenciaID.String(),
			Porcentaje: r.EsenciaPorcentaje,
		},
		FrascoID:            r.FrascoID.String(),
		GramajeTotal:        r.GramajeTotal,
		UnidadesProducir:    r.UnidadesProducir,
		CostoPorUnidad:      r.CostoPorUnidad,
		CostoTotal:          r.CostoTotal,
		CostosFijosTotales:  r.CostosFijosTotales,
		PorcentajeGanancia:  r.PorcentajeGanancia,
		PrecioVentaSugerido: r.PrecioVentaSugerido,
		ImagenURL:           r.ImagenURL,
		Visible:             r.Visible,
		Activo:              r.Activo,
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
	}
	if r.Cera != nil {
		resp.Cera.Nombre = r.Cera.Nombre
	}
	if r.Esencia != nil {
		resp.Esencia.Nombre = r.Esencia.Nombre
	}
	if r.Frasco != nil {
		resp.FrascoNombre = r.Frasco.Nombre
	}
	if r.AditivoID != nil {
		aditivo := dto.ComponenteResponse{
			MaterialID: r.AditivoID.String(),
			Porcentaje: r.AditivoPorcentaje,
		}
		if r.Aditivo != nil {
			aditivo.Nombre = r.Aditivo.Nombre
		}
		resp.Aditivo = &aditivo
	}
	return resp
}

func inventarioToResponse(inv *model.InventarioVela) dto.InventarioVelaResponse {
	if inv == nil {
		return dto.InventarioVelaResponse{}
	}
	resp := dto.InventarioVelaResponse{
		ID:          inv.ID.String(),
		NombreVela:  inv.NombreVela,
		StockActual: inv.StockActual,
		StockMinimo: inv.StockMinimo,
		BajoStock:   inv.BajoStock(),
		Activo:      inv.Activo,
	}
	if inv.RecetaID != nil {
		id := inv.RecetaID.String()
		resp.RecetaID = &id
	}
	if inv.Receta != nil {
		resp.RecetaCodigo = inv.Receta.Codigo
	}
	if inv.UltimaProduccionFecha != nil {
		resp.UltimaProduccion = &dto.ProduccionVentaResumen{
			Fecha:    inv.UltimaProduccionFecha.Format("2006-01-02"),
			Cantidad: inv.UltimaProduccionCantidad,
		}
	}
	if inv.UltimaVentaFecha != nil {
		resp.UltimaVenta = &dto.ProduccionVentaResumen{
			Fecha:    inv.UltimaVentaFecha.Format("2006-01-02"),
			Cantidad: inv.UltimaVentaCantidad,
		}
	}
	return resp
}
