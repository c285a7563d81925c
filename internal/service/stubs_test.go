package service

// In-memory repository stubs shared by the service tests. DB() returns nil so
// runTx calls the closure directly without a live transaction. Read methods
// hand out copies, like a row scan does, so a caller mutating the returned
// struct never touches the stored record.

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/model"
	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func mustParse(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("uuid inválido %q: %v", s, err)
	}
	return id
}

// ── MaterialRepository ───────────────────────────────────────────────────────

type stubMaterialRepo struct {
	materiales map[uuid.UUID]*model.Material
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materiales: make(map[uuid.UUID]*model.Material)}
}

func (r *stubMaterialRepo) agregar(m *model.Material) *model.Material {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Activo = true
	r.materiales[m.ID] = m
	return m
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.Material) error {
	r.agregar(m)
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	m, ok := r.materiales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *m
	return &copia, nil
}

func (r *stubMaterialRepo) List(_ context.Context, _ dto.MaterialFilter) ([]model.Material, error) {
	var out []model.Material
	for _, m := range r.materiales {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMaterialRepo) Update(_ context.Context, m *model.Material) error {
	r.materiales[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m, ok := r.materiales[id]; ok {
		m.Activo = false
	}
	return nil
}

func (r *stubMaterialRepo) AjustarStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	m, ok := r.materiales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	nuevo := m.Stock.Add(delta)
	if nuevo.IsNegative() {
		return repository.ErrConflictoStock
	}
	m.Stock = nuevo
	return nil
}

func (r *stubMaterialRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, gramos decimal.Decimal) error {
	m, ok := r.materiales[id]
	if !ok || m.Stock.LessThan(gramos) {
		return repository.ErrConflictoStock
	}
	m.Stock = m.Stock.Sub(gramos)
	return nil
}

func (r *stubMaterialRepo) DB() *gorm.DB { return nil }

var _ repository.MaterialRepository = (*stubMaterialRepo)(nil)

// ── FrascoRepository ─────────────────────────────────────────────────────────

type stubFrascoRepo struct {
	frascos map[uuid.UUID]*model.Frasco
}

func newStubFrascoRepo() *stubFrascoRepo {
	return &stubFrascoRepo{frascos: make(map[uuid.UUID]*model.Frasco)}
}

func (r *stubFrascoRepo) agregar(f *model.Frasco) *model.Frasco {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.Activo = true
	r.frascos[f.ID] = f
	return f
}

func (r *stubFrascoRepo) Create(_ context.Context, f *model.Frasco) error {
	r.agregar(f)
	return nil
}

func (r *stubFrascoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Frasco, error) {
	f, ok := r.frascos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *f
	return &copia, nil
}

func (r *stubFrascoRepo) List(_ context.Context, _ string) ([]model.Frasco, error) {
	var out []model.Frasco
	for _, f := range r.frascos {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubFrascoRepo) Update(_ context.Context, f *model.Frasco) error {
	r.frascos[f.ID] = f
	return nil
}

func (r *stubFrascoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if f, ok := r.frascos[id]; ok {
		f.Activo = false
	}
	return nil
}

func (r *stubFrascoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	f, ok := r.frascos[id]
	if !ok || f.Stock+delta < 0 {
		return repository.ErrConflictoStock
	}
	f.Stock += delta
	return nil
}

func (r *stubFrascoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, unidades int) error {
	f, ok := r.frascos[id]
	if !ok || f.Stock < unidades {
		return repository.ErrConflictoStock
	}
	f.Stock -= unidades
	return nil
}

var _ repository.FrascoRepository = (*stubFrascoRepo)(nil)

// ── RecetaRepository ─────────────────────────────────────────────────────────

type stubRecetaRepo struct {
	recetas map[uuid.UUID]*model.Receta
}

func newStubRecetaRepo() *stubRecetaRepo {
	return &stubRecetaRepo{recetas: make(map[uuid.UUID]*model.Receta)}
}

func (r *stubRecetaRepo) CreateTx(_ *gorm.DB, receta *model.Receta) error {
	if receta.ID == uuid.Nil {
		receta.ID = uuid.New()
	}
	receta.CreatedAt = time.Now()
	r.recetas[receta.ID] = receta
	return nil
}

func (r *stubRecetaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receta, error) {
	receta, ok := r.recetas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *receta
	return &copia, nil
}

func (r *stubRecetaRepo) FindByCodigo(_ context.Context, codigo string) (*model.Receta, error) {
	for _, receta := range r.recetas {
		if receta.Codigo == codigo {
			copia := *receta
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRecetaRepo) FindByFormulaHash(_ context.Context, hash string) (*model.Receta, error) {
	for _, receta := range r.recetas {
		if receta.FormulaHash == hash && receta.Activo {
			copia := *receta
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRecetaRepo) UltimoCodigoConPrefijo(_ context.Context, prefijo string) (string, error) {
	ultimo := ""
	for _, receta := range r.recetas {
		if strings.HasPrefix(receta.Codigo, prefijo+"-") && receta.Codigo > ultimo {
			ultimo = receta.Codigo
		}
	}
	if ultimo == "" {
		return "", gorm.ErrRecordNotFound
	}
	return ultimo, nil
}

func (r *stubRecetaRepo) List(_ context.Context, _ dto.RecetaFilter) ([]model.Receta, error) {
	var out []model.Receta
	for _, receta := range r.recetas {
		out = append(out, *receta)
	}
	return out, nil
}

func (r *stubRecetaRepo) Update(_ context.Context, receta *model.Receta) error {
	r.recetas[receta.ID] = receta
	return nil
}

func (r *stubRecetaRepo) MarcarInventarioDescontadoTx(_ *gorm.DB, id uuid.UUID) error {
	if receta, ok := r.recetas[id]; ok {
		receta.InventarioDescontado = true
	}
	return nil
}

func (r *stubRecetaRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	receta, ok := r.recetas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	receta.Activo = activo
	return nil
}

func (r *stubRecetaRepo) DB() *gorm.DB { return nil }

var _ repository.RecetaRepository = (*stubRecetaRepo)(nil)

// ── InventarioRepository ─────────────────────────────────────────────────────

type stubInventarioRepo struct {
	inventario map[uuid.UUID]*model.InventarioVela
}

func newStubInventarioRepo() *stubInventarioRepo {
	return &stubInventarioRepo{inventario: make(map[uuid.UUID]*model.InventarioVela)}
}

func (r *stubInventarioRepo) CreateTx(_ *gorm.DB, inv *model.InventarioVela) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.inventario[inv.ID] = inv
	return nil
}

func (r *stubInventarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventarioVela, error) {
	inv, ok := r.inventario[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *inv
	return &copia, nil
}

func (r *stubInventarioRepo) FindByNombre(_ context.Context, nombre string) (*model.InventarioVela, error) {
	for _, inv := range r.inventario {
		if inv.NombreVela == nombre && inv.Activo {
			copia := *inv
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInventarioRepo) List(_ context.Context, _ dto.InventarioFilter) ([]model.InventarioVela, error) {
	var out []model.InventarioVela
	for _, inv := range r.inventario {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *stubInventarioRepo) ListBajoStock(_ context.Context) ([]model.InventarioVela, error) {
	var out []model.InventarioVela
	for _, inv := range r.inventario {
		if inv.Activo && inv.BajoStock() {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *stubInventarioRepo) Update(_ context.Context, inv *model.InventarioVela) error {
	r.inventario[inv.ID] = inv
	return nil
}

func (r *stubInventarioRepo) AgregarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int, fecha time.Time) error {
	inv, ok := r.inventario[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.StockActual += cantidad
	inv.UltimaProduccionFecha = &fecha
	inv.UltimaProduccionCantidad = cantidad
	return nil
}

func (r *stubInventarioRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int, fecha time.Time) error {
	inv, ok := r.inventario[id]
	if !ok || inv.StockActual < cantidad {
		return repository.ErrConflictoStock
	}
	inv.StockActual -= cantidad
	inv.UltimaVentaFecha = &fecha
	inv.UltimaVentaCantidad = cantidad
	return nil
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

var _ repository.InventarioRepository = (*stubInventarioRepo)(nil)

// ── VentaRepository ──────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, venta *model.Venta) error {
	if venta.ID == uuid.Nil {
		venta.ID = uuid.New()
	}
	venta.CreatedAt = time.Now()
	r.ventas[venta.ID] = venta
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	venta, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *venta
	return &copia, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, venta := range r.ventas {
		out = append(out, *venta)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	venta, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	venta.Estado = estado
	return nil
}

func (r *stubVentaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) UltimoNumeroConPrefijo(_ *gorm.DB, prefijo string) (string, error) {
	ultimo := ""
	for _, venta := range r.ventas {
		if strings.HasPrefix(venta.NumeroVenta, prefijo) && venta.NumeroVenta > ultimo {
			ultimo = venta.NumeroVenta
		}
	}
	return ultimo, nil
}

func (r *stubVentaRepo) TotalesPorMetodo(_ context.Context, _, _ time.Time) ([]dto.VentasPorMetodo, error) {
	return nil, nil
}

func (r *stubVentaRepo) ProductosMasVendidos(_ context.Context, _, _ time.Time, _ int) ([]dto.ProductoVendido, error) {
	return nil, nil
}

func (r *stubVentaRepo) VentasPorDia(_ context.Context, _, _ time.Time) ([]dto.VentasPorDia, error) {
	return nil, nil
}

func (r *stubVentaRepo) Totales(_ context.Context, desde, hasta time.Time) (int64, decimal.Decimal, error) {
	var n int64
	total := decimal.Zero
	for _, venta := range r.ventas {
		if venta.Estado == "completada" && !venta.Fecha.Before(desde) && venta.Fecha.Before(hasta) {
			n++
			total = total.Add(venta.Total)
		}
	}
	return n, total, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── PuntoVentaRepository ─────────────────────────────────────────────────────

type stubPuntoVentaRepo struct {
	puntos map[uuid.UUID]*model.PuntoVenta
}

func newStubPuntoVentaRepo() *stubPuntoVentaRepo {
	return &stubPuntoVentaRepo{puntos: make(map[uuid.UUID]*model.PuntoVenta)}
}

func (r *stubPuntoVentaRepo) Create(_ context.Context, pv *model.PuntoVenta) error {
	if pv.ID == uuid.Nil {
		pv.ID = uuid.New()
	}
	r.puntos[pv.ID] = pv
	return nil
}

func (r *stubPuntoVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PuntoVenta, error) {
	pv, ok := r.puntos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *pv
	return &copia, nil
}

func (r *stubPuntoVentaRepo) List(_ context.Context, _ bool) ([]model.PuntoVenta, error) {
	var out []model.PuntoVenta
	for _, pv := range r.puntos {
		out = append(out, *pv)
	}
	return out, nil
}

func (r *stubPuntoVentaRepo) Update(_ context.Context, pv *model.PuntoVenta) error {
	r.puntos[pv.ID] = pv
	return nil
}

func (r *stubPuntoVentaRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	pv, ok := r.puntos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	pv.Activo = activo
	return nil
}

var _ repository.PuntoVentaRepository = (*stubPuntoVentaRepo)(nil)
