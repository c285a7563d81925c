package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/infra"
	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// tallerDePrueba wires a production service over in-memory repos with the
// standard soja fixture: 85/5/10 formula, 200g, frasco at $1500.
type tallerDePrueba struct {
	svc        RecetaService
	materiales *stubMaterialRepo
	frascos    *stubFrascoRepo
	recetas    *stubRecetaRepo
	inventario *stubInventarioRepo
	cera       *model.Material
	aditivo    *model.Material
	esencia    *model.Material
	frasco     *model.Frasco
}

func nuevoTaller(t *testing.T) *tallerDePrueba {
	t.Helper()
	materiales := newStubMaterialRepo()
	frascos := newStubFrascoRepo()
	recetas := newStubRecetaRepo()
	inventario := newStubInventarioRepo()

	taller := &tallerDePrueba{
		svc:        NewRecetaService(recetas, materiales, frascos, inventario, nil),
		materiales: materiales,
		frascos:    frascos,
		recetas:    recetas,
		inventario: inventario,
	}
	taller.cera = materiales.agregar(&model.Material{
		Nombre: "Cera de Soja", Tipo: "cera", PrecioPorGramo: dec(10),
		Proveedor: "Proveedor A", Stock: dec(10000), Unidad: "gramos",
	})
	taller.aditivo = materiales.agregar(&model.Material{
		Nombre: "Estearina", Tipo: "aditivo", PrecioPorGramo: dec(20),
		Proveedor: "Proveedor A", Stock: dec(1000), Unidad: "gramos",
	})
	taller.esencia = materiales.agregar(&model.Material{
		Nombre: "Esencia Lavanda", Tipo: "esencia", PrecioPorGramo: dec(50),
		Proveedor: "Proveedor B", Stock: dec(500), Unidad: "gramos",
	})
	taller.frasco = frascos.agregar(&model.Frasco{
		Nombre: "Frasco Vidrio 250", Capacidad: dec(250), Unidad: "ml",
		Material: "vidrio", Precio: dec(1500), Proveedor: "Proveedor C", Stock: 100,
	})
	return taller
}

func (ta *tallerDePrueba) requestSoja(unidades int) dto.ProducirRecetaRequest {
	return dto.ProducirRecetaRequest{
		Nombre:           "Vela Lavanda Lila 250ml",
		Cera:             dto.ComponenteRequest{Material: ta.cera.ID.String(), Porcentaje: dec(85)},
		Aditivo:          &dto.ComponenteRequest{Material: ta.aditivo.ID.String(), Porcentaje: dec(5)},
		Esencia:          dto.ComponenteRequest{Material: ta.esencia.ID.String(), Porcentaje: dec(10)},
		Frasco:           ta.frasco.ID.String(),
		GramajeTotal:     dec(200),
		UnidadesProducir: unidades,
	}
}

func TestProducir_CalculaCostosYDescuentaStock(t *testing.T) {
	ta := nuevoTaller(t)

	resp, err := ta.svc.Producir(context.Background(), ta.requestSoja(5))
	require.NoError(t, err)

	// 170g×10 + 10g×20 + 20g×50 = 2900, + frasco 1500
	assert.True(t, resp.Receta.CostoPorUnidad.Equal(dec(4400)), "costo por unidad: %s", resp.Receta.CostoPorUnidad)
	assert.True(t, resp.Receta.CostoTotal.Equal(dec(22000)), "costo total: %s", resp.Receta.CostoTotal)
	assert.True(t, resp.Receta.CostosFijosTotales.Equal(dec(4750)))
	assert.True(t, resp.Receta.PrecioVentaSugerido.Equal(dec(11000)))

	// Raw materials drained for the whole run: per-unit grams × 5
	assert.True(t, ta.cera.Stock.Equal(dec(10000-170*5)), "stock cera: %s", ta.cera.Stock)
	assert.True(t, ta.aditivo.Stock.Equal(dec(1000-10*5)))
	assert.True(t, ta.esencia.Stock.Equal(dec(500-20*5)))
	assert.Equal(t, 95, ta.frasco.Stock)

	// Finished goods credited under the display name
	inv, err := ta.inventario.FindByNombre(context.Background(), "Vela Lavanda Lila 250ml")
	require.NoError(t, err)
	assert.Equal(t, 5, inv.StockActual)
	require.NotNil(t, inv.UltimaProduccionFecha)
	assert.Equal(t, 5, inv.UltimaProduccionCantidad)

	assert.False(t, resp.RecetaDuplicada)
	assert.Equal(t, "SOJ-0001", resp.Receta.Codigo)
	assert.Len(t, resp.Deducciones, 4) // 3 materiales + frasco
}

func TestProducir_CodigosSecuencialesPorCera(t *testing.T) {
	ta := nuevoTaller(t)

	primera, err := ta.svc.Producir(context.Background(), ta.requestSoja(1))
	require.NoError(t, err)
	assert.Equal(t, "SOJ-0001", primera.Receta.Codigo)

	// Distinct gramaje → distinct formula → new code in the same family
	req := ta.requestSoja(1)
	req.Nombre = "Vela Lavanda Grande"
	req.GramajeTotal = dec(300)
	segunda, err := ta.svc.Producir(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "SOJ-0002", segunda.Receta.Codigo)
}

func TestProducir_FormulaDuplicadaReusaReceta(t *testing.T) {
	ta := nuevoTaller(t)

	primera, err := ta.svc.Producir(context.Background(), ta.requestSoja(2))
	require.NoError(t, err)

	segunda, err := ta.svc.Producir(context.Background(), ta.requestSoja(3))
	require.NoError(t, err)

	assert.True(t, segunda.RecetaDuplicada)
	assert.Equal(t, primera.Receta.ID, segunda.Receta.ID)
	assert.Equal(t, primera.Receta.Codigo, segunda.Receta.Codigo)
	assert.Len(t, ta.recetas.recetas, 1)

	// Both runs accumulate on the same finished-goods record
	inv, err := ta.inventario.FindByNombre(context.Background(), "Vela Lavanda Lila 250ml")
	require.NoError(t, err)
	assert.Equal(t, 5, inv.StockActual)
}

func TestProducir_FormulaDuplicadaConOtroNombreAcumulaEnUnSoloInventario(t *testing.T) {
	ta := nuevoTaller(t)

	primera, err := ta.svc.Producir(context.Background(), ta.requestSoja(2))
	require.NoError(t, err)

	// Same formula resubmitted under another display name must reuse the
	// recipe and keep crediting its original finished-goods record.
	req := ta.requestSoja(3)
	req.Nombre = "Vela Lavanda Edición Invierno"
	segunda, err := ta.svc.Producir(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, segunda.RecetaDuplicada)
	assert.Equal(t, primera.Receta.ID, segunda.Receta.ID)
	require.Len(t, ta.inventario.inventario, 1)

	inv, err := ta.inventario.FindByNombre(context.Background(), "Vela Lavanda Lila 250ml")
	require.NoError(t, err)
	assert.Equal(t, 5, inv.StockActual)

	_, err = ta.inventario.FindByNombre(context.Background(), "Vela Lavanda Edición Invierno")
	assert.Error(t, err, "el nombre alternativo no abre un inventario paralelo")
}

func TestProducir_PorcentajesInvalidos(t *testing.T) {
	ta := nuevoTaller(t)

	req := ta.requestSoja(1)
	req.Esencia.Porcentaje = dec(20) // 85+5+20 = 110

	_, err := ta.svc.Producir(context.Background(), req)
	var pctErr *apierror.PorcentajeError
	require.ErrorAs(t, err, &pctErr)
	assert.True(t, pctErr.Suma.Equal(dec(110)))

	// Nothing was touched
	assert.True(t, ta.cera.Stock.Equal(dec(10000)))
	assert.Empty(t, ta.recetas.recetas)
}

func TestProducir_StockInsuficienteNoDejaRastro(t *testing.T) {
	ta := nuevoTaller(t)
	ta.esencia.Stock = dec(30) // 2 unidades requieren 40g de esencia

	_, err := ta.svc.Producir(context.Background(), ta.requestSoja(2))
	var stockErr *apierror.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Esencia Lavanda", stockErr.Entidad)
	assert.True(t, stockErr.Requerido.Equal(dec(40)))
	assert.True(t, stockErr.Disponible.Equal(dec(30)))

	// Verify phase failed: no recipe, no deduction, no finished goods
	assert.Empty(t, ta.recetas.recetas)
	assert.True(t, ta.cera.Stock.Equal(dec(10000)))
	assert.Empty(t, ta.inventario.inventario)
}

func TestProducir_FrascoInsuficiente(t *testing.T) {
	ta := nuevoTaller(t)
	ta.frasco.Stock = 1

	_, err := ta.svc.Producir(context.Background(), ta.requestSoja(3))
	var stockErr *apierror.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Frasco Vidrio 250", stockErr.Entidad)
}

func TestProducir_SinAditivo(t *testing.T) {
	ta := nuevoTaller(t)

	req := ta.requestSoja(1)
	req.Aditivo = nil
	req.Cera.Porcentaje = dec(90)

	resp, err := ta.svc.Producir(context.Background(), req)
	require.NoError(t, err)
	// 180g×10 + 20g×50 = 2800, + 1500
	assert.True(t, resp.Receta.CostoPorUnidad.Equal(dec(4300)))
	assert.Nil(t, resp.Receta.Aditivo)
	assert.True(t, ta.aditivo.Stock.Equal(dec(1000)), "el aditivo no participa")
}

func TestProducir_MaterialInexistente(t *testing.T) {
	ta := nuevoTaller(t)

	req := ta.requestSoja(1)
	req.Esencia.Material = "3f9c2b43-0000-0000-0000-000000000000"

	_, err := ta.svc.Producir(context.Background(), req)
	var nfErr *apierror.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestProducir_RunCortoDisparaAlertaDeStock(t *testing.T) {
	ta := nuevoTaller(t)

	antes := testutil.ToFloat64(infra.AlertasStockTotal)

	// 5 unidades quedan bajo el mínimo por defecto (10): se encola la
	// alerta igual que tras una venta. Sin dispatcher el encolado es no-op.
	resp, err := ta.svc.Producir(context.Background(), ta.requestSoja(5))
	require.NoError(t, err)
	require.NotNil(t, resp.InventarioVela)
	assert.LessOrEqual(t, resp.InventarioVela.StockActual, resp.InventarioVela.StockMinimo)

	assert.Equal(t, antes+1, testutil.ToFloat64(infra.AlertasStockTotal))

	// Reponer por encima del mínimo no vuelve a alertar
	_, err = ta.svc.Producir(context.Background(), ta.requestSoja(20))
	require.NoError(t, err)
	assert.Equal(t, antes+1, testutil.ToFloat64(infra.AlertasStockTotal))
}

func TestActualizarReceta_RecalculaPrecios(t *testing.T) {
	ta := nuevoTaller(t)

	resp, err := ta.svc.Producir(context.Background(), ta.requestSoja(1))
	require.NoError(t, err)

	receta := ta.recetas.recetas[mustParse(t, resp.Receta.ID)]
	receta.Cera, receta.Aditivo, receta.Esencia, receta.Frasco = ta.cera, ta.aditivo, ta.esencia, ta.frasco

	margen := dec(50)
	actualizada, err := ta.svc.ActualizarReceta(context.Background(), receta.ID, dto.ActualizarRecetaRequest{
		PorcentajeGanancia: &margen,
	})
	require.NoError(t, err)

	// (4400+4750)×1.50 = 13725 → 14000
	assert.True(t, actualizada.PrecioVentaSugerido.Equal(dec(14000)), "precio: %s", actualizada.PrecioVentaSugerido)
	assert.Equal(t, "SOJ-0001", actualizada.Codigo, "el código nunca cambia")
}

func TestToggleVisibilidad_Alterna(t *testing.T) {
	ta := nuevoTaller(t)

	resp, err := ta.svc.Producir(context.Background(), ta.requestSoja(1))
	require.NoError(t, err)
	id := mustParse(t, resp.Receta.ID)
	assert.True(t, resp.Receta.Visible)

	oculta, err := ta.svc.ToggleVisibilidad(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, oculta.Visible)

	visible, err := ta.svc.ToggleVisibilidad(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, visible.Visible)
	assert.True(t, visible.Activo, "la visibilidad no toca el soft delete")
}

func TestDesactivarReceta_Inexistente(t *testing.T) {
	ta := nuevoTaller(t)

	err := ta.svc.DesactivarReceta(context.Background(), mustParse(t, "2a8b07a3-46b7-4d38-9d4c-b2808efaaa21"))
	var nfErr *apierror.NotFoundError
	require.True(t, errors.As(err, &nfErr))
}
