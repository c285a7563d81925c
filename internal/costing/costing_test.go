package costing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func equalDec(t *testing.T, name string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s = %s, want %d", name, got.String(), want)
	}
}

func entradaSoja() Entrada {
	return Entrada{
		Cera:               Componente{PrecioPorGramo: dec(10), Porcentaje: dec(85)},
		Aditivo:            &Componente{PrecioPorGramo: dec(20), Porcentaje: dec(5)},
		Esencia:            Componente{PrecioPorGramo: dec(50), Porcentaje: dec(10)},
		PrecioFrasco:       dec(1500),
		GramajeTotal:       dec(200),
		Unidades:           1,
		CostosFijos:        CostosFijosPorDefecto(),
		PorcentajeGanancia: dec(20),
	}
}

func TestCalcular_VelaDeSoja200g(t *testing.T) {
	r := Calcular(entradaSoja())

	// 170g×10 + 10g×20 + 20g×50 = 2900, + frasco 1500
	equalDec(t, "costoMateriales", r.CostoMateriales, 4400)
	equalDec(t, "costoTotal", r.CostoTotal, 4400)
	equalDec(t, "costosFijosTotales", r.CostosFijosTotales, 4750)
	// (4400+4750)×1.20 = 10980 → siguiente múltiplo de 500
	equalDec(t, "precioVentaSugerido", r.PrecioVentaSugerido, 11000)
}

func TestCalcular_Idempotente(t *testing.T) {
	in := entradaSoja()
	a := Calcular(in)
	b := Calcular(in)

	if !a.CostoMateriales.Equal(b.CostoMateriales) ||
		!a.CostoTotal.Equal(b.CostoTotal) ||
		!a.PrecioVentaSugerido.Equal(b.PrecioVentaSugerido) {
		t.Fatalf("recalculo con la misma entrada difiere: %+v vs %+v", a, b)
	}
}

func TestCalcular_PrecioMultiploDe500(t *testing.T) {
	quinientos := decimal.NewFromInt(500)
	for _, gramaje := range []int64{80, 133, 200, 310, 485} {
		in := entradaSoja()
		in.GramajeTotal = dec(gramaje)
		r := Calcular(in)

		if !r.PrecioVentaSugerido.Mod(quinientos).IsZero() {
			t.Fatalf("gramaje %d: precio %s no es múltiplo de 500", gramaje, r.PrecioVentaSugerido)
		}
		piso := r.CostoMateriales.Add(r.CostosFijosTotales)
		if r.PrecioVentaSugerido.LessThan(piso) {
			t.Fatalf("gramaje %d: precio %s menor que costo %s", gramaje, r.PrecioVentaSugerido, piso)
		}
	}
}

func TestCalcular_SinAditivo(t *testing.T) {
	in := entradaSoja()
	in.Aditivo = nil
	in.Cera.Porcentaje = dec(90)

	r := Calcular(in)
	// 180g×10 + 20g×50 = 2800, + 1500
	equalDec(t, "costoMateriales", r.CostoMateriales, 4300)
}

func TestCalcular_CostoTotalPorUnidades(t *testing.T) {
	in := entradaSoja()
	in.Unidades = 5

	r := Calcular(in)
	equalDec(t, "costoTotal", r.CostoTotal, 22000)
	// unidades no cambian el costo por unidad ni el precio
	equalDec(t, "costoMateriales", r.CostoMateriales, 4400)
	equalDec(t, "precioVentaSugerido", r.PrecioVentaSugerido, 11000)
}

func TestValidarPorcentajes(t *testing.T) {
	if err := ValidarPorcentajes(dec(85), dec(5), dec(10)); err != nil {
		t.Fatalf("85+5+10 debería ser válido: %v", err)
	}
	if err := ValidarPorcentajes(decimal.NewFromFloat(84.995), dec(5), dec(10)); err != nil {
		t.Fatalf("tolerancia 0.01 no respetada: %v", err)
	}
	if err := ValidarPorcentajes(dec(80), dec(5), dec(10)); err == nil {
		t.Fatal("80+5+10 debería fallar")
	}
}

func TestPrefijo(t *testing.T) {
	casos := []struct{ nombre, want string }{
		{"Cera de Soja", "SOJ"},
		{"Cera Parafina", "PAR"},
		{"cera palma", "PAL"},
		{"Soja", "SOJ"},
		{"Cera X1", "CER"}, // última palabra corta → nombre completo
		{"", "REC"},
	}
	for _, c := range casos {
		if got := Prefijo(c.nombre); got != c.want {
			t.Errorf("Prefijo(%q) = %q, want %q", c.nombre, got, c.want)
		}
	}
}

func TestCodigoYSecuencia(t *testing.T) {
	if got := Codigo("SOJ", 7); got != "SOJ-0007" {
		t.Fatalf("Codigo = %q", got)
	}
	n, ok := Secuencia("SOJ-0042")
	if !ok || n != 42 {
		t.Fatalf("Secuencia(SOJ-0042) = %d, %v", n, ok)
	}
	if _, ok := Secuencia("sin-guion-final-"); ok {
		t.Fatal("código malformado aceptado")
	}
}

func TestHashFormula(t *testing.T) {
	base := HashFormula("cera1", dec(85), "adi1", dec(5), "ese1", dec(10), "fra1", dec(200))

	igual := HashFormula("cera1", decimal.NewFromFloat(85.0), "adi1", dec(5), "ese1", dec(10), "fra1", dec(200))
	if base != igual {
		t.Fatal("misma fórmula produce hashes distintos")
	}

	distinto := HashFormula("cera1", dec(85), "adi1", dec(5), "ese1", dec(10), "fra2", dec(200))
	if base == distinto {
		t.Fatal("frasco distinto produce el mismo hash")
	}

	sinAditivo := HashFormula("cera1", dec(90), "", decimal.Zero, "ese1", dec(10), "fra1", dec(200))
	conAditivo := HashFormula("cera1", dec(90), "adi1", decimal.Zero, "ese1", dec(10), "fra1", dec(200))
	if sinAditivo != conAditivo {
		t.Fatal("aditivo con 0% debe equivaler a ausencia de aditivo")
	}
}
