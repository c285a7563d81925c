// Package costing computes the derived fields of a recipe — material cost,
// total cost, fixed-cost sum and suggested retail price — plus the generated
// recipe code and the canonical formula hash used for duplicate detection.
// It is pure: no I/O, no clock, no storage. Callers resolve the referenced
// materials and frasco first and feed prices in.
package costing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
)

var cien = decimal.NewFromInt(100)

// redondeoPrecio is the retail rounding increment: suggested prices always
// land on a multiple of 500 (pesos redondos en el mostrador).
var redondeoPrecio = decimal.NewFromInt(500)

// Componente is one formula ingredient: its resolved price per gram and the
// percentage of the batch weight it occupies.
type Componente struct {
	PrecioPorGramo decimal.Decimal
	Porcentaje     decimal.Decimal
}

// CostosFijos are the seven per-unit fixed cost line items of a candle.
type CostosFijos struct {
	PabiloChapeta decimal.Decimal `json:"pabilo_chapeta"`
	Trabajo       decimal.Decimal `json:"trabajo"`
	Servicios     decimal.Decimal `json:"servicios"`
	Servilletas   decimal.Decimal `json:"servilletas"`
	Anilina       decimal.Decimal `json:"anilina"`
	Stickers      decimal.Decimal `json:"stickers"`
	Empaque       decimal.Decimal `json:"empaque"`
}

// CostosFijosPorDefecto returns the workshop's standard fixed-cost table.
func CostosFijosPorDefecto() CostosFijos {
	return CostosFijos{
		PabiloChapeta: decimal.NewFromInt(500),
		Trabajo:       decimal.NewFromInt(2500),
		Servicios:     decimal.NewFromInt(400),
		Servilletas:   decimal.NewFromInt(200),
		Anilina:       decimal.NewFromInt(50),
		Stickers:      decimal.NewFromInt(100),
		Empaque:       decimal.NewFromInt(1000),
	}
}

// Total sums the seven line items.
func (c CostosFijos) Total() decimal.Decimal {
	return c.PabiloChapeta.
		Add(c.Trabajo).
		Add(c.Servicios).
		Add(c.Servilletas).
		Add(c.Anilina).
		Add(c.Stickers).
		Add(c.Empaque)
}

// Entrada is a recipe draft ready for costing: percentages already validated
// against the referenced materials.
type Entrada struct {
	Cera    Componente
	Aditivo *Componente // nil or 0% = recipe without additive
	Esencia Componente

	PrecioFrasco       decimal.Decimal
	GramajeTotal       decimal.Decimal // grams per unit
	Unidades           int
	CostosFijos        CostosFijos
	PorcentajeGanancia decimal.Decimal
}

// Resultado carries every derived cost field of a recipe.
type Resultado struct {
	CostoMateriales     decimal.Decimal // per unit: ceiled material sum + frasco
	CostoTotal          decimal.Decimal // materials × unidades, ceiled
	CostosFijosTotales  decimal.Decimal
	PrecioVentaSugerido decimal.Decimal // multiple of 500
}

// ValidarPorcentajes checks the formula invariant: cera + aditivo + esencia
// must sum to 100 within a 0.01 tolerance. aditivo may be zero.
func ValidarPorcentajes(cera, aditivo, esencia decimal.Decimal) error {
	suma := cera.Add(aditivo).Add(esencia)
	tolerancia := decimal.NewFromFloat(0.01)
	if suma.Sub(cien).Abs().GreaterThan(tolerancia) {
		return &apierror.PorcentajeError{Suma: suma}
	}
	return nil
}

// gramos returns the ceiled grams of one component for a single unit.
func gramos(gramajeTotal, porcentaje decimal.Decimal) decimal.Decimal {
	return gramajeTotal.Mul(porcentaje).Div(cien).Ceil()
}

// GramosComponente is the per-unit gram requirement of one component. The
// same ceiled figure drives both costing and the stock verify/deduct phases,
// so what gets charged is exactly what gets discounted.
func GramosComponente(gramajeTotal, porcentaje decimal.Decimal) decimal.Decimal {
	return gramos(gramajeTotal, porcentaje)
}

// Calcular derives the cost fields from a recipe draft. It is idempotent:
// identical inputs always produce identical outputs.
func Calcular(in Entrada) Resultado {
	materiales := gramos(in.GramajeTotal, in.Cera.Porcentaje).Mul(in.Cera.PrecioPorGramo)

	if in.Aditivo != nil && in.Aditivo.Porcentaje.IsPositive() {
		materiales = materiales.Add(gramos(in.GramajeTotal, in.Aditivo.Porcentaje).Mul(in.Aditivo.PrecioPorGramo))
	}

	materiales = materiales.Add(gramos(in.GramajeTotal, in.Esencia.Porcentaje).Mul(in.Esencia.PrecioPorGramo))

	costoMateriales := materiales.Ceil().Add(in.PrecioFrasco)

	unidades := in.Unidades
	if unidades < 1 {
		unidades = 1
	}
	costoTotal := costoMateriales.Mul(decimal.NewFromInt(int64(unidades))).Ceil()

	fijos := in.CostosFijos.Total()

	ganancia := in.PorcentajeGanancia
	if ganancia.IsZero() {
		ganancia = decimal.NewFromInt(20)
	}
	factor := decimal.NewFromInt(1).Add(ganancia.Div(cien))
	precio := costoMateriales.Add(fijos).Mul(factor).Div(redondeoPrecio).Ceil().Mul(redondeoPrecio)

	return Resultado{
		CostoMateriales:     costoMateriales,
		CostoTotal:          costoTotal,
		CostosFijosTotales:  fijos,
		PrecioVentaSugerido: precio,
	}
}

// ─── Recipe code generation ──────────────────────────────────────────────────

var noLetras = regexp.MustCompile(`[^A-Z]`)

// Prefijo derives the 3-letter recipe code prefix from the wax material name:
// the first three letters of its last whitespace-delimited token, uppercased
// and stripped of non-letters. "Cera de Soja" → "SOJ", "Cera Parafina" → "PAR".
// Falls back to the full name when the last token is too short, then to "REC".
func Prefijo(nombreCera string) string {
	mayus := strings.ToUpper(strings.TrimSpace(nombreCera))
	palabras := strings.Fields(mayus)
	if len(palabras) == 0 {
		return "REC"
	}

	ultima := noLetras.ReplaceAllString(palabras[len(palabras)-1], "")
	if len(ultima) >= 3 {
		return ultima[:3]
	}

	completo := noLetras.ReplaceAllString(mayus, "")
	if len(completo) >= 3 {
		return completo[:3]
	}
	return "REC"
}

// Codigo formats a recipe code: prefix plus a zero-padded sequence (SOJ-0001).
func Codigo(prefijo string, secuencia int) string {
	return fmt.Sprintf("%s-%04d", prefijo, secuencia)
}

// Secuencia extracts the numeric sequence from an existing code. Returns
// false when the code does not match the PREFIX-NNNN shape.
func Secuencia(codigo string) (int, bool) {
	idx := strings.LastIndex(codigo, "-")
	if idx < 0 || idx == len(codigo)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(codigo[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ─── Formula identity ────────────────────────────────────────────────────────

// HashFormula returns the canonical SHA-256 of a formula's identity:
// {cera id+%, aditivo id+% (or explicit absence), esencia id+%, frasco id,
// gramaje}. Two production requests with equal hashes belong to the same
// recipe lineage and share one finished-goods record.
func HashFormula(ceraID string, ceraPct decimal.Decimal, aditivoID string, aditivoPct decimal.Decimal, esenciaID string, esenciaPct decimal.Decimal, frascoID string, gramajeTotal decimal.Decimal) string {
	aditivo := "sin-aditivo"
	if aditivoID != "" && aditivoPct.IsPositive() {
		aditivo = aditivoID + ":" + aditivoPct.StringFixed(2)
	}
	canonica := strings.Join([]string{
		ceraID + ":" + ceraPct.StringFixed(2),
		aditivo,
		esenciaID + ":" + esenciaPct.StringFixed(2),
		frascoID,
		gramajeTotal.StringFixed(2),
	}, "|")

	sum := sha256.Sum256([]byte(canonica))
	return hex.EncodeToString(sum[:])
}
