package infra

// pdf.go — report generation with go-pdf/fpdf.
// Two A4 reports: the sales report (one row per sale over a date range, with
// a grand total) and the finished-goods inventory report (one row per candle,
// low-stock rows flagged).
// Output files land in storagePath/<name>.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const pdfMargin = 12.0

func newReportPDF(negocio, titulo, subtitulo string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, negocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, titulo, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, subtitulo, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	return pdf
}

// GenerateVentasPDF writes the sales report for [desde, hasta) and returns
// the absolute path of the generated file.
func GenerateVentasPDF(ventas []model.Venta, desde, hasta time.Time, negocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}

	fileName := fmt.Sprintf("ventas_%s_%s.pdf", desde.Format("20060102"), hasta.Format("20060102"))
	filePath := filepath.Join(storagePath, fileName)

	sub := fmt.Sprintf("Del %s al %s", desde.Format("02/01/2006"), hasta.Format("02/01/2006"))
	pdf := newReportPDF(negocio, "Reporte de Ventas", sub)

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	col1 := contentW * 0.18 // numero
	col2 := contentW * 0.14 // fecha
	col3 := contentW * 0.30 // cliente
	col4 := contentW * 0.16 // metodo
	col5 := contentW * 0.22 // total

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Número", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Cliente", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Pago", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col5, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	total := decimal.Zero
	for _, v := range ventas {
		cliente := v.ClienteNombre
		if len(cliente) > 28 {
			cliente = cliente[:27] + "…"
		}
		pdf.CellFormat(col1, 5, v.NumeroVenta, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, v.Fecha.Format("02/01/2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, cliente, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 5, v.MetodoPago, "", 0, "L", false, 0, "")
		pdf.CellFormat(col5, 5, "$"+v.Total.StringFixed(2), "", 1, "R", false, 0, "")
		total = total.Add(v.Total)
	}

	pdf.Ln(2)
	pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3+col4, 7, fmt.Sprintf("TOTAL (%d ventas):", len(ventas)), "", 0, "L", false, 0, "")
	pdf.CellFormat(col5, 7, "$"+total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir %s: %w", filePath, err)
	}
	return filePath, nil
}

// GenerateInventarioPDF writes the finished-goods inventory report and
// returns the absolute path of the generated file.
func GenerateInventarioPDF(inventario []model.InventarioVela, negocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}

	fileName := fmt.Sprintf("inventario_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	sub := "Generado el " + time.Now().Format("02/01/2006 15:04")
	pdf := newReportPDF(negocio, "Inventario de Velas", sub)

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	col1 := contentW * 0.44 // nombre
	col2 := contentW * 0.14 // stock
	col3 := contentW * 0.14 // minimo
	col4 := contentW * 0.28 // estado

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Vela", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Stock", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Mínimo", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Estado", "B", 1, "L", false, 0, "")

	bajoStock := 0
	for _, inv := range inventario {
		nombre := inv.NombreVela
		if len(nombre) > 42 {
			nombre = nombre[:41] + "…"
		}
		estado := "OK"
		if inv.BajoStock() {
			estado = "REPONER"
			bajoStock++
			pdf.SetFont("Helvetica", "B", 8)
		} else {
			pdf.SetFont("Helvetica", "", 8)
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%d", inv.StockActual), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, fmt.Sprintf("%d", inv.StockMinimo), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 5, estado, "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("%d velas registradas, %d bajo stock mínimo", len(inventario), bajoStock),
		"", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir %s: %w", filePath, err)
	}
	return filePath, nil
}
