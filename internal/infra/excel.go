package infra

// excel.go — inventory export as an .xlsx workbook. Unlike the PDF report
// this one is meant to be edited offline (stock counts) and is streamed to
// the client, not written to disk.

import (
	"bytes"
	"fmt"

	"github.com/aluenvelas/Back-aluen/internal/model"

	"github.com/xuri/excelize/v2"
)

// GenerateInventarioExcel builds the finished-goods inventory workbook and
// returns its bytes.
func GenerateInventarioExcel(inventario []model.InventarioVela) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"nombre_vela",
		"receta_codigo",
		"stock_actual",
		"stock_minimo",
		"bajo_stock",
		"ultima_produccion",
		"ultima_venta",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}

	row := 2
	for _, inv := range inventario {
		codigo := ""
		if inv.Receta != nil {
			codigo = inv.Receta.Codigo
		}
		ultProduccion := ""
		if inv.UltimaProduccionFecha != nil {
			ultProduccion = inv.UltimaProduccionFecha.Format("2006-01-02")
		}
		ultVenta := ""
		if inv.UltimaVentaFecha != nil {
			ultVenta = inv.UltimaVentaFecha.Format("2006-01-02")
		}

		excelRow := []interface{}{
			inv.ID.String(),
			inv.NombreVela,
			codigo,
			inv.StockActual,
			inv.StockMinimo,
			inv.BajoStock(),
			ultProduccion,
			ultVenta,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("excel: celda fila %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
