// Package excel genera la versión XLSX de los reportes de movimientos con
// excelize: una hoja por reporte, encabezado y una fila por movimiento.
package excel

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/almacen-web/internal/application/report"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
)

var _ report.XLSXGenerator = (*ExcelizeReportGenerator)(nil)

// ExcelizeReportGenerator implementa report.XLSXGenerator usando excelize.
type ExcelizeReportGenerator struct{}

// NewExcelizeReportGenerator construye el generador.
func NewExcelizeReportGenerator() *ExcelizeReportGenerator { return &ExcelizeReportGenerator{} }

// GenerateMovementsXLSX genera el XLSX del reporte y devuelve sus bytes.
func (g *ExcelizeReportGenerator) GenerateMovementsXLSX(sheet string, rows []*entity.MovementReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: eliminar hoja por defecto: %w", err)
	}

	for i, title := range report.CSVHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("xlsx: encabezado: %w", err)
		}
	}

	for i, r := range rows {
		values := []any{
			report.FormatDate(r.CreatedAt),
			report.FormatTime(r.CreatedAt),
			r.ProductID,
			r.ProductName,
			strconv.Itoa(r.Quantity),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
