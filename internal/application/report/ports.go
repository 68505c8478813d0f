package report

import "github.com/tu-usuario/almacen-web/internal/domain/entity"

// PDFGenerator genera el PDF de un reporte de movimientos.
type PDFGenerator interface {
	GenerateMovementsPDF(title string, rows []*entity.MovementReportRow) ([]byte, error)
}

// XLSXGenerator genera el XLSX de un reporte de movimientos.
type XLSXGenerator interface {
	GenerateMovementsXLSX(sheet string, rows []*entity.MovementReportRow) ([]byte, error)
}
