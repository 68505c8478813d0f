package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

// Formatos de fecha y hora de los reportes y exportaciones.
const (
	dateInputLayout = "2006-01-02"
	dateLayout      = "02/01/2006"
	timeLayout      = "15:04:05"
)

// CSVHeader columnas de la exportación CSV.
var CSVHeader = []string{"Date", "Time(UTC)", "ProductCode", "ProductName", "Quantity"}

// UseCase consultas y exportaciones de movimientos por tipo.
type UseCase struct {
	movementRepo repository.MovementRepository
	pdfGen       PDFGenerator
	xlsxGen      XLSXGenerator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(movementRepo repository.MovementRepository, pdfGen PDFGenerator, xlsxGen XLSXGenerator) *UseCase {
	return &UseCase{movementRepo: movementRepo, pdfGen: pdfGen, xlsxGen: xlsxGen}
}

// Result reporte en pantalla: filas más el aviso de validación de fechas, si lo hubo.
type Result struct {
	Rows []*entity.MovementReportRow
	// Warning mensaje para el usuario cuando alguna fecha era inválida;
	// ese eje del filtro se ignora y la consulta continúa.
	Warning string
}

// Movements lista los movimientos de un tipo en orden descendente, con rango
// [inicio, fin) opcional: el filtro de fin suma un día para incluir el día
// completo. Una fecha mal formada produce un aviso y deja ese eje sin filtrar.
func (uc *UseCase) Movements(ctx context.Context, kind, startStr, endStr string) (*Result, error) {
	if !entity.ValidMovementKind(kind) {
		return nil, domain.ErrInvalidKind
	}

	var from, to *time.Time
	var warning string
	if startStr != "" {
		t, err := time.ParseInLocation(dateInputLayout, startStr, time.UTC)
		if err != nil {
			warning = "Formato de fecha inválido. Use AAAA-MM-DD."
		} else {
			from = &t
		}
	}
	if endStr != "" {
		t, err := time.ParseInLocation(dateInputLayout, endStr, time.UTC)
		if err != nil {
			warning = "Formato de fecha inválido. Use AAAA-MM-DD."
		} else {
			end := t.AddDate(0, 0, 1) // incluir el día final completo
			to = &end
		}
	}

	rows, err := uc.movementRepo.ListByKind(kind, from, to, false)
	if err != nil {
		return nil, err
	}
	return &Result{Rows: rows, Warning: warning}, nil
}

// exportRows lista todos los movimientos de un tipo en orden ascendente.
func (uc *UseCase) exportRows(kind string) ([]*entity.MovementReportRow, error) {
	if !entity.ValidMovementKind(kind) {
		return nil, domain.ErrInvalidKind
	}
	return uc.movementRepo.ListByKind(kind, nil, nil, true)
}

// ExportCSV genera la exportación CSV: una fila por movimiento del tipo pedido,
// orden ascendente, fecha DD/MM/YYYY y hora HH:MM:SS en UTC.
func (uc *UseCase) ExportCSV(ctx context.Context, kind string) ([]byte, error) {
	rows, err := uc.exportRows(kind)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, row := range rows {
		ts := row.CreatedAt.UTC()
		record := []string{
			ts.Format(dateLayout),
			ts.Format(timeLayout),
			row.ProductID,
			row.ProductName,
			strconv.Itoa(row.Quantity),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX genera la exportación XLSX con las mismas filas que el CSV.
func (uc *UseCase) ExportXLSX(ctx context.Context, kind string) ([]byte, error) {
	rows, err := uc.exportRows(kind)
	if err != nil {
		return nil, err
	}
	return uc.xlsxGen.GenerateMovementsXLSX(KindLabel(kind), rows)
}

// ExportPDF genera la exportación PDF con las mismas filas que el CSV.
func (uc *UseCase) ExportPDF(ctx context.Context, kind string) ([]byte, error) {
	rows, err := uc.exportRows(kind)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateMovementsPDF("Reporte de "+KindLabel(kind), rows)
}

// KindLabel etiqueta legible de un tipo de movimiento.
func KindLabel(kind string) string {
	if kind == entity.MovementKindIn {
		return "Entradas"
	}
	return "Salidas"
}

// FormatDate y FormatTime exponen el formato de reporte a las vistas.
func FormatDate(t time.Time) string { return t.UTC().Format(dateLayout) }
func FormatTime(t time.Time) string { return t.UTC().Format(timeLayout) }
