package report_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-web/internal/application/apptest"
	"github.com/tu-usuario/almacen-web/internal/application/report"
	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
)

// stubPDF y stubXLSX capturan las filas que reciben los generadores.
type stubPDF struct{ rows []*entity.MovementReportRow }

func (s *stubPDF) GenerateMovementsPDF(title string, rows []*entity.MovementReportRow) ([]byte, error) {
	s.rows = rows
	return []byte("%PDF"), nil
}

type stubXLSX struct{ rows []*entity.MovementReportRow }

func (s *stubXLSX) GenerateMovementsXLSX(sheet string, rows []*entity.MovementReportRow) ([]byte, error) {
	s.rows = rows
	return []byte("PK"), nil
}

// buildReport siembra un producto con movimientos en fechas conocidas (UTC).
func buildReport(t *testing.T) (*report.UseCase, *stubPDF, *stubXLSX) {
	t.Helper()
	store := apptest.NewMemoryStore()
	require.NoError(t, store.ProductRepo().Create(&entity.Product{
		ID:        "prod-1",
		Name:      "Tornillos",
		CreatedAt: time.Now().UTC(),
	}))

	seed := []struct {
		id   string
		kind string
		qty  int
		at   time.Time
	}{
		{"m1", entity.MovementKindIn, 10, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
		{"m2", entity.MovementKindIn, 5, time.Date(2026, 3, 5, 14, 0, 0, 0, time.UTC)},
		{"m3", entity.MovementKindOut, 4, time.Date(2026, 3, 3, 11, 15, 0, 0, time.UTC)},
		{"m4", entity.MovementKindIn, 2, time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)},
	}
	for _, m := range seed {
		require.NoError(t, store.MovementRepo().Create(&entity.Movement{
			ID:        m.id,
			ProductID: "prod-1",
			Kind:      m.kind,
			Quantity:  m.qty,
			CreatedAt: m.at,
		}))
	}

	pdf := &stubPDF{}
	xlsx := &stubXLSX{}
	return report.NewUseCase(store.MovementRepo(), pdf, xlsx), pdf, xlsx
}

func ids(rows []*entity.MovementReportRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del reporte en pantalla
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_SinFiltro_OrdenDescendente(t *testing.T) {
	uc, _, _ := buildReport(t)

	result, err := uc.Movements(context.Background(), entity.MovementKindIn, "", "")
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, []string{"m4", "m2", "m1"}, ids(result.Rows),
		"en pantalla los movimientos van del más reciente al más antiguo")
}

func TestMovements_FiltroDeFechas_IncluyeElDiaFinalCompleto(t *testing.T) {
	uc, _, _ := buildReport(t)

	result, err := uc.Movements(context.Background(), entity.MovementKindIn, "2026-03-05", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"m4", "m2"}, ids(result.Rows),
		"un movimiento a las 23:59:59 del día final debe entrar en el rango")
}

func TestMovements_FechaInvalida_AvisaYNoFiltraEseEje(t *testing.T) {
	uc, _, _ := buildReport(t)

	result, err := uc.Movements(context.Background(), entity.MovementKindIn, "01/03/2026", "")
	require.NoError(t, err, "una fecha mal formada no debe abortar el reporte")
	assert.Equal(t, "Formato de fecha inválido. Use AAAA-MM-DD.", result.Warning)
	assert.Len(t, result.Rows, 3, "el eje inválido queda sin filtrar")
}

func TestMovements_FiltraPorTipo(t *testing.T) {
	uc, _, _ := buildReport(t)

	result, err := uc.Movements(context.Background(), entity.MovementKindOut, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"m3"}, ids(result.Rows))
}

func TestMovements_TipoInvalido_RetornaError(t *testing.T) {
	uc, _, _ := buildReport(t)

	_, err := uc.Movements(context.Background(), "transferencia", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_FormatoYOrdenAscendente(t *testing.T) {
	uc, _, _ := buildReport(t)

	payload, err := uc.ExportCSV(context.Background(), entity.MovementKindIn)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "cabecera más una fila por movimiento")

	assert.Equal(t, report.CSVHeader, records[0])
	assert.Equal(t, []string{"01/03/2026", "09:30:00", "prod-1", "Tornillos", "10"}, records[1])
	assert.Equal(t, []string{"05/03/2026", "14:00:00", "prod-1", "Tornillos", "5"}, records[2])
	assert.Equal(t, []string{"10/03/2026", "23:59:59", "prod-1", "Tornillos", "2"}, records[3])
}

func TestExportCSV_TipoInvalido_RetornaError(t *testing.T) {
	uc, _, _ := buildReport(t)

	_, err := uc.ExportCSV(context.Background(), "transferencia")
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}

func TestExportPDFyXLSX_RecibenLasMismasFilasAscendentes(t *testing.T) {
	uc, pdf, xlsx := buildReport(t)

	_, err := uc.ExportPDF(context.Background(), entity.MovementKindIn)
	require.NoError(t, err)
	_, err = uc.ExportXLSX(context.Background(), entity.MovementKindIn)
	require.NoError(t, err)

	want := []string{"m1", "m2", "m4"}
	assert.Equal(t, want, ids(pdf.rows))
	assert.Equal(t, want, ids(xlsx.rows))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Entradas", report.KindLabel(entity.MovementKindIn))
	assert.Equal(t, "Salidas", report.KindLabel(entity.MovementKindOut))
}
