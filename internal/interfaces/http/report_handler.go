package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-web/internal/application/dto"
	"github.com/tu-usuario/almacen-web/internal/application/report"
	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
)

// ReportHandler maneja los reportes de movimientos y sus exportaciones.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Menu muestra el menú de reportes.
func (h *ReportHandler) Menu(c *fiber.Ctx) error {
	return render(c, "reports/menu", fiber.Map{
		"Title": "Reportes",
	})
}

// View muestra el reporte de un tipo de movimiento, con filtro de fechas
// opcional. Atiende GET (sin filtro) y POST (formulario de filtro).
func (h *ReportHandler) View(c *fiber.Ctx) error {
	kind := c.Params("kind")

	var filter dto.ReportFilterForm
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(&filter); err != nil {
			SetFlash(c, FlashDanger, "Datos inválidos.")
			return c.Redirect("/reports/"+kind, fiber.StatusFound)
		}
	}

	result, err := h.uc.Movements(c.Context(), kind, filter.StartDate, filter.EndDate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidKind) {
			return fiber.ErrNotFound
		}
		return err
	}
	if result.Warning != "" {
		SetFlash(c, FlashWarning, result.Warning)
	}
	return render(c, "reports/view", fiber.Map{
		"Title":     "Reporte de " + report.KindLabel(kind),
		"Kind":      kind,
		"KindLabel": report.KindLabel(kind),
		"Rows":      result.Rows,
		"StartDate": filter.StartDate,
		"EndDate":   filter.EndDate,
	})
}

// Export descarga la exportación completa de un tipo de movimiento en el
// formato pedido (csv, xlsx o pdf).
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	kind := c.Params("kind")
	format := c.Params("format")

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		payload, err = h.uc.ExportCSV(c.Context(), kind)
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		payload, err = h.uc.ExportXLSX(c.Context(), kind)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		payload, err = h.uc.ExportPDF(c.Context(), kind)
		contentType = "application/pdf"
	default:
		return fiber.ErrNotFound
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidKind) {
			return fiber.ErrNotFound
		}
		return err
	}

	filename := fmt.Sprintf("reporte_%s.%s", exportSlug(kind), format)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(payload)
}

func exportSlug(kind string) string {
	if kind == entity.MovementKindIn {
		return "entradas"
	}
	return "salidas"
}
