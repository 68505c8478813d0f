package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-web/internal/application/audit"
)

// HistoryHandler muestra el historial de ediciones y eliminaciones.
type HistoryHandler struct {
	uc *audit.UseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *audit.UseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// Index lista el historial completo, del más reciente al más antiguo.
func (h *HistoryHandler) Index(c *fiber.Ctx) error {
	entries, err := h.uc.ListHistory(c.Context())
	if err != nil {
		return err
	}
	return render(c, "history/index", fiber.Map{
		"Title":   "Historial de ediciones",
		"Entries": entries,
	})
}
