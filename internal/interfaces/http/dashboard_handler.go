package http

import (
	"encoding/json"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-web/internal/application/ledger"
)

// DashboardHandler muestra el panel con los gráficos de stock.
type DashboardHandler struct {
	ledger *ledger.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(ledgerUC *ledger.UseCase) *DashboardHandler {
	return &DashboardHandler{ledger: ledgerUC}
}

// Index lista nombres y cantidades ordenados por nombre y los serializa para
// los gráficos del cliente.
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	products, err := h.ledger.ListCatalog(c.Context())
	if err != nil {
		return err
	}
	labels := make([]string, 0, len(products))
	data := make([]int, 0, len(products))
	for _, p := range products {
		labels = append(labels, p.Name)
		data = append(data, p.Quantity)
	}
	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return err
	}
	// template.JS evita que el JSON se escape como string dentro del <script>.
	return render(c, "dashboard", fiber.Map{
		"Title":      "Dashboard",
		"LabelsJSON": template.JS(labelsJSON),
		"DataJSON":   template.JS(dataJSON),
	})
}
