package http

import (
	"errors"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-web/internal/application/dto"
	"github.com/tu-usuario/almacen-web/internal/application/ledger"
	"github.com/tu-usuario/almacen-web/internal/application/orderlist"
	"github.com/tu-usuario/almacen-web/internal/domain"
)

// OrderListHandler maneja la lista de pedidos efímera.
type OrderListHandler struct {
	list   *orderlist.Service
	ledger *ledger.UseCase
}

// NewOrderListHandler construye el handler.
func NewOrderListHandler(list *orderlist.Service, ledgerUC *ledger.UseCase) *OrderListHandler {
	return &OrderListHandler{list: list, ledger: ledgerUC}
}

// OrderItemView ítem de la lista unido con los datos vivos del producto.
type OrderItemView struct {
	ID        string
	Name      string
	Requested int
}

// Index muestra la lista de pedidos y el catálogo para agregar ítems.
// Los ítems cuyo producto ya no existe se omiten del render.
func (h *OrderListHandler) Index(c *fiber.Ctx) error {
	snapshot := h.list.Snapshot()
	items := make([]OrderItemView, 0, len(snapshot))
	for productID, qty := range snapshot {
		product, err := h.ledger.GetProduct(c.Context(), productID)
		if err != nil {
			return err
		}
		if product == nil {
			continue
		}
		items = append(items, OrderItemView{ID: product.ID, Name: product.Name, Requested: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	catalog, err := h.ledger.ListCatalog(c.Context())
	if err != nil {
		return err
	}
	return render(c, "orders/list", fiber.Map{
		"Title":    "Lista de pedidos",
		"Items":    items,
		"Products": catalog,
	})
}

// Add acumula una cantidad pedida para un producto.
func (h *OrderListHandler) Add(c *fiber.Ctx) error {
	var in dto.OrderItemForm
	if err := c.BodyParser(&in); err != nil {
		SetFlash(c, FlashDanger, "Datos inválidos.")
		return c.Redirect("/orders", fiber.StatusFound)
	}
	qty, convErr := strconv.Atoi(in.Quantity)
	if convErr != nil {
		SetFlash(c, FlashDanger, "La cantidad debe ser un número entero positivo.")
		return c.Redirect("/orders", fiber.StatusFound)
	}
	if err := h.list.Add(in.ProductID, qty); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			SetFlash(c, FlashDanger, "La cantidad debe ser un número entero positivo.")
		case errors.Is(err, domain.ErrNotFound):
			SetFlash(c, FlashDanger, "Producto no encontrado.")
		default:
			SetFlash(c, FlashDanger, "Error al agregar el ítem.")
		}
		return c.Redirect("/orders", fiber.StatusFound)
	}
	SetFlash(c, FlashSuccess, "Ítem agregado a la lista.")
	return c.Redirect("/orders", fiber.StatusFound)
}

// Clear vacía la lista de pedidos.
func (h *OrderListHandler) Clear(c *fiber.Ctx) error {
	h.list.Clear()
	SetFlash(c, FlashSuccess, "Lista de pedidos vaciada con éxito.")
	return c.Redirect("/orders", fiber.StatusFound)
}
