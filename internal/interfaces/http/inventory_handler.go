package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-web/internal/application/audit"
	"github.com/tu-usuario/almacen-web/internal/application/dto"
	"github.com/tu-usuario/almacen-web/internal/application/ledger"
	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
)

// InventoryHandler maneja inventario, movimientos y ciclo de vida de productos.
// Cada mutación soporta dos modos de respuesta según el marcador HX-Request:
// redirect de página completa o fragmento de una sola fila de la tabla.
type InventoryHandler struct {
	ledger *ledger.UseCase
	audit  *audit.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledgerUC *ledger.UseCase, auditUC *audit.UseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledgerUC, audit: auditUC}
}

// Index muestra la tabla de inventario.
func (h *InventoryHandler) Index(c *fiber.Ctx) error {
	products, err := h.ledger.ListInventory(c.Context())
	if err != nil {
		return err
	}
	return render(c, "inventory/index", fiber.Map{
		"Title":    "Inventario",
		"Products": products,
	})
}

// NewProductPage muestra el formulario de alta de producto.
func (h *InventoryHandler) NewProductPage(c *fiber.Ctx) error {
	return render(c, "inventory/new", fiber.Map{"Title": "Agregar producto"})
}

// CreateProduct registra un producto con su cantidad inicial; si es mayor que
// cero se graba el movimiento de entrada inicial en la misma transacción.
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.NewProductForm
	if err := c.BodyParser(&in); err != nil {
		SetFlash(c, FlashDanger, "Datos inválidos.")
		return c.Redirect("/products/new", fiber.StatusFound)
	}
	qty, err := strconv.Atoi(in.InitialQty)
	if err != nil || qty < 0 {
		SetFlash(c, FlashDanger, "La cantidad inicial debe ser un entero no negativo.")
		return c.Redirect("/products/new", fiber.StatusFound)
	}
	product, err := h.ledger.CreateProduct(c.Context(), ledger.CreateProductInput{
		Name:       in.Name,
		InitialQty: qty,
	})
	if err != nil {
		SetFlash(c, FlashDanger, flashMessageFor(err))
		return c.Redirect("/products/new", fiber.StatusFound)
	}
	SetFlash(c, FlashSuccess, fmt.Sprintf("Producto '%s' agregado.", product.Name))
	return c.Redirect("/inventory", fiber.StatusFound)
}

// ApplyMovement registra una entrada o salida de stock.
// En modo fragmento devuelve solo la fila actualizada; un fallo devuelve la
// fila con el estado previo, status no-2xx y el marcador showFlash.
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.MovementForm
	if err := c.BodyParser(&in); err != nil {
		return h.movementFailure(c, "", domain.ErrInvalidInput)
	}
	qty, convErr := strconv.Atoi(in.Quantity)
	if convErr != nil {
		return h.movementFailure(c, in.Code, domain.ErrInvalidQuantity)
	}
	product, err := h.ledger.ApplyMovement(c.Context(), ledger.MovementInput{
		ProductID: in.Code,
		Kind:      in.Kind,
		Quantity:  qty,
	})
	if err != nil {
		return h.movementFailure(c, in.Code, err)
	}

	SetFlash(c, FlashSuccess, fmt.Sprintf(
		"Movimiento de %s registrado para %s (%d unidades).",
		kindLabel(in.Kind), product.Name, qty,
	))
	if IsFragment(c) {
		return c.Render("partials/product_row", product)
	}
	return c.Redirect("/inventory", fiber.StatusFound)
}

func kindLabel(kind string) string {
	if kind == entity.MovementKindIn {
		return "entrada"
	}
	return "salida"
}

// movementFailure arma la respuesta de fallo de un movimiento. La transacción
// ya fue revertida; en modo fragmento la fila devuelta refleja el estado
// previo al intento.
func (h *InventoryHandler) movementFailure(c *fiber.Ctx, productID string, err error) error {
	msg := flashMessageFor(err)
	SetFlash(c, FlashDanger, msg)
	if !IsFragment(c) {
		return c.Redirect("/inventory", fiber.StatusFound)
	}

	TriggerShowFlash(c, FlashDanger, msg)
	current, getErr := h.ledger.GetProduct(c.Context(), productID)
	if getErr != nil || current == nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrNotFound) || current == nil {
			status = fiber.StatusNotFound
		}
		c.Type("html", "utf-8")
		return c.Status(status).SendString(emptyRow(productID))
	}
	return c.Status(fiber.StatusUnprocessableEntity).Render("partials/product_row", current)
}

// emptyRow placeholder de fila para productos inexistentes en modo fragmento.
func emptyRow(productID string) string {
	if productID == "" {
		productID = "0"
	}
	return fmt.Sprintf(`<tr id="product-row-%s"></tr>`, productID)
}

// RowTarget responde con el header HX-Retarget apuntando a la fila del código
// indicado, para que el formulario de movimiento reemplace la fila correcta.
func (h *InventoryHandler) RowTarget(c *fiber.Ctx) error {
	var in dto.MovementForm
	code := "0"
	if err := c.BodyParser(&in); err == nil && in.Code != "" {
		code = in.Code
	}
	c.Set("HX-Retarget", "#product-row-"+code)
	return c.SendStatus(fiber.StatusOK)
}

// Rename edita el nombre de un producto dejando historial. Renombrar al mismo
// nombre es un no-op informativo. Siempre responde con página completa.
func (h *InventoryHandler) Rename(c *fiber.Ctx) error {
	var in dto.RenameForm
	if err := c.BodyParser(&in); err != nil {
		SetFlash(c, FlashDanger, "Error al procesar la edición.")
		return c.Redirect("/inventory", fiber.StatusFound)
	}
	result, err := h.audit.RenameProduct(c.Context(), in.Code, GetUserID(c), in.NewName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			SetFlash(c, FlashDanger, "Producto no encontrado.")
		case errors.Is(err, domain.ErrInvalidInput):
			SetFlash(c, FlashDanger, "El nuevo nombre no puede estar vacío.")
		default:
			SetFlash(c, FlashDanger, "Error al procesar la edición.")
		}
		return c.Redirect("/inventory", fiber.StatusFound)
	}
	if !result.Renamed {
		SetFlash(c, FlashInfo, "El nuevo nombre es igual al nombre actual.")
	} else {
		SetFlash(c, FlashSuccess, "Nombre del producto actualizado con éxito.")
	}
	return c.Redirect("/inventory", fiber.StatusFound)
}

// Delete elimina un producto: registra la entrada de borrado en el historial y
// elimina sus movimientos en cascada, todo en una transacción. En modo
// fragmento una respuesta vacía 200 indica al cliente que quite la fila.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	productID := c.Params("id")
	name, err := h.audit.DeleteProduct(c.Context(), productID, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			SetFlash(c, FlashWarning, "Producto no encontrado.")
			if IsFragment(c) {
				TriggerShowFlash(c, FlashWarning, "Producto no encontrado.")
				return c.SendStatus(fiber.StatusNotFound)
			}
			return c.Redirect("/inventory", fiber.StatusFound)
		}
		SetFlash(c, FlashDanger, "Error al intentar eliminar el producto.")
		if IsFragment(c) {
			TriggerShowFlash(c, FlashDanger, "Error al intentar eliminar el producto.")
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.Redirect("/inventory", fiber.StatusFound)
	}

	msg := fmt.Sprintf("Producto '%s' eliminado con éxito.", name)
	SetFlash(c, FlashSuccess, msg)
	if IsFragment(c) {
		TriggerShowFlash(c, FlashSuccess, msg)
		return c.SendStatus(fiber.StatusOK)
	}
	return c.Redirect("/inventory", fiber.StatusFound)
}

// flashMessageFor traduce errores de dominio a mensajes para el usuario.
func flashMessageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Producto no encontrado."
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "La cantidad debe ser un entero mayor que cero."
	case errors.Is(err, domain.ErrInvalidKind):
		return "Tipo de movimiento inválido."
	case errors.Is(err, domain.ErrInsufficientStock):
		return "Stock insuficiente para el movimiento solicitado."
	case errors.Is(err, domain.ErrInvalidInput):
		return "Datos inválidos."
	default:
		return "Error al procesar la operación."
	}
}
