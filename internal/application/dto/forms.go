// Package dto define los structs de formularios HTTP; el parseo numérico y la
// validación semántica ocurren en handlers y casos de uso.
package dto

// CredentialsForm formulario de login y registro.
type CredentialsForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// NewProductForm alta de producto.
type NewProductForm struct {
	Name       string `form:"name"`
	InitialQty string `form:"initial_quantity"`
}

// MovementForm registro de movimiento de stock.
type MovementForm struct {
	Code     string `form:"code"` // ID del producto
	Quantity string `form:"quantity"`
	Kind     string `form:"kind"` // in, out
}

// RenameForm edición de nombre de producto.
type RenameForm struct {
	Code    string `form:"code"`
	NewName string `form:"new_name"`
}

// OrderItemForm alta de ítem en la lista de pedidos.
type OrderItemForm struct {
	ProductID string `form:"product_id"`
	Quantity  string `form:"quantity"`
}

// ReportFilterForm filtro de fechas del reporte ([inicio, fin], fin inclusivo).
type ReportFilterForm struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
