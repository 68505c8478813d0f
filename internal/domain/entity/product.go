package entity

import "time"

// Product representa un artículo del inventario. Quantity nunca es negativa y
// solo se muta a través del motor de movimientos (cada cambio deja un Movement).
type Product struct {
	ID        string
	Name      string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
