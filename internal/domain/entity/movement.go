package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementKindIn  = "in"  // entrada
	MovementKindOut = "out" // salida
)

// ValidMovementKind indica si kind es un tipo de movimiento conocido.
func ValidMovementKind(kind string) bool {
	return kind == MovementKindIn || kind == MovementKindOut
}

// Movement representa un movimiento de stock (entrada o salida). Inmutable una
// vez insertado; solo desaparece por el borrado en cascada de su producto.
type Movement struct {
	ID        string
	ProductID string
	Kind      string // in, out
	Quantity  int    // siempre > 0; el signo lo da Kind
	CreatedAt time.Time
}

// MovementReportRow fila de reporte: movimiento más el nombre actual del producto.
type MovementReportRow struct {
	Movement
	ProductName string
}
