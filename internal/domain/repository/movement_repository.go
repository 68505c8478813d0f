package repository

import (
	"time"

	"github.com/tu-usuario/almacen-web/internal/domain/entity"
)

// MovementRepository puerto de persistencia de movimientos de stock.
// Los movimientos solo se insertan; nunca se actualizan.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListByKind lista movimientos de un tipo con rango de fechas opcional
	// ([from, to) cuando ambos están presentes) unidos con el nombre del
	// producto. asc controla el orden por timestamp.
	ListByKind(kind string, from, to *time.Time, asc bool) ([]*entity.MovementReportRow, error)
	// ListByProduct lista los movimientos de un producto en orden de inserción.
	ListByProduct(productID string) ([]*entity.Movement, error)
	// DeleteByProduct elimina todos los movimientos de un producto (cascada
	// explícita al borrar el producto, dentro de la misma transacción).
	DeleteByProduct(productID string) error
}
