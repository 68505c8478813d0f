package ledger

import (
	"context"

	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos y para la auditoría: o todo se confirma o todo se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		historyRepo repository.EditHistoryRepository,
	) error) error
}
