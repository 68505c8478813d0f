package repository

import "github.com/tu-usuario/almacen-web/internal/domain/entity"

// EditHistoryRepository puerto del registro de auditoría. Append-only: no hay
// Update ni Delete.
type EditHistoryRepository interface {
	Create(entry *entity.EditHistoryEntry) error
	// ListWithUser lista todo el historial en orden cronológico inverso,
	// cada entrada unida con el username del autor.
	ListWithUser() ([]*entity.EditHistoryWithUser, error)
}
