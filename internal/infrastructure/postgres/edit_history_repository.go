package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

var _ repository.EditHistoryRepository = (*EditHistoryRepo)(nil)

// EditHistoryRepo implementación del registro de auditoría sobre PostgreSQL (usable con pool o tx).
type EditHistoryRepo struct {
	q Querier
}

// NewEditHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEditHistoryRepository(q Querier) *EditHistoryRepo {
	return &EditHistoryRepo{q: q}
}

// Create inserta una entrada de historial. Nunca hay Update ni Delete.
func (r *EditHistoryRepo) Create(entry *entity.EditHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO edit_history (id, product_id, user_id, field_changed, product_name_at_time, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.UserID, entry.FieldChanged,
		entry.ProductNameAtTime, entry.OldValue, entry.NewValue, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create history entry: %w", err)
	}
	return nil
}

// ListWithUser lista el historial completo en orden cronológico inverso, unido
// con el username del autor.
func (r *EditHistoryRepo) ListWithUser() ([]*entity.EditHistoryWithUser, error) {
	query := `
		SELECT h.id, h.product_id, h.user_id, h.field_changed, h.product_name_at_time,
		       h.old_value, h.new_value, h.created_at, u.username
		FROM edit_history h
		JOIN users u ON u.id = h.user_id
		ORDER BY h.created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.EditHistoryWithUser
	for rows.Next() {
		var e entity.EditHistoryWithUser
		if err := rows.Scan(&e.ID, &e.ProductID, &e.UserID, &e.FieldChanged,
			&e.ProductNameAtTime, &e.OldValue, &e.NewValue, &e.CreatedAt, &e.Username); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
