package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, kind, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Kind, movement.Quantity, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByKind lista movimientos de un tipo unidos con el nombre del producto,
// con rango de fechas opcional: from inclusivo, to exclusivo.
func (r *MovementRepo) ListByKind(kind string, from, to *time.Time, asc bool) ([]*entity.MovementReportRow, error) {
	query := `
		SELECT m.id, m.product_id, m.kind, m.quantity, m.created_at, p.name
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.kind = $1`
	args := []any{kind}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND m.created_at < $%d", pos)
		args = append(args, *to)
		pos++
	}
	if asc {
		query += " ORDER BY m.created_at ASC"
	} else {
		query += " ORDER BY m.created_at DESC"
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by kind: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementReportRow
	for rows.Next() {
		var m entity.MovementReportRow
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.CreatedAt, &m.ProductName); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByProduct lista los movimientos de un producto en orden de inserción.
func (r *MovementRepo) ListByProduct(productID string) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, kind, quantity, created_at
		FROM movements WHERE product_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina todos los movimientos de un producto.
func (r *MovementRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete movements by product: %w", err)
	}
	return nil
}
