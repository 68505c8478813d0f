package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Quantity, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.get(id, true)
}

func (r *ProductRepo) get(id string, forUpdate bool) (*entity.Product, error) {
	query := `
		SELECT id, name, quantity, created_at, updated_at
		FROM products WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// UpdateQuantity actualiza solo la cantidad (usado por el motor de movimientos).
func (r *ProductRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// UpdateName actualiza solo el nombre (usado por el motor de auditoría).
func (r *ProductRepo) UpdateName(id string, name string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET name = $2, updated_at = now() WHERE id = $1`,
		id, name,
	)
	if err != nil {
		return fmt.Errorf("update product name: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ListByName lista todos los productos ordenados por nombre.
func (r *ProductRepo) ListByName() ([]*entity.Product, error) {
	return r.list("name")
}

// ListByCreation lista todos los productos en orden de creación.
func (r *ProductRepo) ListByCreation() ([]*entity.Product, error) {
	return r.list("created_at")
}

func (r *ProductRepo) list(orderBy string) ([]*entity.Product, error) {
	query := fmt.Sprintf(`
		SELECT id, name, quantity, created_at, updated_at
		FROM products ORDER BY %s`, orderBy)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
