package repository

import "github.com/tu-usuario/almacen-web/internal/domain/entity"

// ProductRepository puerto de persistencia de productos.
// Los métodos Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateQuantity(id string, quantity int) error
	UpdateName(id string, name string) error
	Delete(id string) error
	// ListByName lista todos los productos ordenados por nombre.
	ListByName() ([]*entity.Product, error)
	// ListByCreation lista todos los productos en orden de creación.
	ListByCreation() ([]*entity.Product, error)
}
