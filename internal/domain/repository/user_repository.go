package repository

import "github.com/tu-usuario/almacen-web/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios.
// Los métodos Get* devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
