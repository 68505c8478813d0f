package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("la cantidad debe ser un entero mayor que cero")
	ErrInvalidKind         = errors.New("tipo de movimiento inválido")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrDuplicateUsername   = errors.New("el nombre de usuario ya existe")
	ErrInvalidCredentials  = errors.New("usuario o contraseña inválidos")
	ErrUnauthenticated     = errors.New("no autenticado")
	ErrInvalidHistoryEntry = errors.New("entrada de historial incompleta")
)
