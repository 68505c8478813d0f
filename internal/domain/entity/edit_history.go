package entity

import "time"

// Campos auditados en edit_history.
const (
	HistoryFieldName     = "name"
	HistoryFieldDeletion = "deletion"
)

// DeletionNewValue valor registrado como "nuevo" en una entrada de borrado.
const DeletionNewValue = "-"

// EditHistoryEntry registra una edición de nombre o un borrado de producto.
// Append-only: nunca se actualiza ni se borra. ProductID es un valor plano,
// sin FK, para que el historial sobreviva al borrado del producto.
type EditHistoryEntry struct {
	ID                string
	ProductID         string
	UserID            string
	FieldChanged      string // name, deletion
	ProductNameAtTime string
	OldValue          string
	NewValue          string
	CreatedAt         time.Time
}

// EditHistoryWithUser entrada de historial unida con la identidad del autor,
// para el listado en pantalla.
type EditHistoryWithUser struct {
	EditHistoryEntry
	Username string
}
