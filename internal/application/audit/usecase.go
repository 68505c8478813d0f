package audit

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-web/internal/application/ledger"
	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

// UseCase es el motor de auditoría: cada edición de nombre y cada borrado de
// producto deja una entrada inmutable en edit_history, escrita en la misma
// transacción que la mutación.
type UseCase struct {
	txRunner    ledger.TxRunner
	historyRepo repository.EditHistoryRepository
	userRepo    repository.UserRepository
}

// NewUseCase construye el motor de auditoría.
func NewUseCase(txRunner ledger.TxRunner, historyRepo repository.EditHistoryRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{txRunner: txRunner, historyRepo: historyRepo, userRepo: userRepo}
}

// RenameResult resultado de un intento de renombrado.
type RenameResult struct {
	// Renamed es false cuando el nombre nuevo era igual al actual: no se
	// persiste nada ni se escribe historial (no-op informativo).
	Renamed bool
	OldName string
	NewName string
}

// RenameProduct cambia el nombre de un producto registrando la entrada de
// historial {name, viejo, nuevo} antes de persistir el nombre, en la misma
// transacción. Renombrar al mismo nombre es un no-op sin historial.
func (uc *UseCase) RenameProduct(ctx context.Context, productID, userID, newName string) (*RenameResult, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.requireUser(userID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var result RenameResult

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.MovementRepository,
		historyRepo repository.EditHistoryRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Name == newName {
			result = RenameResult{Renamed: false, OldName: product.Name, NewName: newName}
			return nil
		}
		entry := &entity.EditHistoryEntry{
			ID:                uuid.New().String(),
			ProductID:         product.ID,
			UserID:            userID,
			FieldChanged:      entity.HistoryFieldName,
			ProductNameAtTime: product.Name,
			OldValue:          product.Name,
			NewValue:          newName,
			CreatedAt:         now,
		}
		if err := historyRepo.Create(entry); err != nil {
			return err
		}
		if err := productRepo.UpdateName(product.ID, newName); err != nil {
			return err
		}
		result = RenameResult{Renamed: true, OldName: product.Name, NewName: newName}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteProduct registra la entrada de borrado, elimina los movimientos del
// producto y después la fila del producto, todo en una transacción. El
// historial no tiene FK al producto, así que sobrevive al borrado.
// Devuelve el nombre que tenía el producto.
func (uc *UseCase) DeleteProduct(ctx context.Context, productID, userID string) (string, error) {
	if productID == "" {
		return "", domain.ErrNotFound
	}
	if err := uc.requireUser(userID); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	var deletedName string

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		historyRepo repository.EditHistoryRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		entry := &entity.EditHistoryEntry{
			ID:                uuid.New().String(),
			ProductID:         product.ID,
			UserID:            userID,
			FieldChanged:      entity.HistoryFieldDeletion,
			ProductNameAtTime: product.Name,
			OldValue:          product.Name,
			NewValue:          entity.DeletionNewValue,
			CreatedAt:         now,
		}
		if err := historyRepo.Create(entry); err != nil {
			return err
		}
		// Cascada explícita: primero los movimientos, luego el producto.
		// El esquema también declara ON DELETE CASCADE.
		if err := movementRepo.DeleteByProduct(product.ID); err != nil {
			return err
		}
		if err := productRepo.Delete(product.ID); err != nil {
			return err
		}
		deletedName = product.Name
		return nil
	})
	if err != nil {
		return "", err
	}
	return deletedName, nil
}

// ListHistory devuelve el historial completo en orden cronológico inverso,
// cada entrada con el username del autor.
func (uc *UseCase) ListHistory(ctx context.Context) ([]*entity.EditHistoryWithUser, error) {
	return uc.historyRepo.ListWithUser()
}

// requireUser valida que el actor exista; cada entrada de historial referencia
// a un usuario real.
func (uc *UseCase) requireUser(userID string) error {
	if userID == "" {
		return domain.ErrInvalidHistoryEntry
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return nil
}
