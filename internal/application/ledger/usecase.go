package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
)

// UseCase es el motor de movimientos de stock: aplica entradas y salidas de
// forma transaccional con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// También expone las lecturas de catálogo que consumen las vistas.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewUseCase construye el motor de movimientos.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo}
}

// GetProduct obtiene un producto por ID; (nil, nil) si no existe.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, nil
	}
	return uc.productRepo.GetByID(id)
}

// ListInventory lista el inventario en orden de creación (vista de inventario).
func (uc *UseCase) ListInventory(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListByCreation()
}

// ListCatalog lista los productos por nombre (dashboard y selects).
func (uc *UseCase) ListCatalog(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListByName()
}

// MovementInput entrada para aplicar un movimiento de stock.
type MovementInput struct {
	ProductID string
	Kind      string // in, out
	Quantity  int
}

// ApplyMovement valida la entrada, bloquea la fila del producto, aplica la
// entrada o salida y persiste producto y movimiento en una sola transacción.
// Una salida mayor que el stock actual falla con ErrInsufficientStock y no
// muta nada. Devuelve el producto ya actualizado.
func (uc *UseCase) ApplyMovement(ctx context.Context, input MovementInput) (*entity.Product, error) {
	if !entity.ValidMovementKind(input.Kind) {
		return nil, domain.ErrInvalidKind
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if input.ProductID == "" {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	var updated *entity.Product

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		_ repository.EditHistoryRepository,
	) error {
		// Bloquea la fila del producto para evitar condiciones de carrera
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		switch input.Kind {
		case entity.MovementKindIn:
			product.Quantity += input.Quantity
		case entity.MovementKindOut:
			if product.Quantity < input.Quantity {
				return domain.ErrInsufficientStock
			}
			product.Quantity -= input.Quantity
		}

		if err := productRepo.UpdateQuantity(product.ID, product.Quantity); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Kind:      input.Kind,
			Quantity:  input.Quantity,
			CreatedAt: now,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		product.UpdatedAt = now
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CreateProductInput entrada para registrar un producto nuevo.
type CreateProductInput struct {
	Name       string
	InitialQty int
}

// CreateProduct registra un producto. Si la cantidad inicial es mayor que cero
// se inserta el movimiento de entrada inicial en la misma transacción.
func (uc *UseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.InitialQty < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Quantity:  input.InitialQty,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		_ repository.EditHistoryRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if input.InitialQty == 0 {
			return nil
		}
		return movementRepo.Create(&entity.Movement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Kind:      entity.MovementKindIn,
			Quantity:  input.InitialQty,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
