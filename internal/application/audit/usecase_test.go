package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-web/internal/application/apptest"
	"github.com/tu-usuario/almacen-web/internal/application/audit"
	"github.com/tu-usuario/almacen-web/internal/application/ledger"
	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

// buildAudit construye el motor de auditoría con un usuario de prueba ya
// registrado y devuelve también el motor de movimientos para sembrar productos.
func buildAudit(t *testing.T) (*audit.UseCase, *ledger.UseCase, *apptest.MemoryStore) {
	t.Helper()
	store := apptest.NewMemoryStore()
	require.NoError(t, store.UserRepo().Create(&entity.User{
		ID:        testUserID,
		Username:  "ana",
		CreatedAt: time.Now().UTC(),
	}))
	runner := &apptest.TxRunner{Store: store}
	auditUC := audit.NewUseCase(runner, store.HistoryRepo(), store.UserRepo())
	ledgerUC := ledger.NewUseCase(runner, store.ProductRepo())
	return auditUC, ledgerUC, store
}

func seedProduct(t *testing.T, ledgerUC *ledger.UseCase, name string, qty int) *entity.Product {
	t.Helper()
	product, err := ledgerUC.CreateProduct(context.Background(), ledger.CreateProductInput{
		Name:       name,
		InitialQty: qty,
	})
	require.NoError(t, err)
	return product
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de renombrado
// ──────────────────────────────────────────────────────────────────────────────

func TestRenameProduct_RegistraHistorialYActualizaNombre(t *testing.T) {
	auditUC, ledgerUC, store := buildAudit(t)
	product := seedProduct(t, ledgerUC, "Tornillos", 0)

	result, err := auditUC.RenameProduct(context.Background(), product.ID, testUserID, "Tornillos M6")
	require.NoError(t, err)
	assert.True(t, result.Renamed)
	assert.Equal(t, "Tornillos", result.OldName)
	assert.Equal(t, "Tornillos M6", result.NewName)

	current, err := ledgerUC.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tornillos M6", current.Name)

	entries := store.HistoryEntries()
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, entity.HistoryFieldName, entry.FieldChanged)
	assert.Equal(t, "Tornillos", entry.ProductNameAtTime, "debe guardarse el nombre vigente al momento")
	assert.Equal(t, "Tornillos", entry.OldValue)
	assert.Equal(t, "Tornillos M6", entry.NewValue)
	assert.Equal(t, testUserID, entry.UserID)
}

func TestRenameProduct_MismoNombre_NoOpSinHistorial(t *testing.T) {
	auditUC, ledgerUC, store := buildAudit(t)
	product := seedProduct(t, ledgerUC, "Tornillos", 0)

	result, err := auditUC.RenameProduct(context.Background(), product.ID, testUserID, "Tornillos")
	require.NoError(t, err)
	assert.False(t, result.Renamed, "renombrar al mismo nombre es un no-op")
	assert.Empty(t, store.HistoryEntries(), "un no-op no debe dejar historial")
}

func TestRenameProduct_NombreVacio_RetornaError(t *testing.T) {
	auditUC, ledgerUC, _ := buildAudit(t)
	product := seedProduct(t, ledgerUC, "Tornillos", 0)

	_, err := auditUC.RenameProduct(context.Background(), product.ID, testUserID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRenameProduct_ProductoInexistente_RetornaNotFound(t *testing.T) {
	auditUC, _, _ := buildAudit(t)

	_, err := auditUC.RenameProduct(context.Background(), "no-existe", testUserID, "Nuevo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRenameProduct_UsuarioInexistente_RetornaError(t *testing.T) {
	auditUC, ledgerUC, _ := buildAudit(t)
	product := seedProduct(t, ledgerUC, "Tornillos", 0)

	_, err := auditUC.RenameProduct(context.Background(), product.ID, "usuario-fantasma", "Nuevo")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = auditUC.RenameProduct(context.Background(), product.ID, "", "Nuevo")
	assert.ErrorIs(t, err, domain.ErrInvalidHistoryEntry)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_EliminaProductoYMovimientos(t *testing.T) {
	auditUC, ledgerUC, store := buildAudit(t)
	product := seedProduct(t, ledgerUC, "Cajas", 30)
	require.NotEmpty(t, store.Movements(), "el alta con stock deja el movimiento inicial")

	name, err := auditUC.DeleteProduct(context.Background(), product.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Cajas", name)

	current, err := ledgerUC.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Nil(t, current, "el producto debe desaparecer")
	assert.Empty(t, store.Movements(), "los movimientos deben borrarse en cascada")
}

func TestDeleteProduct_ElHistorialSobreviveAlBorrado(t *testing.T) {
	auditUC, ledgerUC, _ := buildAudit(t)
	product := seedProduct(t, ledgerUC, "Cajas", 0)

	_, err := auditUC.RenameProduct(context.Background(), product.ID, testUserID, "Cajas grandes")
	require.NoError(t, err)
	_, err = auditUC.DeleteProduct(context.Background(), product.ID, testUserID)
	require.NoError(t, err)

	entries, err := auditUC.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2, "la edición y el borrado quedan registrados tras eliminar el producto")

	// Orden cronológico inverso: primero el borrado.
	deletion := entries[0]
	assert.Equal(t, entity.HistoryFieldDeletion, deletion.FieldChanged)
	assert.Equal(t, "Cajas grandes", deletion.ProductNameAtTime)
	assert.Equal(t, entity.DeletionNewValue, deletion.NewValue)
	assert.Equal(t, "ana", deletion.Username)

	rename := entries[1]
	assert.Equal(t, entity.HistoryFieldName, rename.FieldChanged)
	assert.Equal(t, "Cajas", rename.OldValue)
	assert.Equal(t, "Cajas grandes", rename.NewValue)
}

func TestDeleteProduct_ProductoInexistente_RetornaNotFound(t *testing.T) {
	auditUC, _, _ := buildAudit(t)

	_, err := auditUC.DeleteProduct(context.Background(), "no-existe", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = auditUC.DeleteProduct(context.Background(), "", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
