package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-web/internal/application/apptest"
	"github.com/tu-usuario/almacen-web/internal/application/audit"
	"github.com/tu-usuario/almacen-web/internal/application/ledger"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	apphttp "github.com/tu-usuario/almacen-web/internal/interfaces/http"
)

// buildInventoryApp monta las rutas de mutación del inventario con una sesión
// simulada en locals, sin motor de plantillas. Solo cubre los caminos que no
// renderizan vistas.
func buildInventoryApp(t *testing.T) (*fiber.App, *ledger.UseCase, *apptest.MemoryStore) {
	t.Helper()
	store := apptest.NewMemoryStore()
	require.NoError(t, store.UserRepo().Create(&entity.User{
		ID:        testUserID,
		Username:  testUsername,
		CreatedAt: time.Now().UTC(),
	}))
	runner := &apptest.TxRunner{Store: store}
	ledgerUC := ledger.NewUseCase(runner, store.ProductRepo())
	auditUC := audit.NewUseCase(runner, store.HistoryRepo(), store.UserRepo())
	handler := apphttp.NewInventoryHandler(ledgerUC, auditUC)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, testUserID)
		c.Locals(apphttp.LocalUsername, testUsername)
		return c.Next()
	})
	app.Post("/movements", handler.ApplyMovement)
	app.Post("/movements/target", handler.RowTarget)
	app.Post("/products/:id/delete", handler.Delete)
	return app, ledgerUC, store
}

// postForm lanza un POST application/x-www-form-urlencoded, opcionalmente como
// petición de fragmento.
func postForm(t *testing.T, app *fiber.App, path string, form url.Values, fragment bool) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if fragment {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RowTarget
// ──────────────────────────────────────────────────────────────────────────────

func TestRowTarget_ApuntaALaFilaDelCodigo(t *testing.T) {
	app, _, _ := buildInventoryApp(t)

	resp := postForm(t, app, "/movements/target", url.Values{"code": {"abc-123"}}, true)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "#product-row-abc-123", resp.Header.Get("HX-Retarget"))
}

func TestRowTarget_SinCodigo_UsaFilaCero(t *testing.T) {
	app, _, _ := buildInventoryApp(t)

	resp := postForm(t, app, "/movements/target", url.Values{}, true)
	defer resp.Body.Close()

	assert.Equal(t, "#product-row-0", resp.Header.Get("HX-Retarget"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ApplyMovement — modos de respuesta
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_FalloSinFragmento_RedirigeAlInventario(t *testing.T) {
	app, _, _ := buildInventoryApp(t)

	form := url.Values{"code": {"no-existe"}, "quantity": {"1"}, "kind": {"in"}}
	resp := postForm(t, app, "/movements", form, false)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/inventory", resp.Header.Get("Location"))
}

func TestApplyMovement_ProductoInexistenteEnFragmento_Retorna404ConFilaVacia(t *testing.T) {
	app, _, _ := buildInventoryApp(t)

	form := url.Values{"code": {"no-existe"}, "quantity": {"1"}, "kind": {"in"}}
	resp := postForm(t, app, "/movements", form, true)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("HX-Trigger"), "el fallo debe disparar showFlash")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `<tr id="product-row-no-existe"></tr>`, string(body),
		"la fila placeholder conserva el id pedido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Delete — modo fragmento
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_EnFragmento_RespuestaVaciaYFlash(t *testing.T) {
	app, ledgerUC, store := buildInventoryApp(t)
	product, err := ledgerUC.CreateProduct(context.Background(), ledger.CreateProductInput{
		Name:       "Cajas",
		InitialQty: 10,
	})
	require.NoError(t, err)

	resp := postForm(t, app, "/products/"+product.ID+"/delete", url.Values{}, true)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("HX-Trigger"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, string(body), "la respuesta vacía indica al cliente quitar la fila")

	// El borrado quedó auditado y el producto ya no existe.
	current, err := ledgerUC.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Nil(t, current)
	entries := store.HistoryEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, entity.HistoryFieldDeletion, entries[0].FieldChanged)
}

func TestDelete_ProductoInexistenteEnFragmento_Retorna404(t *testing.T) {
	app, _, _ := buildInventoryApp(t)

	resp := postForm(t, app, "/products/no-existe/delete", url.Values{}, true)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("HX-Trigger"))
}

func TestDelete_SinFragmento_RedirigeAlInventario(t *testing.T) {
	app, ledgerUC, _ := buildInventoryApp(t)
	product, err := ledgerUC.CreateProduct(context.Background(), ledger.CreateProductInput{
		Name:       "Cajas",
		InitialQty: 0,
	})
	require.NoError(t, err)

	resp := postForm(t, app, "/products/"+product.ID+"/delete", url.Values{}, false)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/inventory", resp.Header.Get("Location"))
}
