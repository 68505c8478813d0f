package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/almacen-web/internal/interfaces/http"
)

// buildFlashApp expone rutas para sembrar y consumir el mensaje flash.
func buildFlashApp() *fiber.App {
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		apphttp.SetFlash(c, apphttp.FlashSuccess, "Producto 'Tornillos' agregado.")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/pop", func(c *fiber.Ctx) error {
		f := apphttp.PopFlash(c)
		if f == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(f)
	})
	app.Get("/trigger", func(c *fiber.Ctx) error {
		apphttp.TriggerShowFlash(c, apphttp.FlashDanger, "Stock insuficiente para el movimiento solicitado.")
		return c.SendStatus(fiber.StatusUnprocessableEntity)
	})
	return app
}

// flashCookieFrom extrae la cookie del flash de una respuesta.
func flashCookieFrom(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == "almacen_flash" {
			return ck
		}
	}
	return nil
}

func TestFlash_SetYPop_ConservaNivelYMensaje(t *testing.T) {
	app := buildFlashApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	cookie := flashCookieFrom(t, resp)
	require.NotNil(t, cookie, "SetFlash debe dejar la cookie del flash")

	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	req.AddCookie(cookie)
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()

	require.Equal(t, http.StatusOK, resp2.StatusCode)
	var got apphttp.Flash
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&got))
	assert.Equal(t, apphttp.FlashSuccess, got.Level)
	assert.Equal(t, "Producto 'Tornillos' agregado.", got.Message)

	// PopFlash expira la cookie para que el mensaje no se repita.
	expired := flashCookieFrom(t, resp2)
	require.NotNil(t, expired)
	assert.Empty(t, expired.Value)
}

func TestFlash_PopSinCookie_RetornaNil(t *testing.T) {
	app := buildFlashApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/pop", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestFlash_CookieCorrupta_RetornaNil(t *testing.T) {
	app := buildFlashApp()

	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	req.AddCookie(&http.Cookie{Name: "almacen_flash", Value: "no-es-base64-valido!!!"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestTriggerShowFlash_EmiteHeaderHXTrigger(t *testing.T) {
	app := buildFlashApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trigger", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	header := resp.Header.Get("HX-Trigger")
	require.NotEmpty(t, header)

	var payload map[string]apphttp.Flash
	require.NoError(t, json.Unmarshal([]byte(header), &payload))
	flash, ok := payload["showFlash"]
	require.True(t, ok, "el evento debe llamarse showFlash")
	assert.Equal(t, apphttp.FlashDanger, flash.Level)
	assert.Equal(t, "Stock insuficiente para el movimiento solicitado.", flash.Message)
}
