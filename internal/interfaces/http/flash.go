package http

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

// flashCookie nombre de la cookie que transporta el mensaje flash hasta el
// siguiente render de página completa.
const flashCookie = "almacen_flash"

// Niveles de mensaje flash.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
	FlashWarning = "warning"
)

// Flash mensaje transitorio para el usuario: {nivel, mensaje}.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SetFlash deja el mensaje en una cookie de vida corta; se consume en el
// siguiente render de página completa.
func SetFlash(c *fiber.Ctx, level, message string) {
	payload, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// PopFlash lee y borra el mensaje flash pendiente. Devuelve nil si no hay.
func PopFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:    flashCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Now().Add(-time.Hour),
	})
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil
	}
	return &f
}

// TriggerShowFlash instruye al cliente, vía header HX-Trigger, a mostrar el
// mensaje sin recargar la página (modo fragmento).
func TriggerShowFlash(c *fiber.Ctx, level, message string) {
	payload, err := json.Marshal(map[string]Flash{
		"showFlash": {Level: level, Message: message},
	})
	if err != nil {
		return
	}
	c.Set("HX-Trigger", string(payload))
}

// IsFragment indica si el cliente pidió un fragmento de fila (marcador
// HX-Request) en vez de una página completa.
func IsFragment(c *fiber.Ctx) bool {
	return c.Get("HX-Request") != ""
}
