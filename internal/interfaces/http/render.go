package http

import "github.com/gofiber/fiber/v2"

// render dibuja una página completa dentro del layout, inyectando el flash
// pendiente y la identidad de la sesión.
func render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["Flash"] = PopFlash(c)
	bind["Username"] = GetUsername(c)
	return c.Render(name, bind, "layouts/main")
}

// renderPublic dibuja páginas sin sesión (login, registro).
func renderPublic(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["Flash"] = PopFlash(c)
	return c.Render(name, bind, "layouts/main")
}
