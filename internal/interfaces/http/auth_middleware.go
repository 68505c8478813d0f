package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-web/pkg/jwt"
)

// Locals keys para UserID y Username en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// SessionMiddleware valida el token de sesión de la cookie y expone UserID y
// Username en c.Locals. Sin sesión válida, la navegación normal se redirige a
// /login; las peticiones de fragmento reciben 401 con HX-Redirect para que el
// cliente recargue hacia el login.
func SessionMiddleware(secret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return redirectToLogin(c)
		}
		userID, username, err := jwt.Parse(secret, token)
		if err != nil {
			return redirectToLogin(c)
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

func redirectToLogin(c *fiber.Ctx) error {
	if IsFragment(c) {
		c.Set("HX-Redirect", "/login")
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// GetUserID devuelve el UserID del contexto (después del middleware de sesión).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUsername devuelve el Username del contexto (después del middleware de sesión).
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// RedirectIfAuthenticated lleva al dashboard a quien ya tiene sesión válida
// (para /login y /register).
func RedirectIfAuthenticated(secret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token != "" {
			if _, _, err := jwt.Parse(secret, token); err == nil {
				return c.Redirect("/dashboard", fiber.StatusFound)
			}
		}
		return c.Next()
	}
}
