package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-web/internal/application/auth"
	"github.com/tu-usuario/almacen-web/internal/application/dto"
	"github.com/tu-usuario/almacen-web/internal/domain"
)

// AuthHandler maneja registro, login y logout.
type AuthHandler struct {
	uc         *auth.UseCase
	cookieName string
	expMinutes int
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase, cookieName string, expMinutes int) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, expMinutes: expMinutes}
}

// LoginPage muestra el formulario de login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return renderPublic(c, "auth/login", fiber.Map{"Title": "Iniciar sesión"})
}

// Login procesa el formulario de login y deja el token de sesión en la cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.CredentialsForm
	if err := c.BodyParser(&in); err != nil {
		SetFlash(c, FlashDanger, "Datos inválidos.")
		return c.Redirect("/login", fiber.StatusFound)
	}
	token, err := h.uc.Login(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			SetFlash(c, FlashDanger, "Usuario o contraseña inválidos.")
			return c.Redirect("/login", fiber.StatusFound)
		}
		SetFlash(c, FlashDanger, "Error al iniciar sesión.")
		return c.Redirect("/login", fiber.StatusFound)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(h.expMinutes) * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/dashboard", fiber.StatusFound)
}

// RegisterPage muestra el formulario de registro.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return renderPublic(c, "auth/register", fiber.Map{"Title": "Registro"})
}

// Register procesa el registro de un usuario nuevo.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.CredentialsForm
	if err := c.BodyParser(&in); err != nil {
		SetFlash(c, FlashDanger, "Datos inválidos.")
		return c.Redirect("/register", fiber.StatusFound)
	}
	if _, err := h.uc.Register(in.Username, in.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			SetFlash(c, FlashDanger, "Este nombre de usuario ya existe.")
		case errors.Is(err, domain.ErrInvalidInput):
			SetFlash(c, FlashDanger, "Usuario y contraseña son obligatorios.")
		default:
			SetFlash(c, FlashDanger, "Error al registrar el usuario.")
		}
		return c.Redirect("/register", fiber.StatusFound)
	}
	SetFlash(c, FlashSuccess, "Registro realizado con éxito. Inicie sesión.")
	return c.Redirect("/login", fiber.StatusFound)
}

// Logout borra la cookie de sesión.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:    h.cookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Now().Add(-time.Hour),
	})
	return c.Redirect("/login", fiber.StatusFound)
}
