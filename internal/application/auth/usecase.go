package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-web/internal/domain"
	"github.com/tu-usuario/almacen-web/internal/domain/entity"
	"github.com/tu-usuario/almacen-web/internal/domain/repository"
	"github.com/tu-usuario/almacen-web/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// SessionConfig configuración para emisión de tokens de sesión.
type SessionConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	userRepo   repository.UserRepository
	sessionCfg SessionConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, sessionCfg SessionConfig) *UseCase {
	return &UseCase{userRepo: userRepo, sessionCfg: sessionCfg}
}

// Register crea un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrDuplicateUsername si el username ya existe.
func (uc *UseCase) Register(username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica username/password y devuelve un token de sesión firmado.
// Cualquier fallo de identidad se reporta como ErrInvalidCredentials, sin
// distinguir usuario inexistente de contraseña incorrecta.
func (uc *UseCase) Login(username, password string) (string, error) {
	user, err := uc.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return jwt.Generate(uc.sessionCfg.Secret, user.ID, user.Username, uc.sessionCfg.Issuer, uc.sessionCfg.ExpMinutes)
}

// SeedAdmin crea el usuario admin inicial si no existe. Devuelve true si lo creó.
func (uc *UseCase) SeedAdmin(password string) (bool, error) {
	existing, err := uc.userRepo.GetByUsername("admin")
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := uc.Register("admin", password); err != nil {
		return false, err
	}
	return true, nil
}
