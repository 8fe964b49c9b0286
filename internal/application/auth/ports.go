package auth

import (
	"context"
	"time"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

// AuthTxRunner ejecuta una función dentro de una transacción con los repos de usuarios,
// tokens de restablecimiento y solicitudes de cuenta atados a ella.
type AuthTxRunner interface {
	RunAuth(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		tokenRepo repository.PasswordResetTokenRepository,
		requestRepo repository.AccountRequestRepository,
	) error) error
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros de los casos de uso de auth.
type Config struct {
	JWT           JWTConfig
	ResetTokenTTL time.Duration
	NotifyTimeout time.Duration // límite de cada publicación posterior al commit
}

// Principal identidad del llamador tomada del token. Vacía si no hay sesión.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

// IsZero indica que no hay identidad.
func (p Principal) IsZero() bool {
	return p.UserID == ""
}
