package repository

import (
	"context"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// PasswordResetTokenRepository puerto de persistencia para tokens de restablecimiento.
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)
	// InvalidateUnusedByEmail marca como usados los tokens pendientes del email.
	InvalidateUnusedByEmail(ctx context.Context, email string) error
	// MarkUsed consume el token si aún no estaba usado. Devuelve false si ya lo estaba.
	MarkUsed(ctx context.Context, token string) (bool, error)
}
