package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// EnsureAdmin crea el administrador inicial si no existe un usuario con ese username.
// Sin él nadie podría llamar a Register, que exige rol ADMIN. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, nil
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := uc.Register(ctx, dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     entity.RoleAdmin,
	}); err != nil {
		return false, err
	}
	return true, nil
}
