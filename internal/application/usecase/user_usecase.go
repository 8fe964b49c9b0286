package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

// UserUseCase accesores de usuarios para la administración.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List devuelve todos los usuarios, incluidos los inactivos.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Deactivate da de baja lógica: Active=false, el registro se conserva.
func (uc *UserUseCase) Deactivate(ctx context.Context, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.Active {
		return nil
	}
	user.Active = false
	user.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, user)
}
