package auth

import (
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// ToUserResponse convierte la entidad en DTO sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                     u.ID,
		Username:               u.Username,
		Email:                  u.Email,
		Role:                   u.Role,
		Active:                 u.Active,
		PasswordChangeRequired: u.PasswordChangeRequired,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

func toAccountRequestResponse(r *entity.AccountRequest) *dto.AccountRequestResponse {
	if r == nil {
		return nil
	}
	return &dto.AccountRequestResponse{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		ReviewedAt: r.ReviewedAt,
	}
}
