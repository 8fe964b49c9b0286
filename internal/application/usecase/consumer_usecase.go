package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/utility-backoffice-api/pkg/textnorm"
)

// ConsumerUseCase registro de consumidores del servicio.
type ConsumerUseCase struct {
	repo repository.ConsumerRepository
}

// NewConsumerUseCase construye el caso de uso.
func NewConsumerUseCase(repo repository.ConsumerRepository) *ConsumerUseCase {
	return &ConsumerUseCase{repo: repo}
}

// Create registra un consumidor activo. Email y móvil deben ser únicos.
func (uc *ConsumerUseCase) Create(ctx context.Context, in dto.CreateConsumerRequest) (*dto.ConsumerResponse, error) {
	email := textnorm.Email(in.Email)
	mobile := strings.TrimSpace(in.MobileNumber)
	if err := uc.checkUnique(ctx, "", email, mobile); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Consumer{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		MobileNumber: mobile,
		Address:      strings.TrimSpace(in.Address),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toConsumerResponse(c), nil
}

// Update aplica una actualización parcial. Un email o móvil nuevo se revalida.
func (uc *ConsumerUseCase) Update(ctx context.Context, id string, in dto.UpdateConsumerRequest) (*dto.ConsumerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrConsumerNotFound
	}
	if in.FullName != nil {
		c.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	email, mobile := "", ""
	if in.Email != nil && textnorm.Email(*in.Email) != c.Email {
		email = textnorm.Email(*in.Email)
	}
	if in.MobileNumber != nil && strings.TrimSpace(*in.MobileNumber) != c.MobileNumber {
		mobile = strings.TrimSpace(*in.MobileNumber)
	}
	if err := uc.checkUnique(ctx, c.ID, email, mobile); err != nil {
		return nil, err
	}
	if email != "" {
		c.Email = email
	}
	if mobile != "" {
		c.MobileNumber = mobile
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toConsumerResponse(c), nil
}

// GetByID obtiene un consumidor.
func (uc *ConsumerUseCase) GetByID(ctx context.Context, id string) (*dto.ConsumerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrConsumerNotFound
	}
	return toConsumerResponse(c), nil
}

// List devuelve todos los consumidores.
func (uc *ConsumerUseCase) List(ctx context.Context) ([]*dto.ConsumerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ConsumerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toConsumerResponse(c))
	}
	return out, nil
}

// Deactivate baja lógica del consumidor.
func (uc *ConsumerUseCase) Deactivate(ctx context.Context, id string) (*dto.ConsumerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrConsumerNotFound
	}
	if c.Active {
		c.Active = false
		c.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, c); err != nil {
			return nil, err
		}
	}
	return toConsumerResponse(c), nil
}

// checkUnique valida email y móvil contra otros consumidores. Valores vacíos no se revisan.
func (uc *ConsumerUseCase) checkUnique(ctx context.Context, selfID, email, mobile string) error {
	if email != "" {
		other, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if other != nil && other.ID != selfID {
			return domain.ErrEmailAlreadyExists
		}
	}
	if mobile != "" {
		other, err := uc.repo.GetByMobileNumber(ctx, mobile)
		if err != nil {
			return err
		}
		if other != nil && other.ID != selfID {
			return domain.ErrMobileAlreadyExists
		}
	}
	return nil
}

func toConsumerResponse(c *entity.Consumer) *dto.ConsumerResponse {
	return &dto.ConsumerResponse{
		ID:           c.ID,
		FullName:     c.FullName,
		Email:        c.Email,
		MobileNumber: c.MobileNumber,
		Address:      c.Address,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
