package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
	"github.com/jhoicas/utility-backoffice-api/pkg/metrics"
	"github.com/jhoicas/utility-backoffice-api/pkg/textnorm"
)

// AccountRequestUseCase flujo de solicitudes de cuenta: alta pública y revisión por un ADMIN.
// Es el único componente que aprovisiona usuarios fuera del registro.
type AccountRequestUseCase struct {
	requestRepo repository.AccountRequestRepository
	userRepo    repository.UserRepository
	tx          AuthTxRunner
	hasher      ports.PasswordHasher
	notify      notifier
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewAccountRequestUseCase construye el caso de uso.
func NewAccountRequestUseCase(
	requestRepo repository.AccountRequestRepository,
	userRepo repository.UserRepository,
	tx AuthTxRunner,
	hasher ports.PasswordHasher,
	publisher ports.NotificationPublisher,
	notifyTimeout time.Duration,
	log *logger.Logger,
	m *metrics.Metrics,
) *AccountRequestUseCase {
	return &AccountRequestUseCase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		tx:          tx,
		hasher:      hasher,
		notify:      newNotifier(publisher, notifyTimeout, log, m),
		metrics:     m,
		now:         time.Now,
	}
}

// Create registra una solicitud PENDING. Falla si el email ya tiene solicitud o cuenta.
func (uc *AccountRequestUseCase) Create(ctx context.Context, in dto.AccountRequestCreate) (*dto.AccountRequestResponse, error) {
	email := textnorm.Email(in.Email)
	exists, err := uc.requestRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrRequestAlreadyExists
	}
	exists, err = uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	req := &entity.AccountRequest{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     email,
		Phone:     in.Phone,
		Address:   in.Address,
		Status:    entity.AccountRequestPending,
		CreatedAt: uc.now(),
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return toAccountRequestResponse(req), nil
}

// ListPending devuelve las solicitudes pendientes de revisión.
func (uc *AccountRequestUseCase) ListPending(ctx context.Context) ([]*dto.AccountRequestResponse, error) {
	list, err := uc.requestRepo.ListByStatus(ctx, entity.AccountRequestPending)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toAccountRequestResponse(r))
	}
	return out, nil
}

// Review aplica la decisión sobre una solicitud PENDING. Al aprobar crea el usuario CONSUMER
// con contraseña temporal en la misma transacción que la transición de estado.
func (uc *AccountRequestUseCase) Review(ctx context.Context, in dto.AccountRequestReview) (*dto.AccountRequestResponse, error) {
	decision := textnorm.Enum(in.Decision)

	var tempPassword, tempHash string
	if decision == entity.DecisionApprove {
		var err error
		if tempPassword, err = newTemporaryPassword(); err != nil {
			return nil, err
		}
		if tempHash, err = uc.hasher.Hash(tempPassword); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	var reviewed *entity.AccountRequest
	var user *entity.User
	err := uc.tx.RunAuth(ctx, func(userRepo repository.UserRepository, _ repository.PasswordResetTokenRepository, requestRepo repository.AccountRequestRepository) error {
		req, err := requestRepo.GetByID(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrRequestNotFound
		}
		if !req.IsPending() {
			return domain.ErrRequestAlreadyReviewed
		}

		var target string
		switch decision {
		case entity.DecisionApprove:
			target = entity.AccountRequestApproved
		case entity.DecisionReject:
			target = entity.AccountRequestRejected
		default:
			return domain.ErrInvalidDecision
		}

		if decision == entity.DecisionApprove {
			taken, err := userRepo.ExistsByEmail(ctx, req.Email)
			if err != nil {
				return err
			}
			if !taken {
				taken, err = userRepo.ExistsByUsername(ctx, req.Email)
				if err != nil {
					return err
				}
			}
			if taken {
				return domain.ErrEmailAlreadyExists
			}
		}

		ok, err := requestRepo.TransitionStatus(ctx, req.ID, entity.AccountRequestPending, target, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrRequestAlreadyReviewed
		}
		req.Status = target
		req.ReviewedAt = &now
		reviewed = req

		if decision == entity.DecisionApprove {
			user = &entity.User{
				ID:                     uuid.New().String(),
				Username:               req.Email,
				Email:                  req.Email,
				PasswordHash:           tempHash,
				Role:                   entity.RoleConsumer,
				Active:                 true,
				PasswordChangeRequired: true,
				CreatedAt:              now,
				UpdatedAt:              now,
			}
			return userRepo.Create(ctx, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.AccountReviewed(decision)

	if user != nil {
		uc.notify.send(ctx, "account_approved", reviewed.Email, func(ctx context.Context, p ports.NotificationPublisher) error {
			return p.PublishAccountApproved(ctx, ports.AccountApprovedEvent{
				Email:             reviewed.Email,
				Name:              reviewed.Name,
				Username:          user.Username,
				TemporaryPassword: tempPassword,
			})
		})
	} else {
		uc.notify.send(ctx, "account_rejected", reviewed.Email, func(ctx context.Context, p ports.NotificationPublisher) error {
			return p.PublishAccountRejected(ctx, ports.AccountRejectedEvent{Email: reviewed.Email, Name: reviewed.Name})
		})
	}
	return toAccountRequestResponse(reviewed), nil
}
