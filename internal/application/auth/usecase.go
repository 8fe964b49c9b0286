package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/utility-backoffice-api/pkg/jwt"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
	"github.com/jhoicas/utility-backoffice-api/pkg/metrics"
	"github.com/jhoicas/utility-backoffice-api/pkg/textnorm"
)

const (
	defaultResetTTL = 15 * time.Minute
	tokenTypeBearer = "Bearer"
)

// AuthUseCase casos de uso de autenticación: registro, login y contraseñas.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tx       AuthTxRunner
	hasher   ports.PasswordHasher
	notify   notifier
	cfg      Config
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tx AuthTxRunner,
	hasher ports.PasswordHasher,
	publisher ports.NotificationPublisher,
	cfg Config,
	log *logger.Logger,
	m *metrics.Metrics,
) *AuthUseCase {
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = defaultResetTTL
	}
	return &AuthUseCase{
		userRepo: userRepo,
		tx:       tx,
		hasher:   hasher,
		notify:   newNotifier(publisher, cfg.NotifyTimeout, log, m),
		cfg:      cfg,
		metrics:  m,
		now:      time.Now,
	}
}

// Register crea un usuario activo. Username y email deben ser únicos; el rol por defecto es STAFF.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := textnorm.Email(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email y password son obligatorios", domain.ErrInvalidInput)
	}
	role := textnorm.Enum(in.Role)
	if role == "" {
		role = entity.RoleStaff
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}

	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameAlreadyExists
	}
	exists, err = uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica username/password y emite un JWT con el rol y el flag de cambio obligatorio.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.metrics.LoginAttempt("unknown")
		return nil, domain.ErrUserNotFound
	}
	if !user.Active {
		uc.metrics.LoginAttempt("disabled")
		return nil, domain.ErrAccountDisabled
	}
	if !uc.hasher.Matches(user.PasswordHash, in.Password) {
		uc.metrics.LoginAttempt("invalid")
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.cfg.JWT.Secret, jwt.Identity{
		UserID:                 user.ID,
		Username:               user.Username,
		Role:                   user.Role,
		PasswordChangeRequired: user.PasswordChangeRequired,
	}, uc.cfg.JWT.Issuer, uc.cfg.JWT.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.metrics.LoginAttempt("success")
	return &dto.LoginResponse{
		AccessToken:            token,
		TokenType:              tokenTypeBearer,
		Role:                   user.Role,
		PasswordChangeRequired: user.PasswordChangeRequired,
	}, nil
}

// ForgotPassword emite un token de restablecimiento. Un email desconocido no produce error
// para no revelar qué cuentas existen.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	email = textnorm.Email(email)
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || !user.Active {
		return nil
	}

	value, err := newResetToken()
	if err != nil {
		return err
	}
	now := uc.now()
	token := &entity.PasswordResetToken{
		ID:         uuid.New().String(),
		Email:      user.Email,
		Token:      value,
		ExpiryDate: now.Add(uc.cfg.ResetTokenTTL),
		CreatedAt:  now,
	}
	err = uc.tx.RunAuth(ctx, func(_ repository.UserRepository, tokenRepo repository.PasswordResetTokenRepository, _ repository.AccountRequestRepository) error {
		if err := tokenRepo.InvalidateUnusedByEmail(ctx, user.Email); err != nil {
			return err
		}
		return tokenRepo.Create(ctx, token)
	})
	if err != nil {
		return err
	}

	uc.notify.send(ctx, "password_reset", user.Email, func(ctx context.Context, p ports.NotificationPublisher) error {
		return p.PublishPasswordReset(ctx, ports.PasswordResetRequestedEvent{
			Email:     user.Email,
			Token:     token.Token,
			ExpiresAt: token.ExpiryDate.UTC().Format(time.RFC3339),
		})
	})
	return nil
}

// ResetPassword consume el token y reemplaza la contraseña en una sola transacción.
// Si dos peticiones usan el mismo token, solo una gana el compare-and-set.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if strings.TrimSpace(in.ResetToken) == "" {
		return domain.ErrInvalidToken
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	now := uc.now()
	return uc.tx.RunAuth(ctx, func(userRepo repository.UserRepository, tokenRepo repository.PasswordResetTokenRepository, _ repository.AccountRequestRepository) error {
		token, err := tokenRepo.GetByToken(ctx, in.ResetToken)
		if err != nil {
			return err
		}
		if token == nil || !token.IsUsable(now) {
			return domain.ErrInvalidToken
		}
		consumed, err := tokenRepo.MarkUsed(ctx, token.Token)
		if err != nil {
			return err
		}
		if !consumed {
			return domain.ErrInvalidToken
		}
		user, err := userRepo.GetByEmail(ctx, token.Email)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		user.PasswordHash = hash
		user.PasswordChangeRequired = false
		user.UpdatedAt = now
		return userRepo.Update(ctx, user)
	})
}

// ChangePassword cambia la contraseña de userID. Solo el propio usuario o un ADMIN pueden hacerlo.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, caller Principal, userID string, in dto.ChangePasswordRequest) error {
	if caller.IsZero() {
		return domain.ErrMissingIdentity
	}
	if userID == "" {
		userID = caller.UserID
	}
	if caller.UserID != userID && caller.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !uc.hasher.Matches(user.PasswordHash, in.OldPassword) {
		return domain.ErrInvalidCredentials
	}
	if in.OldPassword == in.NewPassword {
		return domain.ErrPasswordUnchanged
	}
	hash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.PasswordChangeRequired = false
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}
