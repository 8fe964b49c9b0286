package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/security"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

// mockPublisher implementa ports.NotificationPublisher con testify/mock.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishAccountApproved(ctx context.Context, e ports.AccountApprovedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockPublisher) PublishAccountRejected(ctx context.Context, e ports.AccountRejectedEvent) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockPublisher) PublishPasswordReset(ctx context.Context, e ports.PasswordResetRequestedEvent) error {
	return m.Called(ctx, e).Error(0)
}

type fixture struct {
	store     *memory.Store
	pub       *mockPublisher
	auth      *auth.AuthUseCase
	requests  *auth.AccountRequestUseCase
	hasher    *security.BcryptHasher
	jwtSecret string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	pub := &mockPublisher{}
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	cfg := auth.Config{
		JWT:           auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"},
		ResetTokenTTL: 15 * time.Minute,
		NotifyTimeout: time.Second,
	}
	return &fixture{
		store:     store,
		pub:       pub,
		hasher:    hasher,
		jwtSecret: testSecret,
		auth:      auth.NewAuthUseCase(store.Users(), store, hasher, pub, cfg, logger.Nop(), nil),
		requests:  auth.NewAccountRequestUseCase(store.AccountRequests(), store.Users(), store, hasher, pub, time.Second, logger.Nop(), nil),
	}
}

func (f *fixture) register(t *testing.T, username, email, password, role string) *dto.UserResponse {
	t.Helper()
	u, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		Username: username, Email: email, Password: password, Role: role,
	})
	require.NoError(t, err)
	return u
}
