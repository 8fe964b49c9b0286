package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioActivo(t *testing.T) {
	f := newFixture(t)

	u := f.register(t, "operador", "Op@Example.com", "Secreta123", "")

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "op@example.com", u.Email)
	assert.Equal(t, entity.RoleStaff, u.Role, "rol por defecto STAFF")
	assert.True(t, u.Active)
	assert.False(t, u.PasswordChangeRequired)

	stored, _ := f.store.Users().GetByID(context.Background(), u.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "Secreta123", stored.PasswordHash)
	assert.True(t, f.hasher.Matches(stored.PasswordHash, "Secreta123"))
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	f := newFixture(t)
	f.register(t, "operador", "a@example.com", "Secreta123", "STAFF")

	_, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		Username: "operador", Email: "b@example.com", Password: "Secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	f.register(t, "operador", "a@example.com", "Secreta123", "STAFF")

	_, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		Username: "otro", Email: "A@example.com", Password: "Secreta123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolDesconocido(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		Username: "operador", Email: "a@example.com", Password: "Secreta123", Role: "ROOT",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenLlevaElRolGuardado(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "jefa", "jefa@example.com", "Secreta123", "ADMIN")

	resp, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "jefa", Password: "Secreta123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	id, err := jwt.Parse(f.jwtSecret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
	assert.Equal(t, entity.RoleAdmin, id.Role)
	assert.False(t, id.PasswordChangeRequired)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jefa", "jefa@example.com", "Secreta123", "ADMIN")

	_, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "jefa", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "jefa", "jefa@example.com", "Secreta123", "ADMIN")
	stored, _ := f.store.Users().GetByID(context.Background(), u.ID)
	stored.Active = false
	require.NoError(t, f.store.Users().Update(context.Background(), stored))

	_, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "jefa", Password: "Secreta123"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Forgot / Reset password
// ──────────────────────────────────────────────────────────────────────────────

func TestForgotPassword_EmailDesconocidoNoHaceNada(t *testing.T) {
	f := newFixture(t)

	err := f.auth.ForgotPassword(context.Background(), "nadie@example.com")
	require.NoError(t, err)
	f.pub.AssertNotCalled(t, "PublishPasswordReset", mock.Anything, mock.Anything)
}

func TestForgotPassword_PublicaTokenEInvalidaAnterior(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")

	var tokens []string
	f.pub.On("PublishPasswordReset", mock.Anything, mock.AnythingOfType("ports.PasswordResetRequestedEvent")).
		Run(func(args mock.Arguments) {
			tokens = append(tokens, args.Get(1).(ports.PasswordResetRequestedEvent).Token)
		}).Return(nil)

	require.NoError(t, f.auth.ForgotPassword(context.Background(), "ana@example.com"))
	require.NoError(t, f.auth.ForgotPassword(context.Background(), "ana@example.com"))
	require.Len(t, tokens, 2)
	assert.Len(t, tokens[0], 64, "32 bytes en hex")
	assert.NotEqual(t, tokens[0], tokens[1])

	first, _ := f.store.Tokens().GetByToken(context.Background(), tokens[0])
	assert.True(t, first.Used, "el token anterior queda invalidado")

	err := f.auth.ResetPassword(context.Background(), dto.ResetPasswordRequest{ResetToken: tokens[0], NewPassword: "Nueva12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestResetPassword_ConsumeTokenUnaVez(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")
	var token string
	f.pub.On("PublishPasswordReset", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { token = args.Get(1).(ports.PasswordResetRequestedEvent).Token }).
		Return(nil)
	require.NoError(t, f.auth.ForgotPassword(context.Background(), "ana@example.com"))

	err := f.auth.ResetPassword(context.Background(), dto.ResetPasswordRequest{ResetToken: token, NewPassword: "Nueva12345"})
	require.NoError(t, err)

	_, err = f.auth.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "Nueva12345"})
	assert.NoError(t, err)

	err = f.auth.ResetPassword(context.Background(), dto.ResetPasswordRequest{ResetToken: token, NewPassword: "Otra123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "reutilizar el token falla")
}

func TestResetPassword_TokenExpirado(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")
	require.NoError(t, f.store.Tokens().Create(context.Background(), &entity.PasswordResetToken{
		ID: "T1", Email: "ana@example.com", Token: "vencido", ExpiryDate: time.Now().Add(-time.Minute),
	}))

	err := f.auth.ResetPassword(context.Background(), dto.ResetPasswordRequest{ResetToken: "vencido", NewPassword: "Nueva12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	tok, _ := f.store.Tokens().GetByToken(context.Background(), "vencido")
	assert.False(t, tok.Used, "un token rechazado no se consume")
}

func TestResetPassword_TokenInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.auth.ResetPassword(context.Background(), dto.ResetPasswordRequest{ResetToken: "nope", NewPassword: "Nueva12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestForgotPassword_FalloDelPublicadorNoSePropaga(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")
	f.pub.On("PublishPasswordReset", mock.Anything, mock.Anything).Return(errors.New("broker caído"))

	err := f.auth.ForgotPassword(context.Background(), "ana@example.com")
	assert.NoError(t, err)
	f.pub.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangePassword
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_SinIdentidad(t *testing.T) {
	f := newFixture(t)
	err := f.auth.ChangePassword(context.Background(), auth.Principal{}, "U1", dto.ChangePasswordRequest{OldPassword: "a", NewPassword: "b"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_PropioUsuario(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")
	caller := auth.Principal{UserID: u.ID, Username: u.Username, Role: u.Role}

	err := f.auth.ChangePassword(context.Background(), caller, u.ID, dto.ChangePasswordRequest{OldPassword: "Secreta123", NewPassword: "Nueva12345"})
	require.NoError(t, err)

	_, err = f.auth.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "Nueva12345"})
	assert.NoError(t, err)
}

func TestChangePassword_OtroUsuarioSinSerAdmin(t *testing.T) {
	f := newFixture(t)
	ana := f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")
	luis := f.register(t, "luis", "luis@example.com", "Secreta123", "STAFF")

	err := f.auth.ChangePassword(context.Background(), auth.Principal{UserID: luis.ID, Role: entity.RoleStaff}, ana.ID,
		dto.ChangePasswordRequest{OldPassword: "Secreta123", NewPassword: "Nueva12345"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangePassword_AdminSobreOtroUsuario(t *testing.T) {
	f := newFixture(t)
	ana := f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")

	err := f.auth.ChangePassword(context.Background(), auth.Principal{UserID: "ADMIN-1", Role: entity.RoleAdmin}, ana.ID,
		dto.ChangePasswordRequest{OldPassword: "Secreta123", NewPassword: "Nueva12345"})
	assert.NoError(t, err)
}

func TestChangePassword_PasswordActualIncorrecto(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")

	err := f.auth.ChangePassword(context.Background(), auth.Principal{UserID: u.ID, Role: u.Role}, u.ID,
		dto.ChangePasswordRequest{OldPassword: "mala", NewPassword: "Nueva12345"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_MismaPassword(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "ana@example.com", "Secreta123", "STAFF")

	err := f.auth.ChangePassword(context.Background(), auth.Principal{UserID: u.ID, Role: u.Role}, u.ID,
		dto.ChangePasswordRequest{OldPassword: "Secreta123", NewPassword: "Secreta123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangePassword_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.auth.ChangePassword(context.Background(), auth.Principal{UserID: "X", Role: entity.RoleAdmin}, "Y",
		dto.ChangePasswordRequest{OldPassword: "a", NewPassword: "b"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
