package dto

import "time"

// RegisterRequest entrada para registro (solo ADMIN).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=4,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN STAFF CONSUMER"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                     string    `json:"id"`
	Username               string    `json:"username"`
	Email                  string    `json:"email"`
	Role                   string    `json:"role"`
	Active                 bool      `json:"active"`
	PasswordChangeRequired bool      `json:"password_change_required"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// RegisterResponse respuesta del registro.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	AccessToken            string `json:"access_token"`
	TokenType              string `json:"token_type"`
	Role                   string `json:"role"`
	PasswordChangeRequired bool   `json:"password_change_required"`
}

// ForgotPasswordRequest entrada para solicitar el restablecimiento.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// ResetPasswordRequest entrada para restablecer con token.
type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// ChangePasswordRequest entrada para cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}
