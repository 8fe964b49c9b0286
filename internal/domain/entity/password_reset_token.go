package entity

import "time"

// PasswordResetToken token opaco de un solo uso para restablecer la contraseña.
type PasswordResetToken struct {
	ID         string
	Email      string
	Token      string
	ExpiryDate time.Time
	Used       bool
	CreatedAt  time.Time
}

// IsUsable indica si el token no fue usado y no ha expirado en now.
func (t *PasswordResetToken) IsUsable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiryDate)
}
