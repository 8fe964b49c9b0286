package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleStaff    = "STAFF"
	RoleConsumer = "CONSUMER"
)

// ValidRoles lista los roles aceptados en registro.
var ValidRoles = []string{RoleAdmin, RoleStaff, RoleConsumer}

// User representa un usuario del back-office o un consumidor con acceso al portal.
// Nunca se borra físicamente: la baja pone Active en false.
type User struct {
	ID                     string
	Username               string
	Email                  string
	PasswordHash           string // bcrypt hash, nunca plano en dominio después de persistir
	Role                   string // ADMIN, STAFF, CONSUMER
	Active                 bool
	PasswordChangeRequired bool // true para cuentas aprovisionadas con contraseña temporal
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
