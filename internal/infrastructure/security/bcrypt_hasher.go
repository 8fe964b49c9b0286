package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
)

var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher implementa PasswordHasher con bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. Un costo fuera de rango usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash genera el hash de plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Matches indica si plain corresponde al hash.
func (h *BcryptHasher) Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
