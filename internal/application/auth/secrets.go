package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	resetTokenBytes   = 32
	tempPasswordLen   = 12
	tempPasswordChars = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789@#$%"
)

// newResetToken devuelve un token opaco de 32 bytes aleatorios en hex.
func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// newTemporaryPassword genera la contraseña temporal de las cuentas aprobadas.
func newTemporaryPassword() (string, error) {
	out := make([]byte, tempPasswordLen)
	max := big.NewInt(int64(len(tempPasswordChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar contraseña temporal: %w", err)
		}
		out[i] = tempPasswordChars[n.Int64()]
	}
	return string(out), nil
}
