package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role y PasswordChangeRequired permiten autorizar sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID                 string `json:"user_id"`
	Username               string `json:"username"`
	Role                   string `json:"role"` // "ADMIN" | "STAFF" | "CONSUMER"
	PasswordChangeRequired bool   `json:"pwd_change,omitempty"`
}

// Identity datos del usuario que viajan en el token.
type Identity struct {
	UserID                 string
	Username               string
	Role                   string
	PasswordChangeRequired bool
}

// Generate genera un token JWT firmado (HS256) con la identidad del usuario.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:                 id.UserID,
		Username:               id.Username,
		Role:                   id.Role,
		PasswordChangeRequired: id.PasswordChangeRequired,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad que contiene.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		UserID:                 claims.UserID,
		Username:               claims.Username,
		Role:                   claims.Role,
		PasswordChangeRequired: claims.PasswordChangeRequired,
	}, nil
}
