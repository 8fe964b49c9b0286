package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalUserID         = "user_id"
	LocalUsername       = "username"
	LocalRole           = "role"
	LocalPasswordChange = "pwd_change"
)

// AuthMiddleware valida el Bearer Token JWT y copia sus claims a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUsername, id.Username)
		c.Locals(LocalRole, id.Role)
		c.Locals(LocalPasswordChange, id.PasswordChangeRequired)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Usar DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
	}
}

// RequirePasswordChanged bloquea los tokens emitidos con contraseña temporal.
// Esos usuarios solo pueden llamar a change-password.
func RequirePasswordChanged() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if pending, _ := c.Locals(LocalPasswordChange).(bool); pending {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PASSWORD_CHANGE_REQUIRED",
				Message: "debe cambiar la contraseña temporal antes de continuar",
			})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetUsername devuelve el username del token.
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

func principal(c *fiber.Ctx) auth.Principal {
	return auth.Principal{UserID: GetUserID(c), Username: GetUsername(c), Role: GetRole(c)}
}
