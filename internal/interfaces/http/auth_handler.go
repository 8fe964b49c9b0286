package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
)

// AuthHandler maneja registro, login y gestión de contraseñas.
type AuthHandler struct {
	uc   *auth.AuthUseCase
	errs errorHandler
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, errs errorHandler) *AuthHandler {
	return &AuthHandler{uc: uc, errs: errs}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password, role"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{Message: "usuario registrado", User: *user})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		// Usuario desconocido y contraseña errónea responden igual.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Description  Responde siempre 200 para no revelar qué emails están registrados.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.uc.ForgotPassword(c.UserContext(), in.Email); err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "si el email está registrado recibirás instrucciones para restablecer la contraseña"})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "reset_token, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.uc.ResetPassword(c.UserContext(), in); err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña restablecida"})
}

// ChangePassword godoc
// @Summary      Cambiar contraseña del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "old_password, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	caller := principal(c)
	if err := h.uc.ChangePassword(c.UserContext(), caller, caller.UserID, in); err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada"})
}
