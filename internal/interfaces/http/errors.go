package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

// errorMapping status HTTP y código para cada categoría de error de dominio.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: se usa el primer errors.Is que coincida.
var errorMappings = []errorMapping{
	{domain.ErrInvalidToken, fiber.StatusBadRequest, "INVALID_TOKEN"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// errorHandler traduce errores de los casos de uso a dto.ErrorResponse.
// Los errores desconocidos se registran y responden 500 con un mensaje genérico.
type errorHandler struct {
	log *logger.Logger
}

func (h errorHandler) respond(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	h.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// FiberErrorHandler para fiber.Config: errores de Fiber (404 de ruta, body demasiado grande) y panics recuperados.
func FiberErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
