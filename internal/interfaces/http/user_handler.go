package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// UserHandler consultas y baja de usuarios.
type UserHandler struct {
	uc   *usecase.UserUseCase
	errs errorHandler
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, errs errorHandler) *UserHandler {
	return &UserHandler{uc: uc, errs: errs}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Description  ADMIN puede consultar cualquier usuario; el resto solo a sí mismo.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !strings.EqualFold(GetRole(c), entity.RoleAdmin) && id != GetUserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar su propio usuario"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar usuario
// @Description  Baja lógica: el registro se conserva con active=false.
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
