package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/application/usecase"
)

// ConsumerHandler maneja las peticiones HTTP para Consumer.
type ConsumerHandler struct {
	uc   *usecase.ConsumerUseCase
	errs errorHandler
}

// NewConsumerHandler construye el handler.
func NewConsumerHandler(uc *usecase.ConsumerUseCase, errs errorHandler) *ConsumerHandler {
	return &ConsumerHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Crear consumidor
// @Tags         consumers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConsumerRequest  true  "Datos del consumidor"
// @Success      201   {object}  dto.ConsumerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumers [post]
func (h *ConsumerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConsumerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar consumidores
// @Tags         consumers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConsumerResponse
// @Router       /api/consumers [get]
func (h *ConsumerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener consumidor por ID
// @Tags         consumers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del consumidor"
// @Success      200  {object}  dto.ConsumerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consumers/{id} [get]
func (h *ConsumerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar consumidor
// @Tags         consumers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del consumidor"
// @Param        body  body  dto.UpdateConsumerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ConsumerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumers/{id} [put]
func (h *ConsumerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateConsumerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar consumidor
// @Tags         consumers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del consumidor"
// @Success      200  {object}  dto.ConsumerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consumers/{id}/deactivate [put]
func (h *ConsumerHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
