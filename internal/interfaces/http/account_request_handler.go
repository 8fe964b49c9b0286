package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/auth"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
)

// AccountRequestHandler solicitudes de cuenta de consumidores.
type AccountRequestHandler struct {
	uc   *auth.AccountRequestUseCase
	errs errorHandler
}

// NewAccountRequestHandler construye el handler.
func NewAccountRequestHandler(uc *auth.AccountRequestUseCase, errs errorHandler) *AccountRequestHandler {
	return &AccountRequestHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Solicitar una cuenta
// @Tags         account-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccountRequestCreate  true  "name, email, phone, address"
// @Success      201   {object}  dto.AccountRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/account-requests [post]
func (h *AccountRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.AccountRequestCreate
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPending godoc
// @Summary      Listar solicitudes pendientes
// @Tags         account-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccountRequestResponse
// @Router       /api/account-requests/pending [get]
func (h *AccountRequestHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Review godoc
// @Summary      Aprobar o rechazar una solicitud
// @Tags         account-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccountRequestReview  true  "request_id, decision (APPROVE|REJECT)"
// @Success      200   {object}  dto.AccountRequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/account-requests/review [put]
func (h *AccountRequestHandler) Review(c *fiber.Ctx) error {
	var in dto.AccountRequestReview
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Review(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
