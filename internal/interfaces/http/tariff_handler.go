package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
)

// TariffHandler planes tarifarios y tramos.
type TariffHandler struct {
	uc   *billing.TariffUseCase
	errs errorHandler
}

// NewTariffHandler construye el handler.
func NewTariffHandler(uc *billing.TariffUseCase, errs errorHandler) *TariffHandler {
	return &TariffHandler{uc: uc, errs: errs}
}

// GetTariffs godoc
// @Summary      Plan activo y tramos de un servicio
// @Tags         tariffs
// @Security     Bearer
// @Produce      json
// @Param        utility_type  query  string  true  "ELECTRICITY, WATER o GAS"
// @Success      200  {object}  dto.TariffResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tariffs [get]
func (h *TariffHandler) GetTariffs(c *fiber.Ctx) error {
	utility := c.Query("utility_type")
	if utility == "" {
		return badRequest(c, "VALIDATION", "utility_type es requerido")
	}
	out, err := h.uc.GetTariffsByUtility(c.UserContext(), utility)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// CreatePlan godoc
// @Summary      Crear plan tarifario
// @Tags         tariffs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTariffPlanRequest  true  "utility_type, plan_code, description, fixed_charge"
// @Success      201   {object}  dto.TariffPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tariffs/plans [post]
func (h *TariffHandler) CreatePlan(c *fiber.Ctx) error {
	var in dto.CreateTariffPlanRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreatePlan(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPlans godoc
// @Summary      Listar planes tarifarios
// @Tags         tariffs
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "true: activos, false: inactivos, omitido: todos"
// @Success      200  {array}   dto.TariffPlanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tariffs/plans [get]
func (h *TariffHandler) GetPlans(c *fiber.Ctx) error {
	var active *bool
	if raw := c.Query("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "INVALID_PARAMS", "active debe ser true o false")
		}
		active = &v
	}
	out, err := h.uc.GetPlans(c.UserContext(), active)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// GetActivePlans godoc
// @Summary      Listar planes activos
// @Tags         tariffs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TariffPlanResponse
// @Router       /api/tariffs/plans/active [get]
func (h *TariffHandler) GetActivePlans(c *fiber.Ctx) error {
	out, err := h.uc.GetActivePlans(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// DeactivatePlan godoc
// @Summary      Desactivar plan tarifario
// @Description  Idempotente: desactivar un plan ya inactivo responde 200.
// @Tags         tariffs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del plan"
// @Success      200  {object}  dto.DeactivatePlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tariffs/plans/{id}/deactivate [put]
func (h *TariffHandler) DeactivatePlan(c *fiber.Ctx) error {
	out, err := h.uc.DeactivatePlan(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// CreateSlab godoc
// @Summary      Agregar tramo a un plan
// @Tags         tariffs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTariffSlabRequest  true  "plan_id, min_units, max_units, rate_per_unit"
// @Success      201   {object}  dto.TariffSlabResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tariffs/slabs [post]
func (h *TariffHandler) CreateSlab(c *fiber.Ctx) error {
	var in dto.CreateTariffSlabRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateSlab(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteSlab godoc
// @Summary      Eliminar tramo
// @Tags         tariffs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tramo"
// @Success      200  {object}  dto.TariffSlabResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tariffs/slabs/{id} [delete]
func (h *TariffHandler) DeleteSlab(c *fiber.Ctx) error {
	out, err := h.uc.DeleteSlab(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
