package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/analytics"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
)

// DashboardHandler endpoints de analítica de facturación.
type DashboardHandler struct {
	uc   *analytics.DashboardUseCase
	errs errorHandler
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, errs errorHandler) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// BillsSummary godoc
// @Summary      Conteo de facturas del período
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mes (1-12)"
// @Param        year   query  int  true  "Año"
// @Success      200  {object}  dto.BillsSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/billing/bills-summary [get]
func (h *DashboardHandler) BillsSummary(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.BillsSummary(c.UserContext(), q.Month, q.Year)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ConsumptionSummary godoc
// @Summary      Consumo total por servicio
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mes (1-12)"
// @Param        year   query  int  true  "Año"
// @Success      200  {array}   dto.ConsumptionSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/billing/consumption-summary [get]
func (h *DashboardHandler) ConsumptionSummary(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.ConsumptionSummary(c.UserContext(), q.Month, q.Year)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// AverageConsumption godoc
// @Summary      Consumo promedio por servicio
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mes (1-12)"
// @Param        year   query  int  true  "Año"
// @Success      200  {array}   dto.AverageConsumptionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/billing/consumption-average [get]
func (h *DashboardHandler) AverageConsumption(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.AverageConsumption(c.UserContext(), q.Month, q.Year)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ConsumerSummary godoc
// @Summary      Totales facturados por consumidor
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mes (1-12)"
// @Param        year   query  int  true  "Año"
// @Success      200  {array}   dto.ConsumerBillingSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/billing/consumer-summary [get]
func (h *DashboardHandler) ConsumerSummary(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.ConsumerBillingSummary(c.UserContext(), q.Month, q.Year)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// TotalBilledMonthly godoc
// @Summary      Total facturado en el período
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        month  query  int  true  "Mes (1-12)"
// @Param        year   query  int  true  "Año"
// @Success      200  {object}  dto.TotalBilledResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/billing/total-billed-monthly [get]
func (h *DashboardHandler) TotalBilledMonthly(c *fiber.Ctx) error {
	var q dto.PeriodQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.TotalBilledForMonth(c.UserContext(), q.Month, q.Year)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// TotalBilled godoc
// @Summary      Total facturado histórico
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalBilledResponse
// @Router       /api/dashboard/billing/total-billed [get]
func (h *DashboardHandler) TotalBilled(c *fiber.Ctx) error {
	out, err := h.uc.TotalBilled(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ConsumerHistory godoc
// @Summary      Historial de facturación de un consumidor
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        consumerId  path  string  true  "ID del consumidor"
// @Success      200  {object}  dto.ConsumerBillingHistoryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/billing/consumer/{consumerId} [get]
func (h *DashboardHandler) ConsumerHistory(c *fiber.Ctx) error {
	out, err := h.uc.ConsumerBillingHistory(c.UserContext(), c.Params("consumerId"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
