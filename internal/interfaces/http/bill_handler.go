package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/utility-backoffice-api/internal/application/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
)

// BillHandler generación, consulta y pago de facturas.
type BillHandler struct {
	uc    *billing.BillUseCase
	pdfUC *billing.PDFUseCase
	errs  errorHandler
}

// NewBillHandler construye el handler.
func NewBillHandler(uc *billing.BillUseCase, pdfUC *billing.PDFUseCase, errs errorHandler) *BillHandler {
	return &BillHandler{uc: uc, pdfUC: pdfUC, errs: errs}
}

// Generate godoc
// @Summary      Generar factura
// @Description  Calcula el monto con el plan activo del servicio aplicando los tramos por consumo.
// @Tags         bills
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateBillRequest  true  "consumer_id, utility_type, month, year, units_consumed"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateBillRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Generate(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "GENERATED o PAID"
// @Param        month        query  int     false  "Mes (1-12)"
// @Param        year         query  int     false  "Año"
// @Param        consumer_id  query  string  false  "ID del consumidor"
// @Success      200  {array}   dto.BillResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	var q dto.BillQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// ListByConsumer godoc
// @Summary      Facturas de un consumidor
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        consumerId  path  string  true  "ID del consumidor"
// @Success      200  {array}  dto.BillResponse
// @Router       /api/bills/consumer/{consumerId} [get]
func (h *BillHandler) ListByConsumer(c *fiber.Ctx) error {
	out, err := h.uc.ListByConsumer(c.UserContext(), c.Params("consumerId"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// MarkPaid godoc
// @Summary      Marcar factura como pagada
// @Description  Idempotente: una factura ya pagada responde 204.
// @Tags         bills
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/mark-paid [put]
func (h *BillHandler) MarkPaid(c *fiber.Ctx) error {
	if err := h.uc.MarkPaid(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         bills
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/pdf [get]
func (h *BillHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdfUC.DownloadBillPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
