package billing

import (
	"context"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// BillDocument datos necesarios para la representación gráfica de una factura.
type BillDocument struct {
	Bill     *entity.Bill
	Consumer *entity.Consumer
	Plan     *entity.TariffPlan // nil si el plan ya no existe
}

// BillPDFGenerator genera el PDF de una factura.
type BillPDFGenerator interface {
	GenerateBillPDF(ctx context.Context, doc BillDocument) ([]byte, error)
}

// Config parámetros de facturación.
type Config struct {
	DueDays int // días entre la generación y el vencimiento
}
