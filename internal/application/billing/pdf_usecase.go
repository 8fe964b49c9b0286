package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	billRepo     repository.BillRepository
	consumerRepo repository.ConsumerRepository
	planRepo     repository.TariffPlanRepository
	generator    BillPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	billRepo repository.BillRepository,
	consumerRepo repository.ConsumerRepository,
	planRepo repository.TariffPlanRepository,
	generator BillPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		billRepo:     billRepo,
		consumerRepo: consumerRepo,
		planRepo:     planRepo,
		generator:    generator,
	}
}

// DownloadBillPDF arma el documento y devuelve (pdfBytes, filename).
func (uc *PDFUseCase) DownloadBillPDF(ctx context.Context, billID string) ([]byte, string, error) {
	bill, err := uc.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if bill == nil {
		return nil, "", domain.ErrBillNotFound
	}

	consumer, err := uc.consumerRepo.GetByID(ctx, bill.ConsumerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener consumidor: %w", err)
	}
	if consumer == nil {
		return nil, "", domain.ErrConsumerNotFound
	}

	plan, err := uc.planRepo.GetByID(ctx, bill.PlanID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener plan: %w", err)
	}

	pdfBytes, err := uc.generator.GenerateBillPDF(ctx, BillDocument{Bill: bill, Consumer: consumer, Plan: plan})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("factura_%s_%04d%02d_%s.pdf", bill.UtilityType, bill.Year, bill.Month, shortID(bill.ID))
	return pdfBytes, filename, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
