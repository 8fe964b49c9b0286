// Package analytics contiene los casos de uso del dashboard de facturación.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/utility-backoffice-api/internal/application/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

// DashboardUseCase reportes de facturación.
//
// Fuente de datos: BillingAnalyticsRepository (consultas read-only) para los agregados
// por período y BillRepository para el historial de un consumidor.
type DashboardUseCase struct {
	analyticsRepo repository.BillingAnalyticsRepository
	billRepo      repository.BillRepository
	consumerRepo  repository.ConsumerRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.BillingAnalyticsRepository,
	billRepo repository.BillRepository,
	consumerRepo repository.ConsumerRepository,
) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, billRepo: billRepo, consumerRepo: consumerRepo}
}

// BillsSummary conteo de facturas pagadas y pendientes del período.
func (uc *DashboardUseCase) BillsSummary(ctx context.Context, month, year int) (*dto.BillsSummaryDTO, error) {
	res, err := uc.analyticsRepo.GetBillsSummary(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen de facturas: %w", err)
	}
	return &dto.BillsSummaryDTO{
		Month:       month,
		Year:        year,
		TotalBills:  res.TotalBills,
		PaidBills:   res.PaidBills,
		UnpaidBills: res.UnpaidBills,
	}, nil
}

// ConsumptionSummary unidades totales por servicio.
func (uc *DashboardUseCase) ConsumptionSummary(ctx context.Context, month, year int) ([]dto.ConsumptionSummaryDTO, error) {
	rows, err := uc.analyticsRepo.GetConsumptionByUtility(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: consumo: %w", err)
	}
	out := make([]dto.ConsumptionSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ConsumptionSummaryDTO{UtilityType: r.UtilityType, TotalUnits: r.TotalUnits})
	}
	return out, nil
}

// AverageConsumption promedio de unidades por factura y servicio.
func (uc *DashboardUseCase) AverageConsumption(ctx context.Context, month, year int) ([]dto.AverageConsumptionDTO, error) {
	rows, err := uc.analyticsRepo.GetConsumptionByUtility(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: consumo promedio: %w", err)
	}
	out := make([]dto.AverageConsumptionDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AverageConsumptionDTO{UtilityType: r.UtilityType, AverageUnits: r.AverageUnits.Round(2)})
	}
	return out, nil
}

// ConsumerBillingSummary totales facturados por consumidor en el período.
func (uc *DashboardUseCase) ConsumerBillingSummary(ctx context.Context, month, year int) ([]dto.ConsumerBillingSummaryDTO, error) {
	rows, err := uc.analyticsRepo.GetConsumerBilling(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: facturación por consumidor: %w", err)
	}
	out := make([]dto.ConsumerBillingSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ConsumerBillingSummaryDTO{
			ConsumerID:   r.ConsumerID,
			TotalBills:   r.TotalBills,
			TotalAmount:  r.TotalAmount.Round(2),
			PaidAmount:   r.PaidAmount.Round(2),
			UnpaidAmount: r.UnpaidAmount.Round(2),
		})
	}
	return out, nil
}

// TotalBilledForMonth monto facturado en el período.
func (uc *DashboardUseCase) TotalBilledForMonth(ctx context.Context, month, year int) (*dto.TotalBilledResponse, error) {
	total, err := uc.analyticsRepo.GetTotalBilled(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard: total del mes: %w", err)
	}
	return &dto.TotalBilledResponse{Month: month, Year: year, TotalBilled: total.Round(2)}, nil
}

// TotalBilled monto facturado histórico.
func (uc *DashboardUseCase) TotalBilled(ctx context.Context) (*dto.TotalBilledResponse, error) {
	total, err := uc.analyticsRepo.GetTotalBilled(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("dashboard: total facturado: %w", err)
	}
	return &dto.TotalBilledResponse{TotalBilled: total.Round(2)}, nil
}

// ConsumerBillingHistory historial y totales de un consumidor.
// El consumidor y sus facturas se consultan en paralelo.
func (uc *DashboardUseCase) ConsumerBillingHistory(ctx context.Context, consumerID string) (*dto.ConsumerBillingHistoryDTO, error) {
	type consumerResult struct {
		consumer *entity.Consumer
		err      error
	}
	type billsResult struct {
		bills []*entity.Bill
		err   error
	}

	consumerCh := make(chan consumerResult, 1)
	billsCh := make(chan billsResult, 1)

	go func() {
		c, err := uc.consumerRepo.GetByID(ctx, consumerID)
		consumerCh <- consumerResult{c, err}
	}()
	go func() {
		b, err := uc.billRepo.List(ctx, repository.BillFilter{ConsumerID: consumerID})
		billsCh <- billsResult{b, err}
	}()

	cr := <-consumerCh
	br := <-billsCh

	if cr.err != nil {
		return nil, fmt.Errorf("dashboard: consumidor: %w", cr.err)
	}
	if cr.consumer == nil {
		return nil, domain.ErrConsumerNotFound
	}
	if br.err != nil {
		return nil, fmt.Errorf("dashboard: facturas del consumidor: %w", br.err)
	}

	out := &dto.ConsumerBillingHistoryDTO{
		ConsumerID:   cr.consumer.ID,
		FullName:     cr.consumer.FullName,
		TotalAmount:  decimal.Zero,
		PaidAmount:   decimal.Zero,
		UnpaidAmount: decimal.Zero,
		Bills:        make([]*dto.BillResponse, 0, len(br.bills)),
	}
	for _, b := range br.bills {
		out.TotalBills++
		out.TotalAmount = out.TotalAmount.Add(b.Amount)
		if b.IsPaid() {
			out.PaidAmount = out.PaidAmount.Add(b.Amount)
		} else {
			out.UnpaidAmount = out.UnpaidAmount.Add(b.Amount)
		}
		out.Bills = append(out.Bills, billing.ToBillResponse(b))
	}
	return out, nil
}
