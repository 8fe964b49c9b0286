package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// BillsSummaryResult conteo de facturas de un período.
type BillsSummaryResult struct {
	TotalBills  int
	PaidBills   int
	UnpaidBills int
}

// ConsumptionResult consumo agregado por tipo de servicio.
type ConsumptionResult struct {
	UtilityType  string
	TotalUnits   int64
	AverageUnits decimal.Decimal
	BillCount    int
}

// ConsumerBillingResult totales facturados por consumidor.
type ConsumerBillingResult struct {
	ConsumerID   string
	TotalBills   int
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
	UnpaidAmount decimal.Decimal
}

// BillingAnalyticsRepository consultas de solo lectura para el dashboard de facturación.
type BillingAnalyticsRepository interface {
	GetBillsSummary(ctx context.Context, month, year int) (BillsSummaryResult, error)
	// GetConsumptionByUtility devuelve total y promedio de unidades por servicio en el período.
	GetConsumptionByUtility(ctx context.Context, month, year int) ([]ConsumptionResult, error)
	GetConsumerBilling(ctx context.Context, month, year int) ([]ConsumerBillingResult, error)
	// GetTotalBilled suma Amount; month/year en cero significa sin filtro de período.
	GetTotalBilled(ctx context.Context, month, year int) (decimal.Decimal, error)
}
