package dto

import "github.com/shopspring/decimal"

// BillsSummaryDTO respuesta de GET /api/dashboard/billing/bills-summary.
type BillsSummaryDTO struct {
	Month       int `json:"month"`
	Year        int `json:"year"`
	TotalBills  int `json:"total_bills"`
	PaidBills   int `json:"paid_bills"`
	UnpaidBills int `json:"unpaid_bills"`
}

// ConsumptionSummaryDTO consumo total por tipo de servicio.
type ConsumptionSummaryDTO struct {
	UtilityType string `json:"utility_type"`
	TotalUnits  int64  `json:"total_units"`
}

// AverageConsumptionDTO consumo promedio por factura y tipo de servicio.
type AverageConsumptionDTO struct {
	UtilityType  string          `json:"utility_type"`
	AverageUnits decimal.Decimal `json:"average_units"`
}

// ConsumerBillingSummaryDTO totales facturados por consumidor en el período.
type ConsumerBillingSummaryDTO struct {
	ConsumerID   string          `json:"consumer_id"`
	TotalBills   int             `json:"total_bills"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
}

// ConsumerBillingHistoryDTO historial completo de un consumidor.
type ConsumerBillingHistoryDTO struct {
	ConsumerID   string          `json:"consumer_id"`
	FullName     string          `json:"full_name"`
	TotalBills   int             `json:"total_bills"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
	Bills        []*BillResponse `json:"bills"`
}

// PeriodQuery mes y año obligatorios de los endpoints del dashboard.
type PeriodQuery struct {
	Month int `query:"month" validate:"required,min=1,max=12"`
	Year  int `query:"year" validate:"required,min=2000,max=2100"`
}
