package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateBillRequest body para POST /api/bills.
type GenerateBillRequest struct {
	ConsumerID    string `json:"consumer_id" validate:"required"`
	UtilityType   string `json:"utility_type" validate:"required"`
	Month         int    `json:"month" validate:"required,min=1,max=12"`
	Year          int    `json:"year" validate:"required,min=2000,max=2100"`
	UnitsConsumed int64  `json:"units_consumed" validate:"min=0"`
}

// BillLineResponse detalle del cargo de un tramo.
type BillLineResponse struct {
	MinUnits    int64           `json:"min_units"`
	MaxUnits    *int64          `json:"max_units,omitempty"`
	Units       int64           `json:"units"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	Amount      decimal.Decimal `json:"amount"`
}

// BillResponse factura en respuestas.
type BillResponse struct {
	ID            string             `json:"id"`
	ConsumerID    string             `json:"consumer_id"`
	UtilityType   string             `json:"utility_type"`
	PlanID        string             `json:"plan_id,omitempty"`
	Month         int                `json:"month"`
	Year          int                `json:"year"`
	UnitsConsumed int64              `json:"units_consumed"`
	EnergyCharge  decimal.Decimal    `json:"energy_charge"`
	FixedCharge   decimal.Decimal    `json:"fixed_charge"`
	Amount        decimal.Decimal    `json:"amount"`
	Status        string             `json:"status"`
	GeneratedAt   time.Time          `json:"generated_at"`
	DueDate       time.Time          `json:"due_date"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	Lines         []BillLineResponse `json:"lines,omitempty"`
}

// BillQuery filtros de GET /api/bills.
type BillQuery struct {
	Status     string `query:"status" validate:"omitempty,oneof=GENERATED PAID"`
	Month      int    `query:"month" validate:"omitempty,min=1,max=12"`
	Year       int    `query:"year" validate:"omitempty,min=2000,max=2100"`
	ConsumerID string `query:"consumer_id"`
}

// TotalBilledResponse monto total facturado.
type TotalBilledResponse struct {
	Month       int             `json:"month,omitempty"`
	Year        int             `json:"year,omitempty"`
	TotalBilled decimal.Decimal `json:"total_billed"`
}
