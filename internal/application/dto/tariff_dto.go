package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTariffPlanRequest body para POST /api/tariffs/plans.
type CreateTariffPlanRequest struct {
	UtilityType string          `json:"utility_type" validate:"required"`
	PlanCode    string          `json:"plan_code" validate:"required,min=2,max=30"`
	Description string          `json:"description" validate:"max=255"`
	FixedCharge decimal.Decimal `json:"fixed_charge"`
}

// TariffPlanResponse plan en respuestas.
type TariffPlanResponse struct {
	ID          string          `json:"id"`
	UtilityType string          `json:"utility_type"`
	PlanCode    string          `json:"plan_code"`
	Description string          `json:"description,omitempty"`
	FixedCharge decimal.Decimal `json:"fixed_charge"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DeactivatePlanResponse confirmación de la desactivación.
type DeactivatePlanResponse struct {
	ID       string `json:"id"`
	PlanCode string `json:"plan_code"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// CreateTariffSlabRequest body para POST /api/tariffs/slabs.
type CreateTariffSlabRequest struct {
	PlanID      string          `json:"plan_id" validate:"required"`
	MinUnits    int64           `json:"min_units" validate:"min=0"`
	MaxUnits    *int64          `json:"max_units,omitempty"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
}

// TariffSlabResponse tramo en respuestas.
type TariffSlabResponse struct {
	ID          string          `json:"id"`
	PlanID      string          `json:"plan_id"`
	MinUnits    int64           `json:"min_units"`
	MaxUnits    *int64          `json:"max_units,omitempty"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
}

// TariffResponse plan activo de un servicio con sus tramos ordenados.
type TariffResponse struct {
	Plan  TariffPlanResponse   `json:"plan"`
	Slabs []TariffSlabResponse `json:"slabs"`
}
