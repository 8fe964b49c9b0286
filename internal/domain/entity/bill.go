package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. Solo avanza GENERATED → PAID.
const (
	BillStatusGenerated = "GENERATED"
	BillStatusPaid      = "PAID"
)

// Bill factura de consumo de un período (mes/año) para un consumidor y servicio.
type Bill struct {
	ID            string
	ConsumerID    string
	UtilityType   string
	PlanID        string
	Month         int
	Year          int
	UnitsConsumed int64
	EnergyCharge  decimal.Decimal // suma de los tramos
	FixedCharge   decimal.Decimal
	Amount        decimal.Decimal // EnergyCharge + FixedCharge
	Status        string
	GeneratedAt   time.Time
	DueDate       time.Time
	PaidAt        *time.Time
	Lines         []BillLine // desglose por tramo al momento de facturar
}

// BillLine cargo de un tramo dentro de la factura. Se congela al generar la factura
// para que borrar o cambiar tramos después no altere facturas emitidas.
type BillLine struct {
	MinUnits    int64           `json:"min_units"`
	MaxUnits    *int64          `json:"max_units,omitempty"`
	Units       int64           `json:"units"`
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	Amount      decimal.Decimal `json:"amount"`
}

// IsPaid indica si la factura ya está pagada.
func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}
