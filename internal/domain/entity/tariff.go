package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de servicio facturables.
const (
	UtilityElectricity = "ELECTRICITY"
	UtilityWater       = "WATER"
	UtilityGas         = "GAS"
)

// UtilityTypes lista los tipos de servicio soportados.
var UtilityTypes = []string{UtilityElectricity, UtilityWater, UtilityGas}

// IsValidUtilityType indica si u es un tipo de servicio conocido.
func IsValidUtilityType(u string) bool {
	for _, t := range UtilityTypes {
		if t == u {
			return true
		}
	}
	return false
}

// TariffPlan plan tarifario de un servicio. (UtilityType, PlanCode) es único.
// Se desactiva, nunca se borra.
type TariffPlan struct {
	ID          string
	UtilityType string
	PlanCode    string
	Description string
	FixedCharge decimal.Decimal // cargo fijo por factura; cero si el plan no lo tiene
	Active      bool
	CreatedAt   time.Time
}

// TariffSlab tramo de consumo de un plan: [MinUnits, MaxUnits) a RatePerUnit.
// MaxUnits nil significa tramo abierto. Se borra físicamente.
type TariffSlab struct {
	ID          string
	PlanID      string
	MinUnits    int64
	MaxUnits    *int64
	RatePerUnit decimal.Decimal
	CreatedAt   time.Time
}

// Overlaps indica si dos tramos comparten algún rango de unidades.
func (s *TariffSlab) Overlaps(o *TariffSlab) bool {
	sEndsBefore := s.MaxUnits != nil && *s.MaxUnits <= o.MinUnits
	oEndsBefore := o.MaxUnits != nil && *o.MaxUnits <= s.MinUnits
	return !sEndsBefore && !oEndsBefore
}
