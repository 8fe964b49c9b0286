// Package billing contiene la lógica de dominio pura del cálculo tarifario.
package billing

import (
	"sort"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SlabCharge detalle del cargo aplicado en un tramo.
type SlabCharge struct {
	MinUnits    int64
	MaxUnits    *int64
	Units       int64
	RatePerUnit decimal.Decimal
	Amount      decimal.Decimal
}

// TieredCharge calcula el cargo por consumo aplicando los tramos de forma acumulativa:
// cada tarifa solo se aplica a la porción de unidades dentro de su tramo.
// El consumo que supera el último tramo acotado se cobra a la tarifa de ese último tramo.
// Las unidades que caen en un hueco entre tramos no contiguos no tienen tarifa y no se cobran.
//
//	Ej: [0–100 @ 5, 100–300 @ 7], consumo 150 → 100×5 + 50×7 = 850
func TieredCharge(units int64, slabs []*entity.TariffSlab) (decimal.Decimal, []SlabCharge) {
	if units <= 0 || len(slabs) == 0 {
		return decimal.Zero, nil
	}
	ordered := make([]*entity.TariffSlab, len(slabs))
	copy(ordered, slabs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].MinUnits < ordered[j].MinUnits })

	total := decimal.Zero
	var lines []SlabCharge
	var covered int64
	for _, s := range ordered {
		if units <= s.MinUnits {
			break
		}
		upper := units
		if s.MaxUnits != nil && *s.MaxUnits < upper {
			upper = *s.MaxUnits
		}
		portion := upper - s.MinUnits
		if portion <= 0 {
			continue
		}
		amount := s.RatePerUnit.Mul(decimal.NewFromInt(portion))
		total = total.Add(amount)
		lines = append(lines, SlabCharge{
			MinUnits: s.MinUnits, MaxUnits: s.MaxUnits,
			Units: portion, RatePerUnit: s.RatePerUnit, Amount: amount,
		})
		if upper > covered {
			covered = upper
		}
	}

	// Excedente sobre el último tramo acotado.
	last := ordered[len(ordered)-1]
	if last.MaxUnits != nil && units > covered && covered >= *last.MaxUnits {
		excess := units - covered
		amount := last.RatePerUnit.Mul(decimal.NewFromInt(excess))
		total = total.Add(amount)
		lines = append(lines, SlabCharge{
			MinUnits: covered, Units: excess, RatePerUnit: last.RatePerUnit, Amount: amount,
		})
	}
	return total.Round(2), lines
}
