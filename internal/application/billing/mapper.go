package billing

import (
	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

func toPlanResponse(p *entity.TariffPlan) dto.TariffPlanResponse {
	return dto.TariffPlanResponse{
		ID:          p.ID,
		UtilityType: p.UtilityType,
		PlanCode:    p.PlanCode,
		Description: p.Description,
		FixedCharge: p.FixedCharge,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

func toSlabResponse(s *entity.TariffSlab) dto.TariffSlabResponse {
	return dto.TariffSlabResponse{
		ID:          s.ID,
		PlanID:      s.PlanID,
		MinUnits:    s.MinUnits,
		MaxUnits:    s.MaxUnits,
		RatePerUnit: s.RatePerUnit,
	}
}

// ToBillResponse convierte la factura en DTO incluyendo el desglose por tramo.
func ToBillResponse(b *entity.Bill) *dto.BillResponse {
	out := &dto.BillResponse{
		ID:            b.ID,
		ConsumerID:    b.ConsumerID,
		UtilityType:   b.UtilityType,
		PlanID:        b.PlanID,
		Month:         b.Month,
		Year:          b.Year,
		UnitsConsumed: b.UnitsConsumed,
		EnergyCharge:  b.EnergyCharge,
		FixedCharge:   b.FixedCharge,
		Amount:        b.Amount,
		Status:        b.Status,
		GeneratedAt:   b.GeneratedAt,
		DueDate:       b.DueDate,
		PaidAt:        b.PaidAt,
	}
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, dto.BillLineResponse{
			MinUnits:    l.MinUnits,
			MaxUnits:    l.MaxUnits,
			Units:       l.Units,
			RatePerUnit: l.RatePerUnit,
			Amount:      l.Amount,
		})
	}
	return out
}
