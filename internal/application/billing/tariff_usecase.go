package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
	"github.com/jhoicas/utility-backoffice-api/pkg/textnorm"
)

const planStatusDeactivated = "deactivated"

// TariffUseCase administra planes tarifarios y sus tramos.
type TariffUseCase struct {
	planRepo repository.TariffPlanRepository
	slabRepo repository.TariffSlabRepository
}

// NewTariffUseCase construye el caso de uso.
func NewTariffUseCase(planRepo repository.TariffPlanRepository, slabRepo repository.TariffSlabRepository) *TariffUseCase {
	return &TariffUseCase{planRepo: planRepo, slabRepo: slabRepo}
}

// ParseUtilityType normaliza y valida un tipo de servicio.
func ParseUtilityType(s string) (string, error) {
	u := textnorm.Enum(s)
	if !entity.IsValidUtilityType(u) {
		return "", fmt.Errorf("%w: tipo de servicio desconocido %q (ELECTRICITY, WATER, GAS)", domain.ErrInvalidInput, s)
	}
	return u, nil
}

// CreatePlan crea un plan activo. (UtilityType, PlanCode) debe ser único.
func (uc *TariffUseCase) CreatePlan(ctx context.Context, in dto.CreateTariffPlanRequest) (*dto.TariffPlanResponse, error) {
	utility, err := ParseUtilityType(in.UtilityType)
	if err != nil {
		return nil, err
	}
	code := textnorm.Code(in.PlanCode)
	if code == "" {
		return nil, fmt.Errorf("%w: plan_code es obligatorio", domain.ErrInvalidInput)
	}
	if in.FixedCharge.IsNegative() {
		return nil, fmt.Errorf("%w: fixed_charge no puede ser negativo", domain.ErrInvalidInput)
	}
	exists, err := uc.planRepo.ExistsByUtilityAndCode(ctx, utility, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrTariffPlanExists
	}

	plan := &entity.TariffPlan{
		ID:          uuid.New().String(),
		UtilityType: utility,
		PlanCode:    code,
		Description: strings.TrimSpace(in.Description),
		FixedCharge: in.FixedCharge.Round(2),
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.planRepo.Create(ctx, plan); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrTariffPlanExists
		}
		return nil, err
	}
	out := toPlanResponse(plan)
	return &out, nil
}

// DeactivatePlan desactiva el plan. Desactivar un plan ya inactivo no es error.
func (uc *TariffUseCase) DeactivatePlan(ctx context.Context, id string) (*dto.DeactivatePlanResponse, error) {
	plan, err := uc.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrTariffPlanNotFound
	}
	if plan.Active {
		plan.Active = false
		if err := uc.planRepo.Update(ctx, plan); err != nil {
			return nil, err
		}
	}
	return &dto.DeactivatePlanResponse{
		ID:       plan.ID,
		PlanCode: plan.PlanCode,
		Status:   planStatusDeactivated,
		Message:  fmt.Sprintf("plan %s desactivado", plan.PlanCode),
	}, nil
}

// GetPlans lista planes: active=true solo activos, false solo inactivos, nil todos.
func (uc *TariffUseCase) GetPlans(ctx context.Context, active *bool) ([]dto.TariffPlanResponse, error) {
	plans, err := uc.planRepo.List(ctx, active)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TariffPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(p))
	}
	return out, nil
}

// GetActivePlans atajo de GetPlans(true).
func (uc *TariffUseCase) GetActivePlans(ctx context.Context) ([]dto.TariffPlanResponse, error) {
	active := true
	return uc.GetPlans(ctx, &active)
}

// GetTariffsByUtility devuelve el plan activo del servicio con sus tramos ordenados.
func (uc *TariffUseCase) GetTariffsByUtility(ctx context.Context, utilityType string) (*dto.TariffResponse, error) {
	utility, err := ParseUtilityType(utilityType)
	if err != nil {
		return nil, err
	}
	plan, err := uc.planRepo.GetActiveByUtility(ctx, utility)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrTariffPlanNotFound
	}
	slabs, err := uc.slabRepo.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.TariffResponse{Plan: toPlanResponse(plan), Slabs: make([]dto.TariffSlabResponse, 0, len(slabs))}
	for _, s := range slabs {
		out.Slabs = append(out.Slabs, toSlabResponse(s))
	}
	return out, nil
}

// CreateSlab agrega un tramo al plan. El rango no puede solaparse con otro del mismo plan.
func (uc *TariffUseCase) CreateSlab(ctx context.Context, in dto.CreateTariffSlabRequest) (*dto.TariffSlabResponse, error) {
	if in.MinUnits < 0 {
		return nil, fmt.Errorf("%w: min_units no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.MaxUnits != nil && *in.MaxUnits <= in.MinUnits {
		return nil, fmt.Errorf("%w: max_units debe ser mayor que min_units", domain.ErrInvalidInput)
	}
	if in.RatePerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: rate_per_unit no puede ser negativo", domain.ErrInvalidInput)
	}
	plan, err := uc.planRepo.GetByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrTariffPlanNotFound
	}

	slab := &entity.TariffSlab{
		ID:          uuid.New().String(),
		PlanID:      plan.ID,
		MinUnits:    in.MinUnits,
		MaxUnits:    in.MaxUnits,
		RatePerUnit: in.RatePerUnit,
		CreatedAt:   time.Now(),
	}
	existing, err := uc.slabRepo.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	for _, s := range existing {
		if slab.Overlaps(s) {
			return nil, domain.ErrTariffSlabOverlap
		}
	}
	if err := uc.slabRepo.Create(ctx, slab); err != nil {
		return nil, err
	}
	out := toSlabResponse(slab)
	return &out, nil
}

// DeleteSlab borra físicamente el tramo y lo devuelve.
func (uc *TariffUseCase) DeleteSlab(ctx context.Context, id string) (*dto.TariffSlabResponse, error) {
	slab, err := uc.slabRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slab == nil {
		return nil, domain.ErrTariffSlabNotFound
	}
	if err := uc.slabRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTariffSlabNotFound
		}
		return nil, err
	}
	out := toSlabResponse(slab)
	return &out, nil
}
