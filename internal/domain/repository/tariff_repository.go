package repository

import (
	"context"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// TariffPlanRepository puerto de persistencia para planes tarifarios.
type TariffPlanRepository interface {
	Create(ctx context.Context, plan *entity.TariffPlan) error
	Update(ctx context.Context, plan *entity.TariffPlan) error
	GetByID(ctx context.Context, id string) (*entity.TariffPlan, error)
	ExistsByUtilityAndCode(ctx context.Context, utilityType, planCode string) (bool, error)
	// List devuelve los planes filtrados por estado; active nil devuelve todos.
	List(ctx context.Context, active *bool) ([]*entity.TariffPlan, error)
	// GetActiveByUtility devuelve el plan activo más reciente del servicio.
	GetActiveByUtility(ctx context.Context, utilityType string) (*entity.TariffPlan, error)
}

// TariffSlabRepository puerto de persistencia para tramos. El borrado es físico.
type TariffSlabRepository interface {
	Create(ctx context.Context, slab *entity.TariffSlab) error
	GetByID(ctx context.Context, id string) (*entity.TariffSlab, error)
	// ListByPlan devuelve los tramos ordenados por MinUnits.
	ListByPlan(ctx context.Context, planID string) ([]*entity.TariffSlab, error)
	Delete(ctx context.Context, id string) error
}
