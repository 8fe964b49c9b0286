package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var (
	_ repository.TariffPlanRepository = (*TariffPlanRepo)(nil)
	_ repository.TariffSlabRepository = (*TariffSlabRepo)(nil)
)

// TariffPlanRepo implementa repository.TariffPlanRepository.
type TariffPlanRepo struct{ view }

func (r *TariffPlanRepo) Create(_ context.Context, p *entity.TariffPlan) error {
	return r.write(func() error {
		for _, existing := range r.s.plans {
			if existing.UtilityType == p.UtilityType && existing.PlanCode == p.PlanCode {
				return domain.ErrDuplicate
			}
		}
		r.s.plans[p.ID] = *p
		return nil
	})
}

func (r *TariffPlanRepo) Update(_ context.Context, p *entity.TariffPlan) error {
	return r.write(func() error {
		if _, ok := r.s.plans[p.ID]; !ok {
			return domain.ErrNotFound
		}
		r.s.plans[p.ID] = *p
		return nil
	})
}

func (r *TariffPlanRepo) GetByID(_ context.Context, id string) (*entity.TariffPlan, error) {
	var found *entity.TariffPlan
	r.read(func() {
		if p, ok := r.s.plans[id]; ok {
			found = &p
		}
	})
	return found, nil
}

func (r *TariffPlanRepo) ExistsByUtilityAndCode(_ context.Context, utilityType, planCode string) (bool, error) {
	var exists bool
	r.read(func() {
		for _, p := range r.s.plans {
			if p.UtilityType == utilityType && p.PlanCode == planCode {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r *TariffPlanRepo) List(_ context.Context, active *bool) ([]*entity.TariffPlan, error) {
	var out []*entity.TariffPlan
	r.read(func() {
		for _, p := range r.s.plans {
			if active != nil && p.Active != *active {
				continue
			}
			p := p
			out = append(out, &p)
		}
	})
	sortPlans(out)
	return out, nil
}

func (r *TariffPlanRepo) GetActiveByUtility(_ context.Context, utilityType string) (*entity.TariffPlan, error) {
	var latest *entity.TariffPlan
	r.read(func() {
		for _, p := range r.s.plans {
			if !p.Active || p.UtilityType != utilityType {
				continue
			}
			if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
				p := p
				latest = &p
			}
		}
	})
	return latest, nil
}

func sortPlans(plans []*entity.TariffPlan) {
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].UtilityType != plans[j].UtilityType {
			return plans[i].UtilityType < plans[j].UtilityType
		}
		return plans[i].PlanCode < plans[j].PlanCode
	})
}

// TariffSlabRepo implementa repository.TariffSlabRepository.
type TariffSlabRepo struct{ view }

func (r *TariffSlabRepo) Create(_ context.Context, s *entity.TariffSlab) error {
	return r.write(func() error {
		r.s.slabs[s.ID] = cloneSlab(*s)
		return nil
	})
}

func (r *TariffSlabRepo) GetByID(_ context.Context, id string) (*entity.TariffSlab, error) {
	var found *entity.TariffSlab
	r.read(func() {
		if s, ok := r.s.slabs[id]; ok {
			c := cloneSlab(s)
			found = &c
		}
	})
	return found, nil
}

func (r *TariffSlabRepo) ListByPlan(_ context.Context, planID string) ([]*entity.TariffSlab, error) {
	var out []*entity.TariffSlab
	r.read(func() {
		for _, s := range r.s.slabs {
			if s.PlanID == planID {
				c := cloneSlab(s)
				out = append(out, &c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].MinUnits < out[j].MinUnits })
	return out, nil
}

func (r *TariffSlabRepo) Delete(_ context.Context, id string) error {
	return r.write(func() error {
		if _, ok := r.s.slabs[id]; !ok {
			return domain.ErrNotFound
		}
		delete(r.s.slabs, id)
		return nil
	})
}

func cloneSlab(s entity.TariffSlab) entity.TariffSlab {
	if s.MaxUnits != nil {
		max := *s.MaxUnits
		s.MaxUnits = &max
	}
	return s
}
