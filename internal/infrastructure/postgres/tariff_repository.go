package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var (
	_ repository.TariffPlanRepository = (*TariffPlanRepo)(nil)
	_ repository.TariffSlabRepository = (*TariffSlabRepo)(nil)
)

const tariffPlanColumns = `id, utility_type, plan_code, description, fixed_charge, active, created_at`

// TariffPlanRepo planes tarifarios sobre PostgreSQL.
type TariffPlanRepo struct {
	q Querier
}

// NewTariffPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTariffPlanRepository(q Querier) *TariffPlanRepo {
	return &TariffPlanRepo{q: q}
}

func (r *TariffPlanRepo) Create(ctx context.Context, p *entity.TariffPlan) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO tariff_plans (`+tariffPlanColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.UtilityType, p.PlanCode, p.Description, p.FixedCharge, p.Active, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tariff plan: %w", err)
	}
	return nil
}

func (r *TariffPlanRepo) Update(ctx context.Context, p *entity.TariffPlan) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE tariff_plans SET description = $2, fixed_charge = $3, active = $4 WHERE id = $1`,
		p.ID, p.Description, p.FixedCharge, p.Active,
	)
	if err != nil {
		return fmt.Errorf("update tariff plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TariffPlanRepo) GetByID(ctx context.Context, id string) (*entity.TariffPlan, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	p, err := scanTariffPlan(r.q.QueryRow(ctx, `SELECT `+tariffPlanColumns+` FROM tariff_plans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tariff plan: %w", err)
	}
	return p, nil
}

func (r *TariffPlanRepo) ExistsByUtilityAndCode(ctx context.Context, utilityType, planCode string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tariff_plans WHERE utility_type = $1 AND plan_code = $2)`,
		utilityType, planCode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists tariff plan: %w", err)
	}
	return exists, nil
}

func (r *TariffPlanRepo) List(ctx context.Context, active *bool) ([]*entity.TariffPlan, error) {
	query := `SELECT ` + tariffPlanColumns + ` FROM tariff_plans`
	var args []any
	if active != nil {
		query += ` WHERE active = $1`
		args = append(args, *active)
	}
	query += ` ORDER BY utility_type, plan_code`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tariff plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.TariffPlan
	for rows.Next() {
		p, err := scanTariffPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tariff plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *TariffPlanRepo) GetActiveByUtility(ctx context.Context, utilityType string) (*entity.TariffPlan, error) {
	p, err := scanTariffPlan(r.q.QueryRow(ctx, `
		SELECT `+tariffPlanColumns+` FROM tariff_plans
		WHERE utility_type = $1 AND active = TRUE
		ORDER BY created_at DESC
		LIMIT 1`, utilityType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active tariff plan: %w", err)
	}
	return p, nil
}

func scanTariffPlan(row pgx.Row) (*entity.TariffPlan, error) {
	var p entity.TariffPlan
	if err := row.Scan(&p.ID, &p.UtilityType, &p.PlanCode, &p.Description, &p.FixedCharge,
		&p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

const tariffSlabColumns = `id, plan_id, min_units, max_units, rate_per_unit, created_at`

// TariffSlabRepo tramos de consumo sobre PostgreSQL.
type TariffSlabRepo struct {
	q Querier
}

// NewTariffSlabRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTariffSlabRepository(q Querier) *TariffSlabRepo {
	return &TariffSlabRepo{q: q}
}

func (r *TariffSlabRepo) Create(ctx context.Context, s *entity.TariffSlab) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO tariff_slabs (`+tariffSlabColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.PlanID, s.MinUnits, s.MaxUnits, s.RatePerUnit, s.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert tariff slab: %w", err)
	}
	return nil
}

func (r *TariffSlabRepo) GetByID(ctx context.Context, id string) (*entity.TariffSlab, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	s, err := scanTariffSlab(r.q.QueryRow(ctx, `SELECT `+tariffSlabColumns+` FROM tariff_slabs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tariff slab: %w", err)
	}
	return s, nil
}

func (r *TariffSlabRepo) ListByPlan(ctx context.Context, planID string) ([]*entity.TariffSlab, error) {
	planID, ok := parseID(planID)
	if !ok {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+tariffSlabColumns+` FROM tariff_slabs WHERE plan_id = $1 ORDER BY min_units`, planID)
	if err != nil {
		return nil, fmt.Errorf("list tariff slabs: %w", err)
	}
	defer rows.Close()
	var list []*entity.TariffSlab
	for rows.Next() {
		s, err := scanTariffSlab(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tariff slab: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *TariffSlabRepo) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM tariff_slabs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tariff slab: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTariffSlab(row pgx.Row) (*entity.TariffSlab, error) {
	var s entity.TariffSlab
	if err := row.Scan(&s.ID, &s.PlanID, &s.MinUnits, &s.MaxUnits, &s.RatePerUnit, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
