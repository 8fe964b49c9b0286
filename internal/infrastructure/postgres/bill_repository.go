package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

const billColumns = `id, consumer_id, utility_type, plan_id, month, year, units_consumed, energy_charge,
	fixed_charge, amount, status, lines, generated_at, due_date, paid_at`

// BillRepo implementación del puerto BillRepository. El desglose por tramo se guarda en JSONB.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

// Create persiste la factura. La restricción única del período devuelve domain.ErrDuplicate.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	lines := b.Lines
	if lines == nil {
		lines = []entity.BillLine{}
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal bill lines: %w", err)
	}
	var planID *string
	if b.PlanID != "" {
		planID = &b.PlanID
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO bills (`+billColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		b.ID, b.ConsumerID, b.UtilityType, planID, b.Month, b.Year, b.UnitsConsumed, b.EnergyCharge,
		b.FixedCharge, b.Amount, b.Status, linesJSON, b.GeneratedAt, b.DueDate, b.PaidAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

func (r *BillRepo) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	b, err := scanBill(r.q.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

func (r *BillRepo) ExistsForPeriod(ctx context.Context, consumerID, utilityType string, month, year int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM bills
			WHERE consumer_id = $1 AND utility_type = $2 AND month = $3 AND year = $4
		)`, consumerID, utilityType, month, year,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists bill for period: %w", err)
	}
	return exists, nil
}

// List aplica los filtros presentes; los vacíos o en cero se ignoran.
func (r *BillRepo) List(ctx context.Context, f repository.BillFilter) ([]*entity.Bill, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Month != 0 {
		add("month = $%d", f.Month)
	}
	if f.Year != 0 {
		add("year = $%d", f.Year)
	}
	if f.ConsumerID != "" {
		consumerID, ok := parseID(f.ConsumerID)
		if !ok {
			return nil, nil
		}
		add("consumer_id = $%d", consumerID)
	}

	query := `SELECT ` + billColumns + ` FROM bills`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY year DESC, month DESC, generated_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// MarkPaid compare-and-set GENERATED → PAID.
func (r *BillRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	id, ok := parseID(id)
	if !ok {
		return false, nil
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE bills SET status = $2, paid_at = $3 WHERE id = $1 AND status = $4`,
		id, entity.BillStatusPaid, paidAt, entity.BillStatusGenerated,
	)
	if err != nil {
		return false, fmt.Errorf("mark bill paid: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var (
		b         entity.Bill
		planID    *string
		linesJSON []byte
	)
	if err := row.Scan(&b.ID, &b.ConsumerID, &b.UtilityType, &planID, &b.Month, &b.Year, &b.UnitsConsumed,
		&b.EnergyCharge, &b.FixedCharge, &b.Amount, &b.Status, &linesJSON, &b.GeneratedAt, &b.DueDate,
		&b.PaidAt); err != nil {
		return nil, err
	}
	if planID != nil {
		b.PlanID = *planID
	}
	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &b.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal bill lines: %w", err)
		}
	}
	return &b, nil
}
