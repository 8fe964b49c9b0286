package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.AccountRequestRepository = (*AccountRequestRepo)(nil)

const accountRequestColumns = `id, name, email, phone, address, status, created_at, reviewed_at`

// AccountRequestRepo solicitudes de cuenta sobre PostgreSQL.
type AccountRequestRepo struct {
	q Querier
}

// NewAccountRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRequestRepository(q Querier) *AccountRequestRepo {
	return &AccountRequestRepo{q: q}
}

func (r *AccountRequestRepo) Create(ctx context.Context, req *entity.AccountRequest) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO account_requests (`+accountRequestColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		req.ID, req.Name, req.Email, req.Phone, req.Address, req.Status, req.CreatedAt, req.ReviewedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account request: %w", err)
	}
	return nil
}

func (r *AccountRequestRepo) GetByID(ctx context.Context, id string) (*entity.AccountRequest, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	req, err := scanAccountRequest(r.q.QueryRow(ctx,
		`SELECT `+accountRequestColumns+` FROM account_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account request: %w", err)
	}
	return req, nil
}

func (r *AccountRequestRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM account_requests WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists account request: %w", err)
	}
	return exists, nil
}

func (r *AccountRequestRepo) ListByStatus(ctx context.Context, status string) ([]*entity.AccountRequest, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+accountRequestColumns+` FROM account_requests WHERE status = $1 ORDER BY created_at`, status)
	if err != nil {
		return nil, fmt.Errorf("list account requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountRequest
	for rows.Next() {
		req, err := scanAccountRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// TransitionStatus compare-and-set sobre status; el perdedor de una carrera no afecta filas.
func (r *AccountRequestRepo) TransitionStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	id, ok := parseID(id)
	if !ok {
		return false, nil
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE account_requests SET status = $3, reviewed_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, at,
	)
	if err != nil {
		return false, fmt.Errorf("transition account request: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanAccountRequest(row pgx.Row) (*entity.AccountRequest, error) {
	var req entity.AccountRequest
	if err := row.Scan(&req.ID, &req.Name, &req.Email, &req.Phone, &req.Address, &req.Status,
		&req.CreatedAt, &req.ReviewedAt); err != nil {
		return nil, err
	}
	return &req, nil
}
