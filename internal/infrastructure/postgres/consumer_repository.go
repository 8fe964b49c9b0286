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

var _ repository.ConsumerRepository = (*ConsumerRepo)(nil)

const consumerColumns = `id, full_name, email, mobile_number, address, active, created_at, updated_at`

// ConsumerRepo implementación del puerto ConsumerRepository.
type ConsumerRepo struct {
	q Querier
}

// NewConsumerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumerRepository(q Querier) *ConsumerRepo {
	return &ConsumerRepo{q: q}
}

func (r *ConsumerRepo) Create(ctx context.Context, c *entity.Consumer) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO consumers (`+consumerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.FullName, c.Email, c.MobileNumber, c.Address, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert consumer: %w", err)
	}
	return nil
}

func (r *ConsumerRepo) Update(ctx context.Context, c *entity.Consumer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE consumers SET full_name = $2, email = $3, mobile_number = $4, address = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.FullName, c.Email, c.MobileNumber, c.Address, c.Active, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update consumer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ConsumerRepo) GetByID(ctx context.Context, id string) (*entity.Consumer, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, "id = $1", id)
}

func (r *ConsumerRepo) GetByEmail(ctx context.Context, email string) (*entity.Consumer, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *ConsumerRepo) GetByMobileNumber(ctx context.Context, mobile string) (*entity.Consumer, error) {
	return r.findOne(ctx, "mobile_number = $1", mobile)
}

func (r *ConsumerRepo) List(ctx context.Context) ([]*entity.Consumer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+consumerColumns+` FROM consumers ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("list consumers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consumer
	for rows.Next() {
		c, err := scanConsumer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ConsumerRepo) findOne(ctx context.Context, where string, arg any) (*entity.Consumer, error) {
	c, err := scanConsumer(r.q.QueryRow(ctx, `SELECT `+consumerColumns+` FROM consumers WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumer: %w", err)
	}
	return c, nil
}

func scanConsumer(row pgx.Row) (*entity.Consumer, error) {
	var c entity.Consumer
	if err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.MobileNumber, &c.Address, &c.Active,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
