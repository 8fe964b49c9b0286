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

var _ repository.PasswordResetTokenRepository = (*PasswordResetTokenRepo)(nil)

// PasswordResetTokenRepo tokens de restablecimiento sobre PostgreSQL.
type PasswordResetTokenRepo struct {
	q Querier
}

// NewPasswordResetTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPasswordResetTokenRepository(q Querier) *PasswordResetTokenRepo {
	return &PasswordResetTokenRepo{q: q}
}

func (r *PasswordResetTokenRepo) Create(ctx context.Context, t *entity.PasswordResetToken) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO password_reset_tokens (id, email, token, expiry_date, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Email, t.Token, t.ExpiryDate, t.Used, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

func (r *PasswordResetTokenRepo) GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	var t entity.PasswordResetToken
	err := r.q.QueryRow(ctx, `
		SELECT id, email, token, expiry_date, used, created_at
		FROM password_reset_tokens WHERE token = $1`, token,
	).Scan(&t.ID, &t.Email, &t.Token, &t.ExpiryDate, &t.Used, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reset token: %w", err)
	}
	return &t, nil
}

func (r *PasswordResetTokenRepo) InvalidateUnusedByEmail(ctx context.Context, email string) error {
	_, err := r.q.Exec(ctx, `UPDATE password_reset_tokens SET used = TRUE WHERE email = $1 AND used = FALSE`, email)
	if err != nil {
		return fmt.Errorf("invalidate reset tokens: %w", err)
	}
	return nil
}

// MarkUsed consume el token con compare-and-set sobre used.
func (r *PasswordResetTokenRepo) MarkUsed(ctx context.Context, token string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE password_reset_tokens SET used = TRUE WHERE token = $1 AND used = FALSE`, token)
	if err != nil {
		return false, fmt.Errorf("mark reset token used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
