package memory

import (
	"context"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.PasswordResetTokenRepository = (*TokenRepo)(nil)

// TokenRepo implementa repository.PasswordResetTokenRepository.
type TokenRepo struct{ view }

func (r *TokenRepo) Create(_ context.Context, t *entity.PasswordResetToken) error {
	return r.write(func() error {
		if _, ok := r.s.tokens[t.Token]; ok {
			return domain.ErrDuplicate
		}
		r.s.tokens[t.Token] = *t
		return nil
	})
}

func (r *TokenRepo) GetByToken(_ context.Context, token string) (*entity.PasswordResetToken, error) {
	var found *entity.PasswordResetToken
	r.read(func() {
		if t, ok := r.s.tokens[token]; ok {
			found = &t
		}
	})
	return found, nil
}

func (r *TokenRepo) InvalidateUnusedByEmail(_ context.Context, email string) error {
	return r.write(func() error {
		for k, t := range r.s.tokens {
			if t.Email == email && !t.Used {
				t.Used = true
				r.s.tokens[k] = t
			}
		}
		return nil
	})
}

func (r *TokenRepo) MarkUsed(_ context.Context, token string) (bool, error) {
	var consumed bool
	err := r.write(func() error {
		t, ok := r.s.tokens[token]
		if !ok || t.Used {
			return nil
		}
		t.Used = true
		r.s.tokens[token] = t
		consumed = true
		return nil
	})
	return consumed, err
}
