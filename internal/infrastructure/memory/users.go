package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.write(func() error {
		for _, existing := range r.s.users {
			if existing.Username == u.Username || existing.Email == u.Email {
				return domain.ErrDuplicate
			}
		}
		r.s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.write(func() error {
		if _, ok := r.s.users[u.ID]; !ok {
			return domain.ErrNotFound
		}
		r.s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }), nil
}

func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	r.read(func() {
		for _, u := range r.s.users {
			u := u
			out = append(out, &u)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	var found *entity.User
	r.read(func() {
		for _, u := range r.s.users {
			if match(u) {
				u := u
				found = &u
				return
			}
		}
	})
	return found
}
