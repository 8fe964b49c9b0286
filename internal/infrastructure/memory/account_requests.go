package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.AccountRequestRepository = (*AccountRequestRepo)(nil)

// AccountRequestRepo implementa repository.AccountRequestRepository.
type AccountRequestRepo struct{ view }

func (r *AccountRequestRepo) Create(_ context.Context, req *entity.AccountRequest) error {
	return r.write(func() error {
		for _, existing := range r.s.requests {
			if existing.Email == req.Email {
				return domain.ErrDuplicate
			}
		}
		r.s.requests[req.ID] = *req
		return nil
	})
}

func (r *AccountRequestRepo) GetByID(_ context.Context, id string) (*entity.AccountRequest, error) {
	var found *entity.AccountRequest
	r.read(func() {
		if req, ok := r.s.requests[id]; ok {
			found = &req
		}
	})
	return found, nil
}

func (r *AccountRequestRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	var exists bool
	r.read(func() {
		for _, req := range r.s.requests {
			if req.Email == email {
				exists = true
				return
			}
		}
	})
	return exists, nil
}

func (r *AccountRequestRepo) ListByStatus(_ context.Context, status string) ([]*entity.AccountRequest, error) {
	var out []*entity.AccountRequest
	r.read(func() {
		for _, req := range r.s.requests {
			if req.Status == status {
				req := req
				out = append(out, &req)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *AccountRequestRepo) TransitionStatus(_ context.Context, id, from, to string, at time.Time) (bool, error) {
	var changed bool
	err := r.write(func() error {
		req, ok := r.s.requests[id]
		if !ok || req.Status != from {
			return nil
		}
		req.Status = to
		req.ReviewedAt = &at
		r.s.requests[id] = req
		changed = true
		return nil
	})
	return changed, err
}
