package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.ConsumerRepository = (*ConsumerRepo)(nil)

// ConsumerRepo implementa repository.ConsumerRepository.
type ConsumerRepo struct{ view }

func (r *ConsumerRepo) Create(_ context.Context, c *entity.Consumer) error {
	return r.write(func() error {
		if r.conflicts(c) {
			return domain.ErrDuplicate
		}
		r.s.consumers[c.ID] = *c
		return nil
	})
}

func (r *ConsumerRepo) Update(_ context.Context, c *entity.Consumer) error {
	return r.write(func() error {
		if _, ok := r.s.consumers[c.ID]; !ok {
			return domain.ErrNotFound
		}
		if r.conflicts(c) {
			return domain.ErrDuplicate
		}
		r.s.consumers[c.ID] = *c
		return nil
	})
}

// conflicts se llama con el lock tomado.
func (r *ConsumerRepo) conflicts(c *entity.Consumer) bool {
	for id, existing := range r.s.consumers {
		if id == c.ID {
			continue
		}
		if existing.Email == c.Email || existing.MobileNumber == c.MobileNumber {
			return true
		}
	}
	return false
}

func (r *ConsumerRepo) GetByID(_ context.Context, id string) (*entity.Consumer, error) {
	return r.find(func(c entity.Consumer) bool { return c.ID == id }), nil
}

func (r *ConsumerRepo) GetByEmail(_ context.Context, email string) (*entity.Consumer, error) {
	return r.find(func(c entity.Consumer) bool { return c.Email == email }), nil
}

func (r *ConsumerRepo) GetByMobileNumber(_ context.Context, mobile string) (*entity.Consumer, error) {
	return r.find(func(c entity.Consumer) bool { return c.MobileNumber == mobile }), nil
}

func (r *ConsumerRepo) List(_ context.Context) ([]*entity.Consumer, error) {
	var out []*entity.Consumer
	r.read(func() {
		for _, c := range r.s.consumers {
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *ConsumerRepo) find(match func(entity.Consumer) bool) *entity.Consumer {
	var found *entity.Consumer
	r.read(func() {
		for _, c := range r.s.consumers {
			if match(c) {
				c := c
				found = &c
				return
			}
		}
	})
	return found
}
