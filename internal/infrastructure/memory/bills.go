package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementa repository.BillRepository.
type BillRepo struct{ view }

func (r *BillRepo) Create(_ context.Context, b *entity.Bill) error {
	return r.write(func() error {
		if r.periodTaken(b.ConsumerID, b.UtilityType, b.Month, b.Year) {
			return domain.ErrDuplicate
		}
		r.s.bills[b.ID] = *b
		return nil
	})
}

func (r *BillRepo) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	var found *entity.Bill
	r.read(func() {
		if b, ok := r.s.bills[id]; ok {
			found = &b
		}
	})
	return found, nil
}

func (r *BillRepo) ExistsForPeriod(_ context.Context, consumerID, utilityType string, month, year int) (bool, error) {
	var exists bool
	r.read(func() { exists = r.periodTaken(consumerID, utilityType, month, year) })
	return exists, nil
}

func (r *BillRepo) periodTaken(consumerID, utilityType string, month, year int) bool {
	for _, b := range r.s.bills {
		if b.ConsumerID == consumerID && b.UtilityType == utilityType && b.Month == month && b.Year == year {
			return true
		}
	}
	return false
}

func (r *BillRepo) List(_ context.Context, f repository.BillFilter) ([]*entity.Bill, error) {
	var out []*entity.Bill
	r.read(func() {
		for _, b := range r.s.bills {
			if !matchesFilter(b, f) {
				continue
			}
			b := b
			out = append(out, &b)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	return out, nil
}

func matchesFilter(b entity.Bill, f repository.BillFilter) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.Month != 0 && b.Month != f.Month {
		return false
	}
	if f.Year != 0 && b.Year != f.Year {
		return false
	}
	if f.ConsumerID != "" && b.ConsumerID != f.ConsumerID {
		return false
	}
	return true
}

func (r *BillRepo) MarkPaid(_ context.Context, id string, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.write(func() error {
		b, ok := r.s.bills[id]
		if !ok || b.Status != entity.BillStatusGenerated {
			return nil
		}
		b.Status = entity.BillStatusPaid
		b.PaidAt = &paidAt
		r.s.bills[id] = b
		changed = true
		return nil
	})
	return changed, err
}
