package repository

import (
	"context"
	"time"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// BillFilter filtros opcionales del listado de facturas; se combinan con AND.
type BillFilter struct {
	Status     string
	Month      int
	Year       int
	ConsumerID string
}

// BillRepository define el puerto de persistencia para Bill.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	ExistsForPeriod(ctx context.Context, consumerID, utilityType string, month, year int) (bool, error)
	List(ctx context.Context, filter BillFilter) ([]*entity.Bill, error)
	// MarkPaid pasa GENERATED → PAID. Devuelve false si la factura ya no estaba GENERATED.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error)
}
