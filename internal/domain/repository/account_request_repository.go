package repository

import (
	"context"
	"time"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// AccountRequestRepository puerto de persistencia para solicitudes de cuenta.
type AccountRequestRepository interface {
	Create(ctx context.Context, req *entity.AccountRequest) error
	GetByID(ctx context.Context, id string) (*entity.AccountRequest, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.AccountRequest, error)
	// TransitionStatus cambia el estado solo si el actual es from (compare-and-set).
	// Devuelve false si otra revisión ganó la carrera.
	TransitionStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error)
}
