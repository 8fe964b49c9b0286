package repository

import (
	"context"

	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// ConsumerRepository define el puerto de persistencia para Consumer.
type ConsumerRepository interface {
	Create(ctx context.Context, consumer *entity.Consumer) error
	Update(ctx context.Context, consumer *entity.Consumer) error
	GetByID(ctx context.Context, id string) (*entity.Consumer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Consumer, error)
	GetByMobileNumber(ctx context.Context, mobile string) (*entity.Consumer, error)
	List(ctx context.Context) ([]*entity.Consumer, error)
}
