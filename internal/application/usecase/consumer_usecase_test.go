package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/utility-backoffice-api/internal/application/dto"
	"github.com/jhoicas/utility-backoffice-api/internal/application/usecase"
	"github.com/jhoicas/utility-backoffice-api/internal/domain"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/memory"
)

func newConsumerUC() *usecase.ConsumerUseCase {
	return usecase.NewConsumerUseCase(memory.NewStore().Consumers())
}

func createConsumer(t *testing.T, uc *usecase.ConsumerUseCase, email, mobile string) *dto.ConsumerResponse {
	t.Helper()
	c, err := uc.Create(context.Background(), dto.CreateConsumerRequest{
		FullName: "Carlos Ruiz", Email: email, MobileNumber: mobile, Address: "Cra 7 # 10-20",
	})
	require.NoError(t, err)
	return c
}

func TestConsumer_Create(t *testing.T) {
	uc := newConsumerUC()
	c := createConsumer(t, uc, "Carlos@Example.com", "3001112233")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "carlos@example.com", c.Email)
	assert.True(t, c.Active)
}

func TestConsumer_CreateEmailDuplicado(t *testing.T) {
	uc := newConsumerUC()
	createConsumer(t, uc, "carlos@example.com", "3001112233")

	_, err := uc.Create(context.Background(), dto.CreateConsumerRequest{FullName: "Otro", Email: "carlos@example.com", MobileNumber: "3009999999", Address: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestConsumer_CreateMovilDuplicado(t *testing.T) {
	uc := newConsumerUC()
	createConsumer(t, uc, "carlos@example.com", "3001112233")

	_, err := uc.Create(context.Background(), dto.CreateConsumerRequest{FullName: "Otro", Email: "otro@example.com", MobileNumber: "3001112233", Address: "x"})
	assert.ErrorIs(t, err, domain.ErrMobileAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestConsumer_UpdateParcial(t *testing.T) {
	uc := newConsumerUC()
	c := createConsumer(t, uc, "carlos@example.com", "3001112233")
	createConsumer(t, uc, "ana@example.com", "3004445566")

	addr := "Nueva dirección"
	out, err := uc.Update(context.Background(), c.ID, dto.UpdateConsumerRequest{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Nueva dirección", out.Address)
	assert.Equal(t, "Carlos Ruiz", out.FullName)

	taken := "ana@example.com"
	_, err = uc.Update(context.Background(), c.ID, dto.UpdateConsumerRequest{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	same := "CARLOS@example.com"
	_, err = uc.Update(context.Background(), c.ID, dto.UpdateConsumerRequest{Email: &same})
	assert.NoError(t, err, "su propio email no choca")
}

func TestConsumer_GetInexistente(t *testing.T) {
	uc := newConsumerUC()
	_, err := uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsumer_DeactivateConservaRegistro(t *testing.T) {
	uc := newConsumerUC()
	c := createConsumer(t, uc, "carlos@example.com", "3001112233")

	out, err := uc.Deactivate(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, out.Active)

	got, err := uc.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	list, _ := uc.List(context.Background())
	assert.Len(t, list, 1)

	_, err = uc.Deactivate(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrConsumerNotFound)
}
