package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
)

type recordingHandler struct {
	approved []ports.AccountApprovedEvent
	rejected []ports.AccountRejectedEvent
	resets   []ports.PasswordResetRequestedEvent
}

func (h *recordingHandler) HandleAccountApproved(_ context.Context, e ports.AccountApprovedEvent) error {
	h.approved = append(h.approved, e)
	return nil
}

func (h *recordingHandler) HandleAccountRejected(_ context.Context, e ports.AccountRejectedEvent) error {
	h.rejected = append(h.rejected, e)
	return nil
}

func (h *recordingHandler) HandlePasswordReset(_ context.Context, e ports.PasswordResetRequestedEvent) error {
	h.resets = append(h.resets, e)
	return nil
}

func TestNewPublishing_MensajePersistenteJSON(t *testing.T) {
	msg, err := newPublishing(ports.AccountRejectedEvent{Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.JSONEq(t, `{"email":"ana@example.com","name":"Ana"}`, string(msg.Body))
}

func TestConsumer_Dispatch(t *testing.T) {
	h := &recordingHandler{}
	c := NewConsumer("", h, nil)
	ctx := context.Background()

	body, _ := json.Marshal(ports.AccountApprovedEvent{Email: "a@x.com", Username: "ana", TemporaryPassword: "Tmp12345abcd"})
	require.NoError(t, c.Dispatch(ctx, QueueAccountApproved, body))
	require.Len(t, h.approved, 1)
	assert.Equal(t, "ana", h.approved[0].Username)
	assert.Equal(t, "Tmp12345abcd", h.approved[0].TemporaryPassword)

	body, _ = json.Marshal(ports.AccountRejectedEvent{Email: "b@x.com"})
	require.NoError(t, c.Dispatch(ctx, QueueAccountRejected, body))
	assert.Len(t, h.rejected, 1)

	body, _ = json.Marshal(ports.PasswordResetRequestedEvent{Email: "c@x.com", Token: "abc"})
	require.NoError(t, c.Dispatch(ctx, QueuePasswordReset, body))
	require.Len(t, h.resets, 1)
	assert.Equal(t, "abc", h.resets[0].Token)
}

func TestConsumer_Dispatch_Errores(t *testing.T) {
	c := NewConsumer("", &recordingHandler{}, nil)
	assert.Error(t, c.Dispatch(context.Background(), "otra.cola", []byte(`{}`)))
	assert.Error(t, c.Dispatch(context.Background(), QueuePasswordReset, []byte(`{no-json`)))
}

func TestLogPublisher_NuncaFalla(t *testing.T) {
	p := NewLogPublisher(nil)
	ctx := context.Background()
	assert.NoError(t, p.PublishAccountApproved(ctx, ports.AccountApprovedEvent{Email: "a@x.com"}))
	assert.NoError(t, p.PublishAccountRejected(ctx, ports.AccountRejectedEvent{Email: "a@x.com"}))
	assert.NoError(t, p.PublishPasswordReset(ctx, ports.PasswordResetRequestedEvent{Email: "a@x.com"}))
}

func TestForward_TerminaAlCancelarAunqueNadieLea(t *testing.T) {
	msgs := make(chan amqp.Delivery, 1)
	msgs <- amqp.Delivery{RoutingKey: QueuePasswordReset}
	out := make(chan amqp.Delivery) // nadie lo lee: la conexión ya cayó

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		forward(ctx, msgs, out)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("forward sigue bloqueado tras cancelar el contexto")
	}
}

func TestForward_ReenviaHastaQueSeCierraLaCola(t *testing.T) {
	msgs := make(chan amqp.Delivery, 2)
	msgs <- amqp.Delivery{RoutingKey: QueueAccountApproved}
	msgs <- amqp.Delivery{RoutingKey: QueueAccountRejected}
	close(msgs)
	out := make(chan amqp.Delivery, 2)

	forward(context.Background(), msgs, out)

	require.Len(t, out, 2)
	assert.Equal(t, QueueAccountApproved, (<-out).RoutingKey)
	assert.Equal(t, QueueAccountRejected, (<-out).RoutingKey)
}
