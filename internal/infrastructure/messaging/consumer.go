package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

// Handler entrega cada tipo de evento por el canal final (email).
type Handler interface {
	HandleAccountApproved(ctx context.Context, e ports.AccountApprovedEvent) error
	HandleAccountRejected(ctx context.Context, e ports.AccountRejectedEvent) error
	HandlePasswordReset(ctx context.Context, e ports.PasswordResetRequestedEvent) error
}

const maxBackoff = 30 * time.Second

// Consumer escucha las colas de notificación y despacha al Handler.
type Consumer struct {
	url     string
	handler Handler
	log     *logger.Logger
}

// NewConsumer construye el consumidor.
func NewConsumer(url string, handler Handler, log *logger.Logger) *Consumer {
	if log == nil {
		log = logger.Nop()
	}
	return &Consumer{url: url, handler: handler, log: log}
}

// Run consume hasta que ctx se cancele. Reconecta con backoff exponencial si el broker cae.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("no se pudo conectar al broker")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Msg("consumo interrumpido, reconectando")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("abrir canal: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo fijar QoS")
	}
	if err := declareQueues(ch); err != nil {
		return err
	}

	// Los reenviadores viven lo que dura esta conexión, no lo que dura Run.
	fwdCtx, stop := context.WithCancel(ctx)
	defer stop()

	deliveries := make(chan amqp.Delivery)
	for _, q := range Queues {
		msgs, err := ch.Consume(q, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consumir %s: %w", q, err)
		}
		go forward(fwdCtx, msgs, deliveries)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-closed:
			if amqpErr == nil {
				return errors.New("conexión cerrada")
			}
			return amqpErr
		case d := <-deliveries:
			if err := c.Dispatch(ctx, d.RoutingKey, d.Body); err != nil {
				c.log.Error().Err(err).Str("queue", d.RoutingKey).Msg("no se pudo entregar la notificación")
				// Sin reencolar para no entrar en bucle con mensajes inválidos.
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// forward pasa las entregas de una cola al canal común hasta que msgs se cierra o ctx termina.
func forward(ctx context.Context, msgs <-chan amqp.Delivery, out chan<- amqp.Delivery) {
	for d := range msgs {
		select {
		case out <- d:
		case <-ctx.Done():
			return
		}
	}
}

// Dispatch decodifica el cuerpo según la cola y llama al Handler.
func (c *Consumer) Dispatch(ctx context.Context, queue string, body []byte) error {
	switch queue {
	case QueueAccountApproved:
		var e ports.AccountApprovedEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return fmt.Errorf("decodificar %s: %w", queue, err)
		}
		return c.handler.HandleAccountApproved(ctx, e)
	case QueueAccountRejected:
		var e ports.AccountRejectedEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return fmt.Errorf("decodificar %s: %w", queue, err)
		}
		return c.handler.HandleAccountRejected(ctx, e)
	case QueuePasswordReset:
		var e ports.PasswordResetRequestedEvent
		if err := json.Unmarshal(body, &e); err != nil {
			return fmt.Errorf("decodificar %s: %w", queue, err)
		}
		return c.handler.HandlePasswordReset(ctx, e)
	default:
		return fmt.Errorf("cola desconocida: %s", queue)
	}
}
