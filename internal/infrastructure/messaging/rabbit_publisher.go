package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

var _ ports.NotificationPublisher = (*RabbitPublisher)(nil)

// RabbitPublisher implementa NotificationPublisher sobre RabbitMQ.
// Mantiene una conexión y un canal compartidos; si el broker los cierra, reconecta en la siguiente publicación.
type RabbitPublisher struct {
	url string
	log *logger.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher conecta al broker y declara las colas de notificación.
func NewRabbitPublisher(url string, log *logger.Logger) (*RabbitPublisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	p := &RabbitPublisher{url: url, log: log}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *RabbitPublisher) PublishAccountApproved(ctx context.Context, event ports.AccountApprovedEvent) error {
	return p.publish(ctx, QueueAccountApproved, event)
}

func (p *RabbitPublisher) PublishAccountRejected(ctx context.Context, event ports.AccountRejectedEvent) error {
	return p.publish(ctx, QueueAccountRejected, event)
}

func (p *RabbitPublisher) PublishPasswordReset(ctx context.Context, event ports.PasswordResetRequestedEvent) error {
	return p.publish(ctx, QueuePasswordReset, event)
}

// Close cierra canal y conexión.
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	p.ch, p.conn = nil, nil
	return errors.Join(errs...)
}

func (p *RabbitPublisher) publish(ctx context.Context, queue string, event any) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil || p.ch.IsClosed() {
		if err := p.connectLocked(); err != nil {
			return err
		}
	}
	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", queue, err)
	}
	p.log.Debug().Str("queue", queue).Msg("evento publicado")
	return nil
}

func (p *RabbitPublisher) connectLocked() error {
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return fmt.Errorf("rabbitmq: dial: %w", err)
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: abrir canal: %w", err)
	}
	if err := declareQueues(ch); err != nil {
		_ = ch.Close()
		return err
	}
	p.ch = ch
	return nil
}

func declareQueues(ch *amqp.Channel) error {
	for _, q := range Queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("rabbitmq: declarar cola %s: %w", q, err)
		}
	}
	return nil
}

// newPublishing serializa el evento como mensaje JSON persistente.
func newPublishing(event any) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: serializar evento: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}
