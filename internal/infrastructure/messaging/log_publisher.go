package messaging

import (
	"context"

	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

var _ ports.NotificationPublisher = (*LogPublisher)(nil)

// LogPublisher registra los eventos en el log en lugar de enviarlos a un broker.
// Se usa cuando RABBITMQ_URL no está configurado. Nunca escribe contraseñas ni tokens.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher construye el publicador de respaldo.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishAccountApproved(_ context.Context, e ports.AccountApprovedEvent) error {
	p.log.Info().Str("queue", QueueAccountApproved).Str("email", e.Email).Str("username", e.Username).
		Msg("notificación de cuenta aprobada")
	return nil
}

func (p *LogPublisher) PublishAccountRejected(_ context.Context, e ports.AccountRejectedEvent) error {
	p.log.Info().Str("queue", QueueAccountRejected).Str("email", e.Email).Msg("notificación de cuenta rechazada")
	return nil
}

func (p *LogPublisher) PublishPasswordReset(_ context.Context, e ports.PasswordResetRequestedEvent) error {
	p.log.Info().Str("queue", QueuePasswordReset).Str("email", e.Email).Str("expires_at", e.ExpiresAt).
		Msg("notificación de restablecimiento de contraseña")
	return nil
}
