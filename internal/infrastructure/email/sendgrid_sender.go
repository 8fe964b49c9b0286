// Package email entrega notificaciones por correo usando SendGrid.
package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/messaging"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

var _ messaging.Handler = (*SendGridSender)(nil)

// SendGridSender implementa messaging.Handler enviando correos por SendGrid.
type SendGridSender struct {
	// send devuelve status HTTP y cuerpo de la respuesta de SendGrid.
	send func(ctx context.Context, msg *mail.SGMailV3) (int, string, error)
	from *mail.Email
	log  *logger.Logger
}

// NewSendGridSender construye el sender con la API key y el remitente configurados.
func NewSendGridSender(apiKey, fromEmail, fromName string, log *logger.Logger) *SendGridSender {
	client := sendgrid.NewSendClient(apiKey)
	return newSender(func(ctx context.Context, msg *mail.SGMailV3) (int, string, error) {
		resp, err := client.SendWithContext(ctx, msg)
		if err != nil {
			return 0, "", err
		}
		return resp.StatusCode, resp.Body, nil
	}, fromEmail, fromName, log)
}

func newSender(send func(ctx context.Context, msg *mail.SGMailV3) (int, string, error), fromEmail, fromName string, log *logger.Logger) *SendGridSender {
	if log == nil {
		log = logger.Nop()
	}
	return &SendGridSender{send: send, from: mail.NewEmail(fromName, fromEmail), log: log}
}

func (s *SendGridSender) HandleAccountApproved(ctx context.Context, e ports.AccountApprovedEvent) error {
	return s.deliver(ctx, accountApprovedMessage(e))
}

func (s *SendGridSender) HandleAccountRejected(ctx context.Context, e ports.AccountRejectedEvent) error {
	return s.deliver(ctx, accountRejectedMessage(e))
}

func (s *SendGridSender) HandlePasswordReset(ctx context.Context, e ports.PasswordResetRequestedEvent) error {
	return s.deliver(ctx, passwordResetMessage(e))
}

func (s *SendGridSender) deliver(ctx context.Context, m Message) error {
	if m.ToEmail == "" {
		return fmt.Errorf("sendgrid: destinatario vacío")
	}
	msg := mail.NewSingleEmail(s.from, m.Subject, mail.NewEmail(m.ToName, m.ToEmail), m.Plain, m.HTML)
	status, body, err := s.send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: enviar a %s: %w", m.ToEmail, err)
	}
	if status >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", status, body)
	}
	s.log.Info().Str("to", m.ToEmail).Str("subject", m.Subject).Msg("correo enviado")
	return nil
}
