// Command notifier consume las colas de notificación y entrega los correos por SendGrid.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/email"
	"github.com/jhoicas/utility-backoffice-api/internal/infrastructure/messaging"
	"github.com/jhoicas/utility-backoffice-api/pkg/config"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})

	if cfg.Messaging.RabbitURL == "" {
		log.Fatal().Msg("RABBITMQ_URL es requerido")
	}
	if cfg.Email.SendGridAPIKey == "" || cfg.Email.FromEmail == "" {
		log.Fatal().Msg("SENDGRID_API_KEY y SENDGRID_FROM_EMAIL son requeridos")
	}

	sender := email.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName, log.Named("sendgrid"))
	consumer := messaging.NewConsumer(cfg.Messaging.RabbitURL, sender, log.Named("notifier"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Strs("queues", messaging.Queues).Msg("notifier escuchando")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("notifier finalizado con error")
		return
	}
	log.Info().Msg("notifier detenido")
}
