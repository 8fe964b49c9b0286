package auth

import (
	"context"
	"time"

	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
	"github.com/jhoicas/utility-backoffice-api/pkg/logger"
	"github.com/jhoicas/utility-backoffice-api/pkg/metrics"
)

const defaultNotifyTimeout = 5 * time.Second

// notifier publica eventos después del commit. Los errores se registran y no se propagan:
// el estado ya persistido no se revierte por un fallo del canal de entrega.
type notifier struct {
	publisher ports.NotificationPublisher
	timeout   time.Duration
	log       *logger.Logger
	metrics   *metrics.Metrics
}

func newNotifier(p ports.NotificationPublisher, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) notifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return notifier{publisher: p, timeout: timeout, log: log, metrics: m}
}

func (n notifier) send(ctx context.Context, kind, email string, publish func(ctx context.Context, p ports.NotificationPublisher) error) {
	if n.publisher == nil {
		return
	}
	// La petición HTTP puede terminar antes que la publicación.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()
	if err := publish(pctx, n.publisher); err != nil {
		n.log.Warn().Err(err).Str("kind", kind).Str("email", email).Msg("no se pudo publicar la notificación")
		n.metrics.NotificationFailed(kind)
	}
}
