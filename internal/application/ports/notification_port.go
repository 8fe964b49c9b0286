package ports

import "context"

// AccountApprovedEvent se publica al aprobar una solicitud de cuenta.
// Lleva las credenciales temporales que el canal de entrega envía al consumidor.
type AccountApprovedEvent struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Username          string `json:"username"`
	TemporaryPassword string `json:"temporary_password"`
}

// AccountRejectedEvent se publica al rechazar una solicitud de cuenta.
type AccountRejectedEvent struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PasswordResetRequestedEvent se publica cuando un usuario pide restablecer su contraseña.
type PasswordResetRequestedEvent struct {
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// NotificationPublisher define el puerto de salida hacia el mecanismo de entrega (email/SMS).
// La publicación es best-effort: el llamador registra el error pero no revierte su transición.
type NotificationPublisher interface {
	PublishAccountApproved(ctx context.Context, event AccountApprovedEvent) error
	PublishAccountRejected(ctx context.Context, event AccountRejectedEvent) error
	PublishPasswordReset(ctx context.Context, event PasswordResetRequestedEvent) error
}
