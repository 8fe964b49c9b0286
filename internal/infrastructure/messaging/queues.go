// Package messaging publica y consume eventos de notificación sobre RabbitMQ.
package messaging

// Colas durables, una por tipo de evento. Routing key = nombre de la cola (exchange por defecto).
const (
	QueueAccountApproved = "notifications.account_approved"
	QueueAccountRejected = "notifications.account_rejected"
	QueuePasswordReset   = "notifications.password_reset"
)

// Queues lista las colas que declaran tanto el publicador como el consumidor.
var Queues = []string{QueueAccountApproved, QueueAccountRejected, QueuePasswordReset}
