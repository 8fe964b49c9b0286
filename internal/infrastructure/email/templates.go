package email

import (
	"fmt"
	"html"

	"github.com/jhoicas/utility-backoffice-api/internal/application/ports"
)

// Message contenido de un correo listo para enviar.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Plain   string
	HTML    string
}

const htmlLayout = `<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;color:#333">%s<p style="color:#888;font-size:12px">Mensaje automático, no responder.</p></body></html>`

func accountApprovedMessage(e ports.AccountApprovedEvent) Message {
	plain := fmt.Sprintf(
		"Hola %s,\n\nTu solicitud de cuenta fue aprobada.\nUsuario: %s\nContraseña temporal: %s\n\nDeberás cambiarla en tu primer ingreso.",
		e.Name, e.Username, e.TemporaryPassword,
	)
	body := fmt.Sprintf(
		`<p>Hola %s,</p><p>Tu solicitud de cuenta fue aprobada.</p><p>Usuario: <b>%s</b><br>Contraseña temporal: <b>%s</b></p><p>Deberás cambiarla en tu primer ingreso.</p>`,
		html.EscapeString(e.Name), html.EscapeString(e.Username), html.EscapeString(e.TemporaryPassword),
	)
	return Message{
		ToName:  e.Name,
		ToEmail: e.Email,
		Subject: "Tu cuenta fue aprobada",
		Plain:   plain,
		HTML:    fmt.Sprintf(htmlLayout, body),
	}
}

func accountRejectedMessage(e ports.AccountRejectedEvent) Message {
	plain := fmt.Sprintf("Hola %s,\n\nLamentamos informarte que tu solicitud de cuenta fue rechazada.", e.Name)
	body := fmt.Sprintf(`<p>Hola %s,</p><p>Lamentamos informarte que tu solicitud de cuenta fue rechazada.</p>`,
		html.EscapeString(e.Name))
	return Message{
		ToName:  e.Name,
		ToEmail: e.Email,
		Subject: "Solicitud de cuenta rechazada",
		Plain:   plain,
		HTML:    fmt.Sprintf(htmlLayout, body),
	}
}

func passwordResetMessage(e ports.PasswordResetRequestedEvent) Message {
	plain := fmt.Sprintf(
		"Recibimos una solicitud para restablecer tu contraseña.\nCódigo: %s\nVálido hasta: %s\n\nSi no fuiste tú, ignora este mensaje.",
		e.Token, e.ExpiresAt,
	)
	body := fmt.Sprintf(
		`<p>Recibimos una solicitud para restablecer tu contraseña.</p><p>Código: <code>%s</code><br>Válido hasta: %s</p><p>Si no fuiste tú, ignora este mensaje.</p>`,
		html.EscapeString(e.Token), html.EscapeString(e.ExpiresAt),
	)
	return Message{
		ToEmail: e.Email,
		Subject: "Restablecimiento de contraseña",
		Plain:   plain,
		HTML:    fmt.Sprintf(htmlLayout, body),
	}
}
