package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jhoicas/ActivosTI-api/internal/application/ports"
	"github.com/jhoicas/ActivosTI-api/pkg/config"
	"github.com/jhoicas/ActivosTI-api/pkg/logger"
	"github.com/jordan-wright/email"
)

var _ ports.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier envía notificaciones por correo. Las plantillas son texto plano
// en español con sustitución simple de parámetros; el destinatario es el email
// del usuario implicado.
type SMTPNotifier struct {
	host     string
	addr     string
	user     string
	password string
	from     string
	log      *logger.Logger
}

// NewSMTPNotifier construye el notificador con la configuración SMTP.
func NewSMTPNotifier(cfg config.SMTPConfig, log *logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.Host,
		addr:     cfg.Addr(),
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		log:      log,
	}
}

// Send envía la plantilla al destinatario. No reintenta: el llamador decide
// cómo tratar el fallo (las transacciones de negocio lo registran en auditoría
// y continúan).
func (n *SMTPNotifier) Send(ctx context.Context, recipient, template string, params map[string]string) error {
	subject, body, err := render(template, params)
	if err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = n.from
	e.To = []string{recipient}
	e.Subject = subject
	e.Text = []byte(body)

	var auth smtp.Auth
	if n.user != "" {
		auth = smtp.PlainAuth("", n.user, n.password, n.host)
	}
	if err := e.Send(n.addr, auth); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", recipient, err)
	}
	n.log.Debug().Str("recipient", recipient).Str("template", template).Msg("notificación enviada")
	return nil
}

func render(template string, params map[string]string) (subject, body string, err error) {
	get := func(k string) string { return params[k] }
	switch template {
	case ports.TemplateRequisitionSubmitted:
		subject = fmt.Sprintf("Requisición %s pendiente de aprobación", get("code"))
		body = fmt.Sprintf(
			"La requisición %s de %s (%s) fue enviada y espera su aprobación.\n\nDescripción: %s\nCantidad: %s\nUrgencia: %s\n",
			get("code"), get("requester"), get("department"), get("description"), get("quantity"), get("urgency"))
	case ports.TemplateRequisitionApproved:
		subject = fmt.Sprintf("Requisición %s aprobada", get("code"))
		body = fmt.Sprintf(
			"Su requisición %s avanzó a estado %s.\n", get("code"), get("status"))
	case ports.TemplateRequisitionDeclined:
		subject = fmt.Sprintf("Requisición %s rechazada", get("code"))
		body = fmt.Sprintf(
			"Su requisición %s fue rechazada.\n\nMotivo: %s\n", get("code"), get("reason"))
	case ports.TemplateStockIssued:
		subject = fmt.Sprintf("Requisición %s despachada", get("code"))
		body = fmt.Sprintf(
			"La requisición %s fue despachada.\n\nArtículo: %s\nCantidad: %s\nActivo: %s\n",
			get("code"), get("item"), get("quantity"), get("asset_tag"))
	default:
		return "", "", fmt.Errorf("plantilla de notificación desconocida: %s", template)
	}
	return subject, body, nil
}
