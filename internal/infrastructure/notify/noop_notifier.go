package notify

import (
	"context"

	"github.com/jhoicas/ActivosTI-api/internal/application/ports"
	"github.com/jhoicas/ActivosTI-api/pkg/logger"
)

var _ ports.Notifier = (*NoopNotifier)(nil)

// NoopNotifier descarta las notificaciones y solo las registra en el log.
// Se usa cuando SMTP no está configurado (desarrollo local).
type NoopNotifier struct {
	log *logger.Logger
}

// NewNoopNotifier construye el notificador de descarte.
func NewNoopNotifier(log *logger.Logger) *NoopNotifier {
	return &NoopNotifier{log: log}
}

// Send registra la notificación sin enviarla.
func (n *NoopNotifier) Send(_ context.Context, recipient, template string, _ map[string]string) error {
	n.log.Info().Str("recipient", recipient).Str("template", template).Msg("notificación descartada (SMTP no configurado)")
	return nil
}
