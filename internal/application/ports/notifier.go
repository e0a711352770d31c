package ports

import "context"

// Plantillas de notificación conocidas.
const (
	TemplateRequisitionSubmitted = "requisition_submitted"
	TemplateRequisitionApproved  = "requisition_approved"
	TemplateRequisitionDeclined  = "requisition_declined"
	TemplateStockIssued          = "stock_issued"
)

// Notifier es el puerto de notificaciones salientes, best-effort: un fallo de
// envío nunca revierte la transacción de negocio ya confirmada. El caso de uso
// registra el fallo en la auditoría y lo reporta como éxito degradado.
type Notifier interface {
	Send(ctx context.Context, recipient, template string, params map[string]string) error
}
