package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo sumidero de auditoría sobre PostgreSQL. Solo escritura desde el
// core; la consulta de auditoría es una preocupación de reporting, no de este
// servicio.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create persiste una entrada de auditoría. Se invoca dentro de la misma
// transacción que la mutación de negocio descrita.
func (r *AuditRepo) Create(entry *entity.AuditEntry) error {
	var metadata []byte
	if entry.Metadata != nil {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal audit metadata: %w", err)
		}
		metadata = b
	}
	query := `
		INSERT INTO audit_entries (id, action, actor_id, subject_user_id, entity_kind, entity_id,
			old_state, new_state, context, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Action, entry.ActorID, entry.SubjectUserID, entry.EntityKind,
		entry.EntityID, entry.OldState, entry.NewState, entry.Context, metadata, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
