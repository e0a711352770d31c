package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo requisiciones sobre PostgreSQL.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionColumns = `id, code, requester_id, item_id, description, quantity, urgency,
		department, unit, room, dept_approver_id, itd_approver_id, status,
		decline_reason, issued_by_id, issued_at, created_at, updated_at, deleted_at`

// Create asigna el código legible desde la secuencia y persiste la
// requisición. El código es REQ-<año>-NNNN; la secuencia garantiza unicidad
// sin carreras.
func (r *RequisitionRepo) Create(req *entity.Requisition) error {
	ctx := context.Background()

	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('requisition_code_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("next requisition code: %w", err)
	}
	req.Code = fmt.Sprintf("REQ-%d-%04d", time.Now().Year(), seq)

	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.Code, req.RequesterID, req.ItemID, req.Description, req.Quantity,
		req.Urgency, req.Department, req.Unit, req.Room, req.DeptApproverID,
		req.ITDApproverID, req.Status, req.DeclineReason, req.IssuedByID, req.IssuedAt,
		req.CreatedAt, req.UpdatedAt, req.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert requisition: %w", err)
	}
	return nil
}

// GetByID obtiene una requisición por ID (excluye eliminadas).
func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	return r.scanOne(`SELECT `+requisitionColumns+` FROM requisitions WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetByCode obtiene una requisición por código legible (excluye eliminadas).
func (r *RequisitionRepo) GetByCode(code string) (*entity.Requisition, error) {
	return r.scanOne(`SELECT `+requisitionColumns+` FROM requisitions WHERE code = $1 AND deleted_at IS NULL`, code)
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Incluye soft-deleted:
// el caso de uso distingue eliminada (ErrGone) de inexistente (ErrNotFound).
func (r *RequisitionRepo) GetForUpdate(id string) (*entity.Requisition, error) {
	return r.scanOne(`SELECT `+requisitionColumns+` FROM requisitions WHERE id = $1 FOR UPDATE`, id)
}

func (r *RequisitionRepo) scanOne(query string, arg any) (*entity.Requisition, error) {
	var req entity.Requisition
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&req.ID, &req.Code, &req.RequesterID, &req.ItemID, &req.Description, &req.Quantity,
		&req.Urgency, &req.Department, &req.Unit, &req.Room, &req.DeptApproverID,
		&req.ITDApproverID, &req.Status, &req.DeclineReason, &req.IssuedByID, &req.IssuedAt,
		&req.CreatedAt, &req.UpdatedAt, &req.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	return &req, nil
}

// Update persiste el estado completo de la requisición.
func (r *RequisitionRepo) Update(req *entity.Requisition) error {
	query := `
		UPDATE requisitions SET item_id = $2, description = $3, quantity = $4, urgency = $5,
			department = $6, unit = $7, room = $8, dept_approver_id = $9, itd_approver_id = $10,
			status = $11, decline_reason = $12, issued_by_id = $13, issued_at = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ItemID, req.Description, req.Quantity, req.Urgency,
		req.Department, req.Unit, req.Room, req.DeptApproverID, req.ITDApproverID,
		req.Status, req.DeclineReason, req.IssuedByID, req.IssuedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	return nil
}

// List lista requisiciones con filtros opcionales (excluye eliminadas).
func (r *RequisitionRepo) List(filter repository.RequisitionFilter) ([]*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE deleted_at IS NULL`
	args := []any{}
	i := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, filter.Status)
		i++
	}
	if filter.RequesterID != "" {
		query += fmt.Sprintf(" AND requester_id = $%d", i)
		args = append(args, filter.RequesterID)
		i++
	}
	if filter.Department != "" {
		query += fmt.Sprintf(" AND department = $%d", i)
		args = append(args, filter.Department)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Requisition
	for rows.Next() {
		var req entity.Requisition
		if err := rows.Scan(&req.ID, &req.Code, &req.RequesterID, &req.ItemID, &req.Description,
			&req.Quantity, &req.Urgency, &req.Department, &req.Unit, &req.Room,
			&req.DeptApproverID, &req.ITDApproverID, &req.Status, &req.DeclineReason,
			&req.IssuedByID, &req.IssuedAt, &req.CreatedAt, &req.UpdatedAt, &req.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

// SoftDelete marca la requisición como eliminada. La fila se conserva para
// auditoría y para responder 410 en accesos posteriores.
func (r *RequisitionRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE requisitions SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete requisition: %w", err)
	}
	return nil
}
