package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

var _ repository.MaintenanceTicketRepository = (*MaintenanceTicketRepo)(nil)

// MaintenanceTicketRepo tickets de mantenimiento sobre PostgreSQL.
type MaintenanceTicketRepo struct {
	q Querier
}

// NewMaintenanceTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceTicketRepository(q Querier) *MaintenanceTicketRepo {
	return &MaintenanceTicketRepo{q: q}
}

const ticketColumns = `id, asset_id, issue_kind, description, priority, reported_by_id,
		technician_id, status, resolution, resolved_at, created_at, updated_at`

// Create persiste un ticket.
func (r *MaintenanceTicketRepo) Create(ticket *entity.MaintenanceTicket) error {
	query := `
		INSERT INTO maintenance_tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		ticket.ID, ticket.AssetID, ticket.IssueKind, ticket.Description, ticket.Priority,
		ticket.ReportedByID, ticket.TechnicianID, ticket.Status, ticket.Resolution,
		ticket.ResolvedAt, ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		// Activo o usuario referenciado inexistente.
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// GetByID obtiene un ticket por ID.
func (r *MaintenanceTicketRepo) GetByID(id string) (*entity.MaintenanceTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM maintenance_tickets WHERE id = $1`
	var t entity.MaintenanceTicket
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.AssetID, &t.IssueKind, &t.Description, &t.Priority,
		&t.ReportedByID, &t.TechnicianID, &t.Status, &t.Resolution,
		&t.ResolvedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// Update persiste el estado del ticket.
func (r *MaintenanceTicketRepo) Update(ticket *entity.MaintenanceTicket) error {
	query := `
		UPDATE maintenance_tickets SET issue_kind = $2, description = $3, priority = $4,
			technician_id = $5, status = $6, resolution = $7, resolved_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ticket.ID, ticket.IssueKind, ticket.Description, ticket.Priority,
		ticket.TechnicianID, ticket.Status, ticket.Resolution, ticket.ResolvedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}

// ListByAsset lista tickets de un activo, más recientes primero.
func (r *MaintenanceTicketRepo) ListByAsset(assetID string, limit, offset int) ([]*entity.MaintenanceTicket, error) {
	query := `SELECT ` + ticketColumns + `
		FROM maintenance_tickets WHERE asset_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, assetID, limit, offset)
}

// List lista tickets, opcionalmente por estado.
func (r *MaintenanceTicketRepo) List(status string, limit, offset int) ([]*entity.MaintenanceTicket, error) {
	if status == "" {
		query := `SELECT ` + ticketColumns + `
			FROM maintenance_tickets ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err := r.q.Query(context.Background(), query, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list tickets: %w", err)
		}
		return scanTickets(rows)
	}
	query := `SELECT ` + ticketColumns + `
		FROM maintenance_tickets WHERE status = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

func (r *MaintenanceTicketRepo) list(query string, arg any, limit, offset int) ([]*entity.MaintenanceTicket, error) {
	rows, err := r.q.Query(context.Background(), query, arg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]*entity.MaintenanceTicket, error) {
	defer rows.Close()
	var list []*entity.MaintenanceTicket
	for rows.Next() {
		var t entity.MaintenanceTicket
		if err := rows.Scan(&t.ID, &t.AssetID, &t.IssueKind, &t.Description, &t.Priority,
			&t.ReportedByID, &t.TechnicianID, &t.Status, &t.Resolution,
			&t.ResolvedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
