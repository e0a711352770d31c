package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

var _ repository.InventoryAssetRepository = (*InventoryAssetRepo)(nil)

// InventoryAssetRepo activos fijos sobre PostgreSQL. El detalle de dispositivo
// se guarda en asset_device_details como (kind, payload JSONB): una sola fila
// por activo, variante seleccionada por kind.
type InventoryAssetRepo struct {
	q Querier
}

// NewInventoryAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryAssetRepository(q Querier) *InventoryAssetRepo {
	return &InventoryAssetRepo{q: q}
}

const assetColumns = `id, asset_tag, item_id, stock_received_id, requisition_id, assigned_user_id,
		department, unit, room, purchase_date, warranty_until, status,
		disposed_at, disposal_method, disposal_reason, created_at, updated_at, deleted_at`

// NextAssetTag devuelve la siguiente etiqueta de activo desde la secuencia.
func (r *InventoryAssetRepo) NextAssetTag() (string, error) {
	var seq int64
	if err := r.q.QueryRow(context.Background(), `SELECT nextval('asset_tag_seq')`).Scan(&seq); err != nil {
		return "", fmt.Errorf("next asset tag: %w", err)
	}
	return fmt.Sprintf("ACT-%d-%06d", time.Now().Year(), seq), nil
}

// Create persiste el activo y, si existe, su detalle de dispositivo en la
// misma transacción (Querier atado a tx en el flujo de despacho).
func (r *InventoryAssetRepo) Create(asset *entity.InventoryAsset) error {
	ctx := context.Background()
	query := `
		INSERT INTO inventory_assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		asset.ID, asset.AssetTag, asset.ItemID, asset.StockReceivedID, asset.RequisitionID,
		asset.AssignedUserID, asset.Department, asset.Unit, asset.Room,
		asset.PurchaseDate, asset.WarrantyUntil, asset.Status,
		asset.DisposedAt, asset.DisposalMethod, asset.DisposalReason,
		asset.CreatedAt, asset.UpdatedAt, asset.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	if asset.Detail != nil {
		if err := r.insertDetail(ctx, asset.ID, asset.Detail); err != nil {
			return err
		}
	}
	return nil
}

func (r *InventoryAssetRepo) insertDetail(ctx context.Context, assetID string, d *entity.DeviceDetail) error {
	payload, err := json.Marshal(detailVariant(d))
	if err != nil {
		return fmt.Errorf("marshal device detail: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO asset_device_details (asset_id, kind, payload) VALUES ($1, $2, $3)`,
		assetID, string(d.Kind), payload)
	if err != nil {
		return fmt.Errorf("insert device detail: %w", err)
	}
	return nil
}

// detailVariant devuelve el puntero de la variante poblada según el kind.
func detailVariant(d *entity.DeviceDetail) any {
	switch d.Kind {
	case entity.DetailLaptop:
		return d.Laptop
	case entity.DetailDesktop:
		return d.Desktop
	case entity.DetailPrinter:
		return d.Printer
	case entity.DetailUPS:
		return d.UPS
	default:
		return d.Other
	}
}

// GetByID obtiene un activo por ID con su detalle (excluye eliminados).
func (r *InventoryAssetRepo) GetByID(id string) (*entity.InventoryAsset, error) {
	return r.scanOne(`SELECT `+assetColumns+` FROM inventory_assets WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetByTag obtiene un activo por su etiqueta (excluye eliminados).
func (r *InventoryAssetRepo) GetByTag(tag string) (*entity.InventoryAsset, error) {
	return r.scanOne(`SELECT `+assetColumns+` FROM inventory_assets WHERE asset_tag = $1 AND deleted_at IS NULL`, tag)
}

func (r *InventoryAssetRepo) scanOne(query string, arg any) (*entity.InventoryAsset, error) {
	var a entity.InventoryAsset
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.AssetTag, &a.ItemID, &a.StockReceivedID, &a.RequisitionID, &a.AssignedUserID,
		&a.Department, &a.Unit, &a.Room, &a.PurchaseDate, &a.WarrantyUntil, &a.Status,
		&a.DisposedAt, &a.DisposalMethod, &a.DisposalReason, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	if err := r.loadDetail(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *InventoryAssetRepo) loadDetail(a *entity.InventoryAsset) error {
	var kind string
	var payload []byte
	err := r.q.QueryRow(context.Background(),
		`SELECT kind, payload FROM asset_device_details WHERE asset_id = $1`, a.ID).Scan(&kind, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("get device detail: %w", err)
	}
	d := &entity.DeviceDetail{AssetID: a.ID, Kind: entity.DeviceDetailKind(kind)}
	var dst any
	switch d.Kind {
	case entity.DetailLaptop:
		d.Laptop = &entity.LaptopDetail{}
		dst = d.Laptop
	case entity.DetailDesktop:
		d.Desktop = &entity.DesktopDetail{}
		dst = d.Desktop
	case entity.DetailPrinter:
		d.Printer = &entity.PrinterDetail{}
		dst = d.Printer
	case entity.DetailUPS:
		d.UPS = &entity.UPSDetail{}
		dst = d.UPS
	default:
		d.Other = &entity.OtherDetail{}
		dst = d.Other
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("unmarshal device detail: %w", err)
	}
	a.Detail = d
	return nil
}

// Update persiste el estado del activo (el detalle es inmutable después de
// crearse; las especificaciones viven con la unidad física).
func (r *InventoryAssetRepo) Update(asset *entity.InventoryAsset) error {
	query := `
		UPDATE inventory_assets SET requisition_id = $2, assigned_user_id = $3, department = $4,
			unit = $5, room = $6, status = $7, disposed_at = $8, disposal_method = $9,
			disposal_reason = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.RequisitionID, asset.AssignedUserID, asset.Department,
		asset.Unit, asset.Room, asset.Status, asset.DisposedAt, asset.DisposalMethod,
		asset.DisposalReason, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}

// List lista activos con filtros opcionales. El detalle no se carga en
// listados (solo en GetByID/GetByTag).
func (r *InventoryAssetRepo) List(filter repository.AssetFilter) ([]*entity.InventoryAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM inventory_assets WHERE deleted_at IS NULL`
	args := []any{}
	i := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, filter.Status)
		i++
	}
	if filter.Department != "" {
		query += fmt.Sprintf(" AND department = $%d", i)
		args = append(args, filter.Department)
		i++
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND assigned_user_id = $%d", i)
		args = append(args, filter.UserID)
		i++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryAsset
	for rows.Next() {
		var a entity.InventoryAsset
		if err := rows.Scan(&a.ID, &a.AssetTag, &a.ItemID, &a.StockReceivedID, &a.RequisitionID,
			&a.AssignedUserID, &a.Department, &a.Unit, &a.Room, &a.PurchaseDate,
			&a.WarrantyUntil, &a.Status, &a.DisposedAt, &a.DisposalMethod, &a.DisposalReason,
			&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
