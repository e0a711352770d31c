package issuance_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/issuance"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeReqRepo struct {
	byID map[string]*entity.Requisition
}

func (r *fakeReqRepo) Create(req *entity.Requisition) error {
	cp := *req
	r.byID[req.ID] = &cp
	return nil
}
func (r *fakeReqRepo) GetByID(id string) (*entity.Requisition, error) {
	req, ok := r.byID[id]
	if !ok || req.DeletedAt != nil {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}
func (r *fakeReqRepo) GetByCode(code string) (*entity.Requisition, error) { return nil, nil }
func (r *fakeReqRepo) GetForUpdate(id string) (*entity.Requisition, error) {
	req, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}
func (r *fakeReqRepo) Update(req *entity.Requisition) error {
	cp := *req
	r.byID[req.ID] = &cp
	return nil
}
func (r *fakeReqRepo) List(filter repository.RequisitionFilter) ([]*entity.Requisition, error) {
	return nil, nil
}
func (r *fakeReqRepo) SoftDelete(id string) error { return nil }

type fakeItemRepo struct {
	byID map[string]*entity.CatalogItem
}

func (r *fakeItemRepo) Create(i *entity.CatalogItem) error { r.byID[i.ID] = i; return nil }
func (r *fakeItemRepo) GetByID(id string) (*entity.CatalogItem, error) {
	return r.byID[id], nil
}
func (r *fakeItemRepo) GetByCode(code string) (*entity.CatalogItem, error) { return nil, nil }
func (r *fakeItemRepo) List(limit, offset int) ([]*entity.CatalogItem, error) {
	return nil, nil
}
func (r *fakeItemRepo) Update(i *entity.CatalogItem) error { r.byID[i.ID] = i; return nil }
func (r *fakeItemRepo) SoftDelete(id string) error         { delete(r.byID, id); return nil }

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.byID[id], nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                    { r.byID[u.ID] = u; return nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

type fakeStockRepo struct {
	byItem map[string]*entity.Stock
}

func (r *fakeStockRepo) Get(itemID string) (*entity.Stock, error) {
	if s, ok := r.byItem[itemID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeStockRepo) GetForUpdate(itemID string) (*entity.Stock, error) {
	return r.Get(itemID)
}
func (r *fakeStockRepo) Increment(itemID string, qty int) (int, error) {
	s, ok := r.byItem[itemID]
	if !ok {
		s = &entity.Stock{ItemID: itemID}
		r.byItem[itemID] = s
	}
	s.Quantity += qty
	return s.Quantity, nil
}
func (r *fakeStockRepo) Upsert(s *entity.Stock) error {
	cp := *s
	r.byItem[s.ItemID] = &cp
	return nil
}

type fakeBatchRepo struct {
	byID map[string]*entity.StockBatch
}

func (r *fakeBatchRepo) Create(b *entity.StockBatch) error {
	cp := *b
	r.byID[b.ID] = &cp
	return nil
}
func (r *fakeBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	if b, ok := r.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeBatchRepo) GetForUpdate(id string) (*entity.StockBatch, error) {
	return r.GetByID(id)
}
func (r *fakeBatchRepo) UpdateRemaining(id string, remaining int) error {
	if b, ok := r.byID[id]; ok {
		b.Remaining = remaining
	}
	return nil
}
func (r *fakeBatchRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockBatch, error) {
	return nil, nil
}

type fakeReceivedRepo struct {
	byID map[string]*entity.StockReceived
}

func (r *fakeReceivedRepo) Create(rec *entity.StockReceived) error {
	cp := *rec
	r.byID[rec.ID] = &cp
	return nil
}
func (r *fakeReceivedRepo) GetByID(id string) (*entity.StockReceived, error) {
	if rec, ok := r.byID[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeReceivedRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockReceived, error) {
	return nil, nil
}

type fakeIssuanceRepo struct {
	byReq map[string]*entity.StockIssuance
}

func (r *fakeIssuanceRepo) Create(iss *entity.StockIssuance) error {
	if _, exists := r.byReq[iss.RequisitionID]; exists {
		return domain.ErrDuplicate
	}
	cp := *iss
	r.byReq[iss.RequisitionID] = &cp
	return nil
}
func (r *fakeIssuanceRepo) GetByID(id string) (*entity.StockIssuance, error) { return nil, nil }
func (r *fakeIssuanceRepo) GetByRequisition(requisitionID string) (*entity.StockIssuance, error) {
	if iss, ok := r.byReq[requisitionID]; ok {
		cp := *iss
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeIssuanceRepo) List(limit, offset int) ([]*entity.StockIssuance, error) {
	return nil, nil
}

type fakeAssetRepo struct {
	seq  int
	byID map[string]*entity.InventoryAsset
}

func (r *fakeAssetRepo) NextAssetTag() (string, error) {
	r.seq++
	return fmt.Sprintf("ACT-%d-%06d", time.Now().Year(), r.seq), nil
}
func (r *fakeAssetRepo) Create(a *entity.InventoryAsset) error {
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}
func (r *fakeAssetRepo) GetByID(id string) (*entity.InventoryAsset, error) {
	if a, ok := r.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeAssetRepo) GetByTag(tag string) (*entity.InventoryAsset, error) { return nil, nil }
func (r *fakeAssetRepo) Update(a *entity.InventoryAsset) error {
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}
func (r *fakeAssetRepo) List(filter repository.AssetFilter) ([]*entity.InventoryAsset, error) {
	return nil, nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditEntry
}

func (r *fakeAuditRepo) Create(e *entity.AuditEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeAuditRepo) last() *entity.AuditEntry {
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

type sentMail struct {
	recipient string
	template  string
}

type fakeNotifier struct {
	sent    []sentMail
	failAll bool
}

func (n *fakeNotifier) Send(_ context.Context, recipient, template string, _ map[string]string) error {
	if n.failAll {
		return errors.New("smtp: timeout")
	}
	n.sent = append(n.sent, sentMail{recipient: recipient, template: template})
	return nil
}

// fakeTx serializa los callbacks bajo mutex, como lo hace el FOR UPDATE sobre
// la fila de stock en la transacción real: el segundo despacho siempre ve el
// estado ya confirmado por el primero.
type fakeTx struct {
	mu           sync.Mutex
	reqRepo      *fakeReqRepo
	itemRepo     *fakeItemRepo
	stockRepo    *fakeStockRepo
	batchRepo    *fakeBatchRepo
	receivedRepo *fakeReceivedRepo
	issuanceRepo *fakeIssuanceRepo
	assetRepo    *fakeAssetRepo
	auditRepo    *fakeAuditRepo
}

func (f *fakeTx) RunIssuance(_ context.Context, fn func(
	repository.RequisitionRepository,
	repository.CatalogItemRepository,
	repository.StockRepository,
	repository.StockBatchRepository,
	repository.StockReceivedRepository,
	repository.StockIssuanceRepository,
	repository.InventoryAssetRepository,
	repository.AuditRepository,
) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.reqRepo, f.itemRepo, f.stockRepo, f.batchRepo, f.receivedRepo,
		f.issuanceRepo, f.assetRepo, f.auditRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: requisición itd_approved, lote de 5 unidades, artículo fixed_asset
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	uc *issuance.UseCase
	tx *fakeTx

	requester *entity.User
	officer   *entity.User
	item      *entity.CatalogItem
	req       *entity.Requisition
	batch     *entity.StockBatch
	notifier  *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		tx: &fakeTx{
			reqRepo:      &fakeReqRepo{byID: map[string]*entity.Requisition{}},
			itemRepo:     &fakeItemRepo{byID: map[string]*entity.CatalogItem{}},
			stockRepo:    &fakeStockRepo{byItem: map[string]*entity.Stock{}},
			batchRepo:    &fakeBatchRepo{byID: map[string]*entity.StockBatch{}},
			receivedRepo: &fakeReceivedRepo{byID: map[string]*entity.StockReceived{}},
			issuanceRepo: &fakeIssuanceRepo{byReq: map[string]*entity.StockIssuance{}},
			assetRepo:    &fakeAssetRepo{byID: map[string]*entity.InventoryAsset{}},
			auditRepo:    &fakeAuditRepo{},
		},
		notifier: &fakeNotifier{},
	}
	userRepo := &fakeUserRepo{byID: map[string]*entity.User{}}

	env.requester = &entity.User{
		ID:         uuid.New().String(),
		Email:      "ana@example.test",
		Role:       entity.RoleSolicitante,
		Department: "Contabilidad",
		Status:     "active",
	}
	env.officer = &entity.User{
		ID:     uuid.New().String(),
		Email:  "almacen@example.test",
		Role:   entity.RoleAlmacenista,
		Status: "active",
	}
	require.NoError(t, userRepo.Create(env.requester))
	require.NoError(t, userRepo.Create(env.officer))

	env.item = &entity.CatalogItem{
		ID:             uuid.New().String(),
		Code:           "IT-001",
		Name:           "Portátil de oficina",
		DeviceType:     entity.DeviceTypeLaptop,
		Classification: entity.ClassificationFixedAsset,
		WarrantyMonths: 36,
		SpecPayload:    []byte(`{"cpu":"Ryzen 5 7530U","ram_gb":16,"storage_gb":512}`),
	}
	require.NoError(t, env.tx.itemRepo.Create(env.item))

	receivedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	received := &entity.StockReceived{
		ID:             uuid.New().String(),
		SupplierID:     uuid.New().String(),
		PurchaseOrder:  "OC-2026-117",
		ItemID:         env.item.ID,
		Quantity:       5,
		WarrantyMonths: 36,
		ReceivedByID:   env.officer.ID,
		ReceivedAt:     receivedAt,
	}
	require.NoError(t, env.tx.receivedRepo.Create(received))

	env.batch = &entity.StockBatch{
		ID:              uuid.New().String(),
		StockReceivedID: received.ID,
		ItemID:          env.item.ID,
		ReceivedQty:     5,
		Remaining:       5,
		WarrantyFrom:    receivedAt,
		WarrantyUntil:   receivedAt.AddDate(0, 36, 0),
	}
	require.NoError(t, env.tx.batchRepo.Create(env.batch))
	require.NoError(t, env.tx.stockRepo.Upsert(&entity.Stock{ItemID: env.item.ID, Quantity: 5}))

	env.req = &entity.Requisition{
		ID:          uuid.New().String(),
		Code:        "REQ-2026-0001",
		RequesterID: env.requester.ID,
		Description: "Portátil para contadora",
		Quantity:    1,
		Urgency:     entity.UrgencyMedium,
		Department:  "Contabilidad",
		Unit:        "Tesorería",
		Room:        "204",
		Status:      entity.RequisitionITDApproved,
	}
	require.NoError(t, env.tx.reqRepo.Create(env.req))

	env.uc = issuance.NewUseCase(env.tx, userRepo, env.notifier)
	return env
}

func (env *testEnv) issue(qty int) (*issuance.Result, error) {
	return env.uc.Issue(context.Background(), env.req.ID, env.officer.ID, dto.IssueRequisitionRequest{
		ItemID:   env.item.ID,
		BatchID:  env.batch.ID,
		Quantity: qty,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho de activo fijo
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_ActivoFijoMaterializaActivo(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.issue(1)
	require.NoError(t, err)
	require.NotNil(t, res)

	// Requisición: itd_approved → processed con el artículo entregado fijado.
	req, _ := env.tx.reqRepo.GetByID(env.req.ID)
	assert.Equal(t, entity.RequisitionProcessed, req.Status)
	require.NotNil(t, req.ItemID)
	assert.Equal(t, env.item.ID, *req.ItemID)
	require.NotNil(t, req.IssuedByID)
	assert.Equal(t, env.officer.ID, *req.IssuedByID)

	// Libro mayor y lote: 5 → 4, ambos.
	s, _ := env.tx.stockRepo.Get(env.item.ID)
	assert.Equal(t, 4, s.Quantity)
	batch, _ := env.tx.batchRepo.GetByID(env.batch.ID)
	assert.Equal(t, 4, batch.Remaining)
	assert.Equal(t, 5, batch.ReceivedQty, "la cantidad original del lote nunca cambia")

	// Registro de despacho ligado al activo materializado.
	require.NotNil(t, res.Issuance)
	require.NotNil(t, res.Issuance.AssetID)
	require.NotNil(t, res.Asset)
	assert.Equal(t, res.Asset.ID, *res.Issuance.AssetID)

	// Activo: etiqueta, asignación y garantía heredada de la recepción.
	asset, _ := env.tx.assetRepo.GetByID(res.Asset.ID)
	require.NotNil(t, asset)
	assert.Regexp(t, `^ACT-\d{4}-\d{6}$`, asset.AssetTag)
	assert.Equal(t, entity.AssetActive, asset.Status)
	require.NotNil(t, asset.AssignedUserID)
	assert.Equal(t, env.requester.ID, *asset.AssignedUserID)
	assert.Equal(t, "Contabilidad", asset.Department)
	assert.Equal(t, "204", asset.Room)
	wantWarranty := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC).AddDate(0, 36, 0)
	assert.Equal(t, wantWarranty, asset.WarrantyUntil)

	// Detalle de dispositivo construido desde el spec del catálogo.
	require.NotNil(t, res.Asset.Detail)
	assert.Equal(t, entity.DetailLaptop, res.Asset.Detail.Kind)
	require.NotNil(t, res.Asset.Detail.Laptop)
	assert.Equal(t, 16, res.Asset.Detail.Laptop.RAMGB)

	// Auditoría en la misma transacción, con la etiqueta del activo.
	entry := env.tx.auditRepo.last()
	require.NotNil(t, entry)
	assert.Equal(t, entity.AuditStockIssued, entry.Action)
	assert.Equal(t, asset.AssetTag, entry.Metadata["asset_tag"])

	// Notificaciones: solicitante y oficial.
	require.Len(t, env.notifier.sent, 2)
	assert.Equal(t, env.requester.Email, env.notifier.sent[0].recipient)
	assert.Equal(t, env.officer.Email, env.notifier.sent[1].recipient)
	assert.Empty(t, res.NotificationErrors)
}

func TestIssue_ConsumibleNoCreaActivo(t *testing.T) {
	env := newTestEnv(t)
	env.item.Classification = entity.ClassificationConsumable
	env.item.SpecPayload = nil
	require.NoError(t, env.tx.itemRepo.Update(env.item))

	res, err := env.issue(2)
	require.NoError(t, err)

	assert.Nil(t, res.Asset, "un consumible nunca materializa activo")
	assert.Nil(t, res.Issuance.AssetID)
	assert.Equal(t, 2, res.Issuance.Quantity)

	s, _ := env.tx.stockRepo.Get(env.item.ID)
	assert.Equal(t, 3, s.Quantity)
	batch, _ := env.tx.batchRepo.GetByID(env.batch.ID)
	assert.Equal(t, 3, batch.Remaining)
}

// El almacenista puede entregar un artículo distinto del solicitado; el que
// queda fijado en la requisición es el entregado.
func TestIssue_ArticuloEntregadoPuedeDiferir(t *testing.T) {
	env := newTestEnv(t)
	otroID := uuid.New().String()
	env.req.ItemID = &otroID
	require.NoError(t, env.tx.reqRepo.Update(env.req))

	res, err := env.issue(1)
	require.NoError(t, err)

	require.NotNil(t, res.Requisition.ItemID)
	assert.Equal(t, env.item.ID, *res.Requisition.ItemID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones: la primera falla gana, sin decremento parcial
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_EntradaInvalida(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.issue(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIssue_StockInsuficiente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.issue(6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada mutó: ni el agregado, ni el lote, ni la requisición.
	s, _ := env.tx.stockRepo.Get(env.item.ID)
	assert.Equal(t, 5, s.Quantity)
	batch, _ := env.tx.batchRepo.GetByID(env.batch.ID)
	assert.Equal(t, 5, batch.Remaining)
	req, _ := env.tx.reqRepo.GetByID(env.req.ID)
	assert.Equal(t, entity.RequisitionITDApproved, req.Status)
}

// El agregado alcanza pero el lote elegido no: falla igual, nunca se roba de
// otro lote.
func TestIssue_LoteInsuficiente(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.tx.stockRepo.Upsert(&entity.Stock{ItemID: env.item.ID, Quantity: 10}))
	require.NoError(t, env.tx.batchRepo.UpdateRemaining(env.batch.ID, 2))

	_, err := env.issue(3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestIssue_LoteDeOtroArticulo(t *testing.T) {
	env := newTestEnv(t)
	env.batch.ItemID = uuid.New().String()
	require.NoError(t, env.tx.batchRepo.Create(env.batch)) // sobreescribe con el item cambiado

	_, err := env.issue(1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestIssue_LoteEliminado(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	env.batch.DeletedAt = &now
	require.NoError(t, env.tx.batchRepo.Create(env.batch))

	_, err := env.issue(1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "un lote eliminado no es despachable")
}

func TestIssue_LoteInexistente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Issue(context.Background(), env.req.ID, env.officer.ID, dto.IssueRequisitionRequest{
		ItemID:   env.item.ID,
		BatchID:  uuid.New().String(),
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssue_EstadoIncorrecto(t *testing.T) {
	env := newTestEnv(t)
	env.req.Status = entity.RequisitionPendingITDApproval
	require.NoError(t, env.tx.reqRepo.Update(env.req))

	_, err := env.issue(1)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// Un segundo despacho contra la misma requisición nunca es idempotente.
func TestIssue_SegundoDespachoBloqueado(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.issue(1)
	require.NoError(t, err)

	_, err = env.issue(1)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	// El stock solo se descontó una vez.
	s, _ := env.tx.stockRepo.Get(env.item.ID)
	assert.Equal(t, 4, s.Quantity)
}

// Dos despachos concurrentes contra el mismo lote de 5, cada uno pidiendo 3:
// exactamente uno pasa. El que pierde la carrera ve el decremento ya
// confirmado y falla con stock insuficiente, nunca deja el lote en negativo.
func TestIssue_DecrementoAtomicoBajoCarrera(t *testing.T) {
	env := newTestEnv(t)

	otraReq := &entity.Requisition{
		ID:          uuid.New().String(),
		Code:        "REQ-2026-0002",
		RequesterID: env.requester.ID,
		Description: "Portátil para auxiliar",
		Quantity:    3,
		Urgency:     entity.UrgencyMedium,
		Department:  "Contabilidad",
		Status:      entity.RequisitionITDApproved,
	}
	require.NoError(t, env.tx.reqRepo.Create(otraReq))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, reqID := range []string{env.req.ID, otraReq.ID} {
		wg.Add(1)
		go func(i int, reqID string) {
			defer wg.Done()
			_, errs[i] = env.uc.Issue(context.Background(), reqID, env.officer.ID, dto.IssueRequisitionRequest{
				ItemID:   env.item.ID,
				BatchID:  env.batch.ID,
				Quantity: 3,
			})
		}(i, reqID)
	}
	wg.Wait()

	var oks, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			oks++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, oks, "exactamente un despacho pasa")
	assert.Equal(t, 1, insufficient, "el otro falla con stock insuficiente")

	s, _ := env.tx.stockRepo.Get(env.item.ID)
	assert.Equal(t, 2, s.Quantity, "5 - 3 una sola vez")
	batch, _ := env.tx.batchRepo.GetByID(env.batch.ID)
	assert.Equal(t, 2, batch.Remaining, "sin decremento parcial del perdedor")
}

func TestIssue_RequisicionEliminada(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()
	env.req.DeletedAt = &now
	require.NoError(t, env.tx.reqRepo.Update(env.req))

	_, err := env.issue(1)
	assert.ErrorIs(t, err, domain.ErrGone)
}

func TestIssue_RequisicionInexistente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Issue(context.Background(), uuid.New().String(), env.officer.ID, dto.IssueRequisitionRequest{
		ItemID:   env.item.ID,
		BatchID:  env.batch.ID,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Éxito degradado: notificación fallida nunca revierte el despacho
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_ExitoDegradadoPorNotificacion(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.failAll = true

	res, err := env.issue(1)
	require.NotNil(t, res, "el resultado acompaña al error de notificación")
	assert.ErrorIs(t, err, domain.ErrNotificationFailure)
	assert.Len(t, res.NotificationErrors, 2, "fallaron solicitante y oficial")

	// Los datos quedaron confirmados a pesar del fallo.
	req, _ := env.tx.reqRepo.GetByID(env.req.ID)
	assert.Equal(t, entity.RequisitionProcessed, req.Status)
	s, _ := env.tx.stockRepo.Get(env.item.ID)
	assert.Equal(t, 4, s.Quantity)

	// Los fallos quedan en la auditoría del despacho.
	entry := env.tx.auditRepo.last()
	require.NotNil(t, entry)
	assert.Contains(t, entry.Metadata, "notification_failures")
}
