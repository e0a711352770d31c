package stock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/stock"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

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

type fakeSupplierRepo struct {
	byID map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.byID[s.ID] = s; return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.byID[id], nil
}
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { r.byID[s.ID] = s; return nil }
func (r *fakeSupplierRepo) SoftDelete(id string) error      { delete(r.byID, id); return nil }

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

// fakeStockRepo devuelve nil cuando el artículo no tiene fila todavía, igual
// que el adaptador real con pgx.ErrNoRows. Increment es atómico bajo mutex,
// como la sentencia INSERT ... ON CONFLICT DO UPDATE del adaptador.
type fakeStockRepo struct {
	mu     sync.Mutex
	byItem map[string]*entity.Stock
}

func (r *fakeStockRepo) Get(itemID string) (*entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byItem[itemID]
	if !ok {
		s = &entity.Stock{ItemID: itemID}
		r.byItem[itemID] = s
	}
	s.Quantity += qty
	s.UpdatedAt = time.Now()
	return s.Quantity, nil
}
func (r *fakeStockRepo) Upsert(s *entity.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.byItem[s.ItemID] = &cp
	return nil
}

type fakeBatchRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.StockBatch
}

func (r *fakeBatchRepo) Create(b *entity.StockBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.byID[b.ID] = &cp
	return nil
}
func (r *fakeBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	var out []*entity.StockBatch
	for _, b := range r.byID {
		if b.ItemID == itemID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeReceivedRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.StockReceived
}

func (r *fakeReceivedRepo) Create(rec *entity.StockReceived) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.byID[rec.ID] = &cp
	return nil
}
func (r *fakeReceivedRepo) GetByID(id string) (*entity.StockReceived, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.byID[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeReceivedRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockReceived, error) {
	return nil, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*entity.AuditEntry
}

func (r *fakeAuditRepo) Create(e *entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

type fakeTx struct {
	receivedRepo *fakeReceivedRepo
	batchRepo    *fakeBatchRepo
	stockRepo    *fakeStockRepo
	auditRepo    *fakeAuditRepo
}

func (f *fakeTx) RunReceive(_ context.Context, fn func(
	repository.StockReceivedRepository,
	repository.StockBatchRepository,
	repository.StockRepository,
	repository.AuditRepository,
) error) error {
	return fn(f.receivedRepo, f.batchRepo, f.stockRepo, f.auditRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	uc           *stock.UseCase
	stockRepo    *fakeStockRepo
	batchRepo    *fakeBatchRepo
	receivedRepo *fakeReceivedRepo
	auditRepo    *fakeAuditRepo

	item     *entity.CatalogItem
	supplier *entity.Supplier
	receiver *entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		stockRepo:    &fakeStockRepo{byItem: map[string]*entity.Stock{}},
		batchRepo:    &fakeBatchRepo{byID: map[string]*entity.StockBatch{}},
		receivedRepo: &fakeReceivedRepo{byID: map[string]*entity.StockReceived{}},
		auditRepo:    &fakeAuditRepo{},
	}
	itemRepo := &fakeItemRepo{byID: map[string]*entity.CatalogItem{}}
	supplierRepo := &fakeSupplierRepo{byID: map[string]*entity.Supplier{}}
	userRepo := &fakeUserRepo{byID: map[string]*entity.User{}}

	env.item = &entity.CatalogItem{
		ID:             uuid.New().String(),
		Code:           "IT-001",
		Name:           "Portátil de oficina",
		DeviceType:     entity.DeviceTypeLaptop,
		Classification: entity.ClassificationFixedAsset,
		WarrantyMonths: 36,
	}
	env.supplier = &entity.Supplier{ID: uuid.New().String(), Name: "TecnoSupply SAS"}
	env.receiver = &entity.User{
		ID:     uuid.New().String(),
		Email:  "almacen@example.test",
		Role:   entity.RoleAlmacenista,
		Status: "active",
	}
	require.NoError(t, itemRepo.Create(env.item))
	require.NoError(t, supplierRepo.Create(env.supplier))
	require.NoError(t, userRepo.Create(env.receiver))

	tx := &fakeTx{
		receivedRepo: env.receivedRepo,
		batchRepo:    env.batchRepo,
		stockRepo:    env.stockRepo,
		auditRepo:    env.auditRepo,
	}
	env.uc = stock.NewUseCase(tx, itemRepo, supplierRepo, userRepo, env.stockRepo, env.batchRepo)
	return env
}

func (env *testEnv) receive(t *testing.T, qty int) *dto.ReceiveStockResponse {
	t.Helper()
	out, err := env.uc.Receive(context.Background(), env.receiver.ID, dto.ReceiveStockRequest{
		SupplierID:    env.supplier.ID,
		PurchaseOrder: "OC-2026-117",
		ItemID:        env.item.ID,
		Quantity:      qty,
		UnitCost:      decimal.NewFromFloat(2350000.00),
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_PrimeraRecepcionCreaTodo(t *testing.T) {
	env := newTestEnv(t)

	out := env.receive(t, 5)

	assert.Equal(t, 5, out.NewQuantity, "agregado 0 → 5 en la primera recepción")

	received, err := env.receivedRepo.GetByID(out.StockReceivedID)
	require.NoError(t, err)
	require.NotNil(t, received, "la recepción queda registrada")
	assert.Equal(t, 5, received.Quantity)
	assert.Equal(t, "OC-2026-117", received.PurchaseOrder)

	batch, err := env.batchRepo.GetByID(out.BatchID)
	require.NoError(t, err)
	require.NotNil(t, batch)
	assert.Equal(t, 5, batch.ReceivedQty)
	assert.Equal(t, 5, batch.Remaining, "el lote nace completo")
	assert.Equal(t, received.ID, batch.StockReceivedID)

	require.Len(t, env.auditRepo.entries, 1)
	assert.Equal(t, entity.AuditStockReceived, env.auditRepo.entries[0].Action)
}

func TestReceive_AcumulaSobreExistenciaPrevia(t *testing.T) {
	env := newTestEnv(t)
	env.receive(t, 3)

	out := env.receive(t, 2)
	assert.Equal(t, 5, out.NewQuantity, "3 + 2 = 5")

	s, err := env.stockRepo.Get(env.item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Quantity)
}

func TestReceive_CantidadInvalida(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Receive(context.Background(), env.receiver.ID, dto.ReceiveStockRequest{
		SupplierID:    env.supplier.ID,
		PurchaseOrder: "OC-2026-118",
		ItemID:        env.item.ID,
		Quantity:      0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceive_ArticuloOProveedorInexistente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Receive(context.Background(), env.receiver.ID, dto.ReceiveStockRequest{
		SupplierID:    env.supplier.ID,
		PurchaseOrder: "OC-2026-119",
		ItemID:        uuid.New().String(),
		Quantity:      1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "artículo inexistente")

	_, err = env.uc.Receive(context.Background(), env.receiver.ID, dto.ReceiveStockRequest{
		SupplierID:    uuid.New().String(),
		PurchaseOrder: "OC-2026-119",
		ItemID:        env.item.ID,
		Quantity:      1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor inexistente")
}

func TestReceive_ReceptorInactivo(t *testing.T) {
	env := newTestEnv(t)
	env.receiver.Status = "suspended"

	_, err := env.uc.Receive(context.Background(), env.receiver.ID, dto.ReceiveStockRequest{
		SupplierID:    env.supplier.ID,
		PurchaseOrder: "OC-2026-120",
		ItemID:        env.item.ID,
		Quantity:      1,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Dos primeras recepciones concurrentes del mismo artículo (sin fila de stock
// previa que bloquear) deben acumularse: el incremento es atómico en el
// repositorio, nunca un leer-luego-escribir que pise la recepción ajena.
func TestReceive_PrimerasRecepcionesConcurrentesSeAcumulan(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.uc.Receive(context.Background(), env.receiver.ID, dto.ReceiveStockRequest{
				SupplierID:    env.supplier.ID,
				PurchaseOrder: "OC-2026-121",
				ItemID:        env.item.ID,
				Quantity:      5,
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	s, err := env.stockRepo.Get(env.item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Quantity, "5 + 5 recibidas: ninguna recepción se pierde")
}

// Sin garantía explícita en la recepción se hereda la del artículo.
func TestReceive_GarantiaPorDefectoDelArticulo(t *testing.T) {
	env := newTestEnv(t)

	out := env.receive(t, 1)

	received, err := env.receivedRepo.GetByID(out.StockReceivedID)
	require.NoError(t, err)
	assert.Equal(t, 36, received.WarrantyMonths)

	batch, err := env.batchRepo.GetByID(out.BatchID)
	require.NoError(t, err)
	wantUntil := batch.WarrantyFrom.AddDate(0, 36, 0)
	assert.WithinDuration(t, wantUntil, batch.WarrantyUntil, time.Second)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_ArticuloInexistente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.GetStock(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStock_SinRecepcionesEsCero(t *testing.T) {
	env := newTestEnv(t)

	s, err := env.uc.GetStock(env.item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Quantity)
	assert.Equal(t, env.item.ID, s.ItemID)
}
