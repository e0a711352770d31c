package requisition_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/application/ports"
	"github.com/jhoicas/ActivosTI-api/internal/application/requisition"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeReqRepo imita la semántica del repositorio real: GetByID/List excluyen
// soft-deleted, GetForUpdate las incluye, y las lecturas devuelven copias para
// que las mutaciones solo sean visibles tras Update.
type fakeReqRepo struct {
	seq  int
	byID map[string]*entity.Requisition
}

func newFakeReqRepo() *fakeReqRepo {
	return &fakeReqRepo{byID: map[string]*entity.Requisition{}}
}

func (r *fakeReqRepo) Create(req *entity.Requisition) error {
	r.seq++
	req.Code = fmt.Sprintf("REQ-%d-%04d", time.Now().Year(), r.seq)
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

func (r *fakeReqRepo) GetByCode(code string) (*entity.Requisition, error) {
	for _, req := range r.byID {
		if req.Code == code && req.DeletedAt == nil {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

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
	var out []*entity.Requisition
	for _, req := range r.byID {
		if req.DeletedAt != nil {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.RequesterID != "" && req.RequesterID != filter.RequesterID {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeReqRepo) SoftDelete(id string) error {
	if req, ok := r.byID[id]; ok {
		now := time.Now()
		req.DeletedAt = &now
	}
	return nil
}

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.byID[id], nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

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
	params    map[string]string
}

type fakeNotifier struct {
	sent    []sentMail
	failAll bool
}

func (n *fakeNotifier) Send(_ context.Context, recipient, template string, params map[string]string) error {
	if n.failAll {
		return errors.New("smtp: conexión rechazada")
	}
	n.sent = append(n.sent, sentMail{recipient: recipient, template: template, params: params})
	return nil
}

// fakeTx ejecuta el callback directamente contra los fakes: no hay transacción
// real, pero el contrato del puerto se respeta.
type fakeTx struct {
	reqRepo   *fakeReqRepo
	auditRepo *fakeAuditRepo
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.RequisitionRepository, repository.AuditRepository) error) error {
	return fn(f.reqRepo, f.auditRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	uc        *requisition.UseCase
	reqRepo   *fakeReqRepo
	userRepo  *fakeUserRepo
	itemRepo  *fakeItemRepo
	auditRepo *fakeAuditRepo
	notifier  *fakeNotifier

	requester    *entity.User
	deptApprover *entity.User
	itdApprover  *entity.User
}

func newUser(role, email string) *entity.User {
	return &entity.User{
		ID:         uuid.New().String(),
		Email:      email,
		Name:       "Usuario " + role,
		Role:       role,
		Department: "Contabilidad",
		Status:     "active",
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		reqRepo:   newFakeReqRepo(),
		userRepo:  &fakeUserRepo{byID: map[string]*entity.User{}},
		itemRepo:  &fakeItemRepo{byID: map[string]*entity.CatalogItem{}},
		auditRepo: &fakeAuditRepo{},
		notifier:  &fakeNotifier{},
	}
	env.requester = newUser(entity.RoleSolicitante, "ana@example.test")
	env.deptApprover = newUser(entity.RoleJefeArea, "jefe@example.test")
	env.itdApprover = newUser(entity.RoleAprobadorTI, "ti@example.test")
	for _, u := range []*entity.User{env.requester, env.deptApprover, env.itdApprover} {
		require.NoError(t, env.userRepo.Create(u))
	}
	tx := &fakeTx{reqRepo: env.reqRepo, auditRepo: env.auditRepo}
	env.uc = requisition.NewUseCase(tx, env.reqRepo, env.userRepo, env.itemRepo, env.notifier, nil)
	return env
}

func (env *testEnv) create(t *testing.T) *entity.Requisition {
	t.Helper()
	req, err := env.uc.Create(context.Background(), env.requester.ID, dto.CreateRequisitionRequest{
		Description: "Portátil para contadora",
		Quantity:    1,
		Department:  "Contabilidad",
	})
	require.NoError(t, err)
	return req
}

func (env *testEnv) submit(t *testing.T, req *entity.Requisition) *entity.Requisition {
	t.Helper()
	out, err := env.uc.Submit(context.Background(), req.ID, env.requester.ID, dto.SubmitRequisitionRequest{
		DeptApproverID: env.deptApprover.ID,
		ITDApproverID:  env.itdApprover.ID,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CreaEnEstadoSubmitted(t *testing.T) {
	env := newTestEnv(t)

	req, err := env.uc.Create(context.Background(), env.requester.ID, dto.CreateRequisitionRequest{
		Description: "UPS para el rack",
		Quantity:    2,
		Department:  "Contabilidad",
		Unit:        "Tesorería",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RequisitionSubmitted, req.Status)
	assert.Regexp(t, `^REQ-\d{4}-\d{4}$`, req.Code, "el código legible lo asigna la persistencia")
	assert.Equal(t, entity.UrgencyMedium, req.Urgency, "urgencia por defecto: medium")
	assert.Nil(t, req.ItemID, "sin artículo fijado hasta el despacho")

	entry := env.auditRepo.last()
	require.NotNil(t, entry, "toda creación deja auditoría")
	assert.Equal(t, entity.AuditRequisitionCreated, entry.Action)
	assert.Equal(t, req.ID, entry.EntityID)
}

func TestCreate_SolicitanteInactivo(t *testing.T) {
	env := newTestEnv(t)
	env.requester.Status = "inactive"

	_, err := env.uc.Create(context.Background(), env.requester.ID, dto.CreateRequisitionRequest{
		Description: "Mouse",
		Quantity:    1,
		Department:  "Contabilidad",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), env.requester.ID, dto.CreateRequisitionRequest{
		Description: "   ",
		Quantity:    1,
		Department:  "Contabilidad",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descripción en blanco")

	_, err = env.uc.Create(context.Background(), env.requester.ID, dto.CreateRequisitionRequest{
		Description: "Teclado",
		Quantity:    0,
		Department:  "Contabilidad",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

func TestCreate_ArticuloInexistente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Create(context.Background(), env.requester.ID, dto.CreateRequisitionRequest{
		ItemID:      uuid.New().String(),
		Description: "Impresora",
		Quantity:    1,
		Department:  "Contabilidad",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_LigaAprobadoresYNotifica(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)

	out := env.submit(t, req)

	assert.Equal(t, entity.RequisitionPendingDeptApproval, out.Status)
	require.NotNil(t, out.DeptApproverID)
	require.NotNil(t, out.ITDApproverID)
	assert.Equal(t, env.deptApprover.ID, *out.DeptApproverID)
	assert.Equal(t, env.itdApprover.ID, *out.ITDApproverID)

	require.Len(t, env.notifier.sent, 1, "se notifica al jefe de área")
	assert.Equal(t, env.deptApprover.Email, env.notifier.sent[0].recipient)
	assert.Equal(t, ports.TemplateRequisitionSubmitted, env.notifier.sent[0].template)
}

func TestSubmit_SoloElSolicitante(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)

	_, err := env.uc.Submit(context.Background(), req.ID, env.deptApprover.ID, dto.SubmitRequisitionRequest{
		DeptApproverID: env.deptApprover.ID,
		ITDApproverID:  env.itdApprover.ID,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stored, _ := env.reqRepo.GetByID(req.ID)
	assert.Equal(t, entity.RequisitionSubmitted, stored.Status, "sin mutación tras el rechazo")
}

func TestSubmit_AprobadorConRolIncorrecto(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	impostor := newUser(entity.RoleSolicitante, "impostor@example.test")
	require.NoError(t, env.userRepo.Create(impostor))

	_, err := env.uc.Submit(context.Background(), req.ID, env.requester.ID, dto.SubmitRequisitionRequest{
		DeptApproverID: impostor.ID,
		ITDApproverID:  env.itdApprover.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el aprobador de área debe ser jefe_area")
}

func TestSubmit_EstadoIncorrecto(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)

	// Re-enviar una requisición ya enviada no es idempotente.
	_, err := env.uc.Submit(context.Background(), req.ID, env.requester.ID, dto.SubmitRequisitionRequest{
		DeptApproverID: env.deptApprover.ID,
		ITDApproverID:  env.itdApprover.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestSubmit_FalloDeNotificacionNoRevierte(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.notifier.failAll = true

	out, err := env.uc.Submit(context.Background(), req.ID, env.requester.ID, dto.SubmitRequisitionRequest{
		DeptApproverID: env.deptApprover.ID,
		ITDApproverID:  env.itdApprover.ID,
	})
	require.NoError(t, err, "la notificación es best-effort")
	assert.Equal(t, entity.RequisitionPendingDeptApproval, out.Status)

	stored, _ := env.reqRepo.GetByID(req.ID)
	assert.Equal(t, entity.RequisitionPendingDeptApproval, stored.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación en dos etapas
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveDept_TransicionaAPendingITD(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)

	out, err := env.uc.ApproveDept(context.Background(), req.ID, env.deptApprover.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionPendingITDApproval, out.Status)

	entry := env.auditRepo.last()
	assert.Equal(t, entity.AuditRequisitionDeptApproved, entry.Action)
	require.NotNil(t, entry.OldState)
	assert.Equal(t, entity.RequisitionPendingDeptApproval, *entry.OldState)

	last := env.notifier.sent[len(env.notifier.sent)-1]
	assert.Equal(t, env.requester.Email, last.recipient, "se notifica al solicitante")
	assert.Equal(t, ports.TemplateRequisitionApproved, last.template)
}

// El actor debe ser exactamente el aprobador ligado; otro jefe de área no sirve.
func TestApproveDept_ActorNoEsAprobadorLigado(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)
	otroJefe := newUser(entity.RoleJefeArea, "otro-jefe@example.test")
	require.NoError(t, env.userRepo.Create(otroJefe))

	_, err := env.uc.ApproveDept(context.Background(), req.ID, otroJefe.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestApproveITD_CierraCadenaEnITDApproved(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)

	_, err := env.uc.ApproveDept(context.Background(), req.ID, env.deptApprover.ID)
	require.NoError(t, err)

	out, err := env.uc.ApproveITD(context.Background(), req.ID, env.itdApprover.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionITDApproved, out.Status)
}

// No se puede saltar la etapa de departamento.
func TestApproveITD_SinAprobacionDeArea(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)

	_, err := env.uc.ApproveITD(context.Background(), req.ID, env.itdApprover.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decline
// ──────────────────────────────────────────────────────────────────────────────

func TestDecline_RazonObligatoria(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)

	_, err := env.uc.Decline(context.Background(), req.ID, env.deptApprover.ID, dto.DeclineRequisitionRequest{Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, _ := env.reqRepo.GetByID(req.ID)
	assert.Equal(t, entity.RequisitionPendingDeptApproval, stored.Status, "sin mutación si falta la razón")
}

func TestDecline_EtapaDepartamento(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)

	out, err := env.uc.Decline(context.Background(), req.ID, env.deptApprover.ID, dto.DeclineRequisitionRequest{
		Reason: "sin presupuesto este trimestre",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RequisitionDeptDeclined, out.Status)
	require.NotNil(t, out.DeclineReason)
	assert.Equal(t, "sin presupuesto este trimestre", *out.DeclineReason)

	entry := env.auditRepo.last()
	assert.Equal(t, entity.AuditRequisitionDeclined, entry.Action)
	assert.Equal(t, "sin presupuesto este trimestre", entry.Metadata["reason"])
}

func TestDecline_EtapaTI(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)
	_, err := env.uc.ApproveDept(context.Background(), req.ID, env.deptApprover.ID)
	require.NoError(t, err)

	out, err := env.uc.Decline(context.Background(), req.ID, env.itdApprover.ID, dto.DeclineRequisitionRequest{
		Reason: "hay equipo disponible en bodega",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionITDDeclined, out.Status)
}

func TestDecline_FueraDeEtapaPendiente(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t) // aún submitted, sin enviar

	_, err := env.uc.Decline(context.Background(), req.ID, env.deptApprover.ID, dto.DeclineRequisitionRequest{
		Reason: "no aplica",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Soft delete
// ──────────────────────────────────────────────────────────────────────────────

// Una requisición eliminada responde ErrGone a cualquier transición, nunca 404.
func TestTransicion_RequisicionEliminada(t *testing.T) {
	env := newTestEnv(t)
	req := env.create(t)
	env.submit(t, req)
	require.NoError(t, env.uc.SoftDelete(req.ID))

	_, err := env.uc.ApproveDept(context.Background(), req.ID, env.deptApprover.ID)
	assert.ErrorIs(t, err, domain.ErrGone)

	_, err = env.uc.GetByID(req.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "las lecturas normales no la ven")
}

func TestTransicion_RequisicionInexistente(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.ApproveDept(context.Background(), uuid.New().String(), env.deptApprover.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
