package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ActivosTI-api/internal/application/auth"
	"github.com/jhoicas/ActivosTI-api/internal/application/issuance"
	"github.com/jhoicas/ActivosTI-api/internal/application/requisition"
	"github.com/jhoicas/ActivosTI-api/internal/application/stock"
	"github.com/jhoicas/ActivosTI-api/internal/application/usecase"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	SupplierUC    *usecase.SupplierUseCase
	CatalogUC     *usecase.CatalogItemUseCase
	RequisitionUC *requisition.UseCase
	StockUC       *stock.UseCase
	IssuanceUC    *issuance.UseCase
	VoucherSvc    *issuance.VoucherService
	AssetUC       *usecase.AssetUseCase
	MaintenanceUC *usecase.MaintenanceUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todo excepto auth requiere Bearer
// Token; cada grupo además restringe por rol (admin pasa siempre).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Suppliers (almacén administra; lectura para aprobadores de TI)
	suppliers := protected.Group("/suppliers", RequireRole(entity.RoleAlmacenista, entity.RoleAprobadorTI))
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Catálogo (lectura general; escritura para TI y almacén)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog := protected.Group("/catalog")
	catalog.Get("/", catalogHandler.List)
	catalog.Get("/:id", catalogHandler.GetByID)
	catalogWrite := catalog.Group("/", RequireRole(entity.RoleAprobadorTI, entity.RoleAlmacenista))
	catalogWrite.Post("/", catalogHandler.Create)
	catalogWrite.Put("/:id", catalogHandler.Update)
	catalogWrite.Delete("/:id", catalogHandler.Delete)

	// Requisiciones: cada transición tiene su rol
	reqHandler := NewRequisitionHandler(deps.RequisitionUC)
	issHandler := NewIssuanceHandler(deps.IssuanceUC, deps.VoucherSvc)
	reqs := protected.Group("/requisitions")
	reqs.Get("/", reqHandler.List)
	reqs.Get("/:id", reqHandler.GetByID)
	reqs.Get("/:id/voucher", issHandler.Voucher)
	reqs.Post("/", RequireRole(entity.RoleSolicitante), reqHandler.Create)
	reqs.Post("/:id/submit", RequireRole(entity.RoleSolicitante), reqHandler.Submit)
	reqs.Post("/:id/approve-dept", RequireRole(entity.RoleJefeArea), reqHandler.ApproveDept)
	reqs.Post("/:id/approve-itd", RequireRole(entity.RoleAprobadorTI), reqHandler.ApproveITD)
	reqs.Post("/:id/decline", RequireRole(entity.RoleJefeArea, entity.RoleAprobadorTI), reqHandler.Decline)
	reqs.Post("/:id/issue", RequireRole(entity.RoleAlmacenista), issHandler.Issue)
	reqs.Delete("/:id", RequireRole(entity.RoleAdmin), reqHandler.Delete)

	// Stock (almacén)
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup := protected.Group("/stock", RequireRole(entity.RoleAlmacenista, entity.RoleAprobadorTI))
	stockGroup.Post("/receive", stockHandler.Receive)
	stockGroup.Get("/:itemId", stockHandler.GetStock)
	stockGroup.Get("/:itemId/batches", stockHandler.ListBatches)

	// Activos fijos
	assetHandler := NewAssetHandler(deps.AssetUC)
	assets := protected.Group("/assets")
	assets.Get("/", assetHandler.List)
	assets.Get("/tag/:tag", assetHandler.GetByTag)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Post("/:id/obsolete", RequireRole(entity.RoleAprobadorTI, entity.RoleAlmacenista), assetHandler.MarkObsolete)
	assets.Post("/:id/dispose", RequireRole(entity.RoleAprobadorTI), assetHandler.Dispose)

	// Mantenimiento
	maintHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	maint := protected.Group("/maintenance")
	maint.Get("/", maintHandler.List)
	maint.Get("/:id", maintHandler.GetByID)
	maint.Post("/", maintHandler.Create)
	maint.Post("/:id/assign", RequireRole(entity.RoleAprobadorTI, entity.RoleTecnico), maintHandler.Assign)
	maint.Post("/:id/resolve", RequireRole(entity.RoleTecnico), maintHandler.Resolve)
}
