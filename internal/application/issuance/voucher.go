package issuance

import (
	"context"

	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// VoucherData datos planos para la representación gráfica del acta de entrega.
type VoucherData struct {
	Requisition *entity.Requisition
	Issuance    *entity.StockIssuance
	Item        *entity.CatalogItem
	Requester   *entity.User
	Officer     *entity.User
	Asset       *entity.InventoryAsset // nil para consumibles
}

// VoucherPDFGenerator puerto de generación del acta de entrega en PDF.
type VoucherPDFGenerator interface {
	GenerateVoucherPDF(ctx context.Context, data *VoucherData) ([]byte, error)
}

// VoucherService arma los datos del acta de entrega de una requisición
// procesada y delega el render al generador PDF.
type VoucherService struct {
	reqRepo      repository.RequisitionRepository
	issuanceRepo repository.StockIssuanceRepository
	itemRepo     repository.CatalogItemRepository
	userRepo     repository.UserRepository
	assetRepo    repository.InventoryAssetRepository
	pdfGen       VoucherPDFGenerator
}

// NewVoucherService construye el servicio de actas.
func NewVoucherService(
	reqRepo repository.RequisitionRepository,
	issuanceRepo repository.StockIssuanceRepository,
	itemRepo repository.CatalogItemRepository,
	userRepo repository.UserRepository,
	assetRepo repository.InventoryAssetRepository,
	pdfGen VoucherPDFGenerator,
) *VoucherService {
	return &VoucherService{
		reqRepo:      reqRepo,
		issuanceRepo: issuanceRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		assetRepo:    assetRepo,
		pdfGen:       pdfGen,
	}
}

// VoucherPDF genera el acta de entrega de la requisición indicada. Falla con
// ErrNotFound si la requisición no existe o aún no fue despachada.
func (s *VoucherService) VoucherPDF(ctx context.Context, requisitionID string) ([]byte, error) {
	req, err := s.reqRepo.GetByID(requisitionID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.Status != entity.RequisitionProcessed {
		return nil, domain.ErrInvalidStateTransition
	}

	iss, err := s.issuanceRepo.GetByRequisition(req.ID)
	if err != nil {
		return nil, err
	}
	if iss == nil {
		return nil, domain.ErrNotFound
	}

	data := &VoucherData{Requisition: req, Issuance: iss}

	if data.Item, err = s.itemRepo.GetByID(iss.ItemID); err != nil {
		return nil, err
	}
	if data.Requester, err = s.userRepo.GetByID(req.RequesterID); err != nil {
		return nil, err
	}
	if data.Officer, err = s.userRepo.GetByID(iss.IssuedByID); err != nil {
		return nil, err
	}
	if iss.AssetID != nil {
		if data.Asset, err = s.assetRepo.GetByID(*iss.AssetID); err != nil {
			return nil, err
		}
	}

	return s.pdfGen.GenerateVoucherPDF(ctx, data)
}
