package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ActivosTI-api/internal/application/dto"
	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/domain/repository"
)

// CatalogItemUseCase casos de uso CRUD para artículos del catálogo.
// La clasificación es inmutable después de la creación: determina el branching
// del despacho y no puede cambiar cuando ya hay stock o requisiciones que la
// referencian.
type CatalogItemUseCase struct {
	repo repository.CatalogItemRepository
}

// NewCatalogItemUseCase construye el caso de uso.
func NewCatalogItemUseCase(repo repository.CatalogItemRepository) *CatalogItemUseCase {
	return &CatalogItemUseCase{repo: repo}
}

// Create crea un artículo. Código único; duplicado devuelve ErrDuplicate.
func (uc *CatalogItemUseCase) Create(in dto.CreateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	var supplierID *string
	if in.SupplierID != "" {
		supplierID = &in.SupplierID
	}
	now := time.Now()
	item := &entity.CatalogItem{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Name:           in.Name,
		DeviceType:     in.DeviceType,
		Classification: in.Classification,
		Brand:          in.Brand,
		Model:          in.Model,
		WarrantyMonths: in.WarrantyMonths,
		SupplierID:     supplierID,
		SpecPayload:    in.SpecPayload,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toCatalogItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *CatalogItemUseCase) GetByID(id string) (*dto.CatalogItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toCatalogItemResponse(item), nil
}

// Update actualiza un artículo. Un intento de cambiar la clasificación se
// rechaza explícitamente en lugar de ignorarse.
func (uc *CatalogItemUseCase) Update(id string, in dto.UpdateCatalogItemRequest) (*dto.CatalogItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Classification != "" && in.Classification != item.Classification {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if in.Brand != "" {
		item.Brand = in.Brand
	}
	if in.Model != "" {
		item.Model = in.Model
	}
	if in.WarrantyMonths > 0 {
		item.WarrantyMonths = in.WarrantyMonths
	}
	if in.SupplierID != "" {
		item.SupplierID = &in.SupplierID
	}
	if len(in.SpecPayload) > 0 {
		item.SpecPayload = in.SpecPayload
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toCatalogItemResponse(item), nil
}

// List lista artículos con paginación.
func (uc *CatalogItemUseCase) List(limit, offset int) ([]dto.CatalogItemResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toCatalogItemResponse(it))
	}
	return items, nil
}

// Delete marca el artículo como eliminado (soft delete).
func (uc *CatalogItemUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

func toCatalogItemResponse(i *entity.CatalogItem) *dto.CatalogItemResponse {
	if i == nil {
		return nil
	}
	return &dto.CatalogItemResponse{
		ID:             i.ID,
		Code:           i.Code,
		Name:           i.Name,
		DeviceType:     i.DeviceType,
		Classification: i.Classification,
		Brand:          i.Brand,
		Model:          i.Model,
		WarrantyMonths: i.WarrantyMonths,
		SupplierID:     i.SupplierID,
		SpecPayload:    i.SpecPayload,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
