package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/ActivosTI-api/internal/domain"
	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
)

// Classify devuelve la clasificación de un artículo (servicio de dominio puro).
// Decide si el despacho materializa un activo fijo o solo descuenta stock.
func Classify(item *entity.CatalogItem) string {
	if item != nil && item.Classification == entity.ClassificationFixedAsset {
		return entity.ClassificationFixedAsset
	}
	return entity.ClassificationConsumable
}

// DeviceDetailKind mapea el tipo de dispositivo del catálogo a la variante de
// detalle correspondiente. Tipos desconocidos fallan cerrado con
// ErrUnsupportedDeviceType: nunca se omite silenciosamente la creación del
// detalle cuando hay payload de especificación.
func DeviceDetailKind(deviceType string) (entity.DeviceDetailKind, error) {
	switch deviceType {
	case entity.DeviceTypeLaptop:
		return entity.DetailLaptop, nil
	case entity.DeviceTypeDesktop:
		return entity.DetailDesktop, nil
	case entity.DeviceTypePrinter:
		return entity.DetailPrinter, nil
	case entity.DeviceTypeUPS:
		return entity.DetailUPS, nil
	case entity.DeviceTypeOther:
		return entity.DetailOther, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedDeviceType, deviceType)
	}
}

// BuildDeviceDetail construye el sub-registro de detalle de un activo a partir
// del payload de especificación del artículo. Devuelve (nil, nil) si el
// artículo no trae payload. Exactamente una variante queda poblada.
func BuildDeviceDetail(item *entity.CatalogItem) (*entity.DeviceDetail, error) {
	if len(item.SpecPayload) == 0 {
		return nil, nil
	}
	kind, err := DeviceDetailKind(item.DeviceType)
	if err != nil {
		return nil, err
	}
	detail := &entity.DeviceDetail{Kind: kind}
	switch kind {
	case entity.DetailLaptop:
		var d entity.LaptopDetail
		if err := json.Unmarshal(item.SpecPayload, &d); err != nil {
			return nil, fmt.Errorf("%w: spec de laptop: %v", domain.ErrInvalidInput, err)
		}
		detail.Laptop = &d
	case entity.DetailDesktop:
		var d entity.DesktopDetail
		if err := json.Unmarshal(item.SpecPayload, &d); err != nil {
			return nil, fmt.Errorf("%w: spec de desktop: %v", domain.ErrInvalidInput, err)
		}
		detail.Desktop = &d
	case entity.DetailPrinter:
		var d entity.PrinterDetail
		if err := json.Unmarshal(item.SpecPayload, &d); err != nil {
			return nil, fmt.Errorf("%w: spec de impresora: %v", domain.ErrInvalidInput, err)
		}
		detail.Printer = &d
	case entity.DetailUPS:
		var d entity.UPSDetail
		if err := json.Unmarshal(item.SpecPayload, &d); err != nil {
			return nil, fmt.Errorf("%w: spec de ups: %v", domain.ErrInvalidInput, err)
		}
		detail.UPS = &d
	case entity.DetailOther:
		var d entity.OtherDetail
		if err := json.Unmarshal(item.SpecPayload, &d); err != nil {
			return nil, fmt.Errorf("%w: spec genérica: %v", domain.ErrInvalidInput, err)
		}
		detail.Other = &d
	}
	return detail, nil
}
