package entity

// DeviceDetailKind identifica la variante de detalle de un activo.
type DeviceDetailKind string

// Variantes de detalle de dispositivo. Mutuamente excluyentes por activo.
const (
	DetailLaptop  DeviceDetailKind = "laptop"
	DetailDesktop DeviceDetailKind = "desktop"
	DetailPrinter DeviceDetailKind = "printer"
	DetailUPS     DeviceDetailKind = "ups"
	DetailOther   DeviceDetailKind = "other"
)

// DeviceDetail es una unión etiquetada: exactamente una variante poblada,
// seleccionada por el tipo de dispositivo del artículo al crear el activo.
// Se persiste como una sola fila (kind + payload JSONB), no como tablas
// paralelas con claves foráneas anulables.
type DeviceDetail struct {
	AssetID string
	Kind    DeviceDetailKind
	Laptop  *LaptopDetail
	Desktop *DesktopDetail
	Printer *PrinterDetail
	UPS     *UPSDetail
	Other   *OtherDetail
}

// LaptopDetail especificaciones propias de un portátil.
type LaptopDetail struct {
	CPU          string `json:"cpu"`
	RAMGB        int    `json:"ram_gb"`
	StorageGB    int    `json:"storage_gb"`
	ScreenInches float64 `json:"screen_inches"`
	SerialNumber string `json:"serial_number"`
}

// DesktopDetail especificaciones propias de un equipo de escritorio.
type DesktopDetail struct {
	CPU          string `json:"cpu"`
	RAMGB        int    `json:"ram_gb"`
	StorageGB    int    `json:"storage_gb"`
	MonitorModel string `json:"monitor_model"`
	SerialNumber string `json:"serial_number"`
}

// PrinterDetail especificaciones propias de una impresora.
type PrinterDetail struct {
	Technology   string `json:"technology"` // laser, inkjet, thermal
	ColorSupport bool   `json:"color_support"`
	DuplexPrint  bool   `json:"duplex_print"`
	SerialNumber string `json:"serial_number"`
}

// UPSDetail especificaciones propias de una UPS.
type UPSDetail struct {
	CapacityVA   int    `json:"capacity_va"`
	BatteryType  string `json:"battery_type"`
	Outlets      int    `json:"outlets"`
	SerialNumber string `json:"serial_number"`
}

// OtherDetail especificaciones de dispositivos sin variante propia.
type OtherDetail struct {
	Description  string `json:"description"`
	SerialNumber string `json:"serial_number"`
}
