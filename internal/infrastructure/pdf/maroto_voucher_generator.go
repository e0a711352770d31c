// Package pdf implementa la representación gráfica del acta de entrega de
// equipos (comprobante de despacho de una requisición).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Acta de Entrega  │  Código REQ + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: Nombre / Departamento / Unidad / Sala          │
//	│  DESPACHADO POR: almacenista                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | Marca/Modelo | Etiqueta activo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GARANTÍA + QR de verificación + firmas                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/ActivosTI-api/internal/application/issuance"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ issuance.VoucherPDFGenerator = (*MarotoVoucherGenerator)(nil)

// MarotoVoucherGenerator implementa issuance.VoucherPDFGenerator usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// GenerateVoucherPDF genera el acta de entrega y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateVoucherPDF(_ context.Context, data *issuance.VoucherData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Entrega de Equipos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requesterRow(data))
	m.AddRows(officerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRow(data))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range footerRows(data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y código + fecha de despacho (der).
func headerRow(data *issuance.VoucherData) core.Row {
	fecha := data.Issuance.IssuedAt.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ACTA DE ENTREGA DE EQUIPOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Departamento de Tecnologías de la Información", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REQUISICIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(data.Requisition.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Despacho: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// requesterRow: datos del funcionario que recibe.
func requesterRow(data *issuance.VoucherData) core.Row {
	name := "—"
	if data.Requester != nil {
		name = data.Requester.Name
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECIBE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Departamento: %s   |   Unidad: %s   |   Sala: %s",
				nonEmpty(data.Requisition.Department, "—"),
				nonEmpty(data.Requisition.Unit, "—"),
				nonEmpty(data.Requisition.Room, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// officerRow: almacenista que despacha.
func officerRow(data *issuance.VoucherData) core.Row {
	name := "—"
	if data.Officer != nil {
		name = data.Officer.Name
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New("ENTREGA (ALMACÉN)", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Size: 9, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de entrega.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Artículo", 5, align.Left),
		h("Marca / Modelo", 3, align.Left),
		h("Etiqueta de activo", 3, align.Right),
	)
}

// itemRow: la línea despachada (una requisición despacha un artículo).
func itemRow(data *issuance.VoucherData) core.Row {
	itemName, brandModel := "—", "—"
	if data.Item != nil {
		itemName = fmt.Sprintf("%s (%s)", data.Item.Name, data.Item.Code)
		brandModel = fmt.Sprintf("%s / %s", nonEmpty(data.Item.Brand, "—"), nonEmpty(data.Item.Model, "—"))
	}
	tag := "N/A (consumible)"
	if data.Asset != nil {
		tag = data.Asset.AssetTag
	}
	return row.New(7).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", data.Issuance.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(5).Add(text.New(itemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(brandModel, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(tag, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// footerRows: garantía, QR de verificación y bloque de firmas.
func footerRows(data *issuance.VoucherData) []core.Row {
	rows := []core.Row{}

	if data.Asset != nil {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Garantía vigente hasta: %s", data.Asset.WarrantyUntil.Format("02/01/2006")),
				props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	if data.Issuance.Note != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Nota de entrega: "+data.Issuance.Note, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	rows = append(rows, row.New(3))

	qr := fmt.Sprintf("ACTA|%s|%s", data.Requisition.Code, data.Issuance.ID)
	rows = append(rows, row.New(40).Add(
		col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
		col.New(4).Add(
			text.New("_______________________", props.Text{Size: 9, Top: 22, Align: align.Center}),
			text.New("Firma de quien recibe", props.Text{Size: 7, Top: 28, Align: align.Center, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("_______________________", props.Text{Size: 9, Top: 22, Align: align.Center}),
			text.New("Firma de almacén", props.Text{Size: 7, Top: 28, Align: align.Center, Color: colorGray}),
		),
	))

	return rows
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
