// Package pdf implementa la representación gráfica de facturas y devoluciones GST.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + GSTIN     │  Tipo + N° + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email / Estado                    │
//	│  TERCERO: Nombre + GSTIN + contacto                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Descripción | HSN | Cant | Tarifa | Desc | GST | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Bruto / Descuento / Base / CGST / SGST / Redondeo  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de verificación + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/billing"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/pkg/gst"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Títulos por tipo de documento.
var documentTitles = map[string]string{
	entity.DocSalesInvoice:    "TAX INVOICE",
	entity.DocPurchaseInvoice: "PURCHASE INVOICE",
	entity.DocPurchaseReturn:  "DEBIT NOTE (PURCHASE RETURN)",
	entity.DocSalesReturn:     "CREDIT NOTE (SALES RETURN)",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ billing.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, doc *billing.RenderedDocument) ([]byte, error) {
	if doc == nil || doc.Document == nil || doc.Company == nil || doc.Party == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	if len(doc.Totals.Lines) != len(doc.Lines) {
		return nil, fmt.Errorf("pdf: totales no corresponden a las líneas (%d vs %d)", len(doc.Totals.Lines), len(doc.Lines))
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(doc.Document.Type)+" "+doc.Document.Number, true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc.Document, doc.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(doc.Company))
	m.AddRows(partyRow(doc.Document.Type, doc.Party))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(doc.Lines, doc.Totals.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Totals))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(doc)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + GSTIN (izq) y tipo, número y fecha (der).
func headerRow(doc *entity.Document, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("GSTIN: "+nonEmpty(company.GSTIN, "Unregistered"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title(doc.Type), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+doc.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos de la empresa.
func emisorRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("FROM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Address: %s   |   Tel: %s   |   Email: %s   |   State: %s",
				nonEmpty(company.Address, "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
				stateLabel(company.StateCode),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// partyRow: cliente en ventas, proveedor en compras.
func partyRow(docType string, party *entity.Party) core.Row {
	heading := "BILL TO"
	if entity.IsPurchaseSide(docType) {
		heading = "SUPPLIER"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(heading, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(party.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("GSTIN: %s   |   State: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(party.GSTIN, "Unregistered"),
				stateLabel(party.StateCode),
				nonEmpty(party.Email, "-"),
				nonEmpty(party.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Description", 3, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Rate", 2, align.Right),
		h("Disc.", 1, align.Right),
		h("GST%", 1, align.Center),
		h("Amount", 2, align.Right),
	)
}

// tableLineRows: una fila por línea, en el orden de captura.
func tableLineRows(lines []*entity.DocumentLine, results []ledger.LineResult) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		out = append(out, row.New(7).Add(
			cell(fmt.Sprint(l.Position), 1, align.Center),
			cell(nonEmpty(l.Description, "-"), 3, align.Left),
			cell(l.HSNCode, 1, align.Center),
			cell(l.Quantity.String(), 1, align.Right),
			cell(gst.FormatAmount(l.UnitRate), 2, align.Right),
			cell(gst.FormatAmount(l.Discount), 1, align.Right),
			cell(l.TaxRatePercent.String()+"%", 1, align.Center),
			cell(gst.FormatAmount(results[i].LineTotal), 2, align.Right),
		))
	}
	return out
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t ledger.DocumentTotals) core.Row {
	entries := []struct {
		label string
		value decimal.Decimal
	}{
		{"Gross:", t.GrossTotal},
		{"Discount:", t.TotalDiscount},
		{"Sub total:", t.SubTotal},
		{"CGST:", t.CGST},
		{"SGST:", t.SGST},
		{"Round off:", t.RoundOff},
	}
	labels := make([]core.Component, 0, len(entries)+1)
	values := make([]core.Component, 0, len(entries)+1)
	for i, e := range entries {
		top := float64(i * 5)
		labels = append(labels, text.New(e.label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values = append(values, text.New(rupees(e.value), props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	grandTop := float64(len(entries) * 5)
	labels = append(labels, text.New("GRAND TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: grandTop,
	}))
	values = append(values, text.New(rupees(t.GrandTotal), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: grandTop,
	}))

	return row.New(grandTop+8).Add(
		col.New(6), // espacio izquierdo
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

// footerRows: QR con los datos clave del documento y leyenda.
func footerRows(doc *billing.RenderedDocument) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(qrPayload(doc), props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("All amounts in INR. CGST and SGST are half of the line GST rate each.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("This is a computer generated document.", props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 16, Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
}

// qrPayload GSTIN emisor|GSTIN tercero|número|fecha|total|líneas.
func qrPayload(doc *billing.RenderedDocument) string {
	return strings.Join([]string{
		doc.Company.GSTIN,
		doc.Party.GSTIN,
		doc.Document.Number,
		doc.Document.Date.Format("02/01/2006"),
		doc.Totals.GrandTotal.StringFixed(2),
		fmt.Sprint(len(doc.Lines)),
	}, "|")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func title(docType string) string {
	if t, ok := documentTitles[docType]; ok {
		return t
	}
	return "DOCUMENT"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func stateLabel(code string) string {
	if name, ok := gst.StateNames[code]; ok {
		return code + " - " + name
	}
	return nonEmpty(code, "-")
}

// rupees usa "Rs." porque las fuentes estándar del PDF no incluyen el glifo ₹.
func rupees(v decimal.Decimal) string {
	s := gst.FormatAmount(v)
	if strings.HasPrefix(s, "-") {
		return "-Rs. " + s[1:]
	}
	return "Rs. " + s
}
