// Package tally exporta documentos como vouchers XML importables por Tally.
package tally

import (
	"bytes"
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/billing"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// Nombres de voucher por tipo de documento.
var voucherTypes = map[string]string{
	entity.DocSalesInvoice:    "Sales",
	entity.DocPurchaseInvoice: "Purchase",
	entity.DocPurchaseReturn:  "Debit Note",
	entity.DocSalesReturn:     "Credit Note",
}

// Ledgers nombres de las cuentas contables destino en Tally.
type Ledgers struct {
	Sales    string
	Purchase string
	CGST     string
	SGST     string
	RoundOff string
}

// DefaultLedgers nombres de los ledgers predefinidos en una empresa Tally con GST.
func DefaultLedgers() Ledgers {
	return Ledgers{Sales: "Sales", Purchase: "Purchase", CGST: "CGST", SGST: "SGST", RoundOff: "Round Off"}
}

var _ billing.VoucherExporter = (*VoucherBuilder)(nil)

// VoucherBuilder construye el ENVELOPE de importación con un VOUCHER por documento.
type VoucherBuilder struct {
	ledgers Ledgers
}

// NewVoucherBuilder construye el exportador; campos vacíos usan DefaultLedgers.
func NewVoucherBuilder(l Ledgers) *VoucherBuilder {
	def := DefaultLedgers()
	if l.Sales == "" {
		l.Sales = def.Sales
	}
	if l.Purchase == "" {
		l.Purchase = def.Purchase
	}
	if l.CGST == "" {
		l.CGST = def.CGST
	}
	if l.SGST == "" {
		l.SGST = def.SGST
	}
	if l.RoundOff == "" {
		l.RoundOff = def.RoundOff
	}
	return &VoucherBuilder{ledgers: l}
}

// ExportVoucher genera el XML. Convención Tally: débitos negativos, créditos positivos.
// Los importes van a 2 decimales y el ledger de redondeo absorbe la diferencia para que el voucher cuadre.
func (b *VoucherBuilder) ExportVoucher(_ context.Context, doc *billing.RenderedDocument) ([]byte, error) {
	if doc == nil || doc.Document == nil || doc.Company == nil || doc.Party == nil {
		return nil, fmt.Errorf("tally: documento incompleto")
	}
	vchType, ok := voucherTypes[doc.Document.Type]
	if !ok {
		return nil, fmt.Errorf("tally: tipo de documento no soportado %q", doc.Document.Type)
	}
	if len(doc.Totals.Lines) != len(doc.Lines) {
		return nil, fmt.Errorf("tally: totales no corresponden a las líneas")
	}

	// El tercero va al débito en ventas y devoluciones de compra.
	partySign := decimal.NewFromInt(1)
	if doc.Document.Type == entity.DocSalesInvoice || doc.Document.Type == entity.DocPurchaseReturn {
		partySign = decimal.NewFromInt(-1)
	}
	otherSign := partySign.Neg()
	itemLedger := b.ledgers.Sales
	if entity.IsPurchaseSide(doc.Document.Type) {
		itemLedger = b.ledgers.Purchase
	}

	xdoc := etree.NewDocument()
	xdoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := xdoc.CreateElement("ENVELOPE")
	env.CreateElement("HEADER").CreateElement("TALLYREQUEST").SetText("Import Data")
	importData := env.CreateElement("BODY").CreateElement("IMPORTDATA")

	desc := importData.CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText("Vouchers")
	desc.CreateElement("STATICVARIABLES").CreateElement("SVCURRENTCOMPANY").SetText(doc.Company.Name)

	msg := importData.CreateElement("REQUESTDATA").CreateElement("TALLYMESSAGE")
	msg.CreateAttr("xmlns:UDF", "TallyUDF")

	vch := msg.CreateElement("VOUCHER")
	vch.CreateAttr("VCHTYPE", vchType)
	vch.CreateAttr("ACTION", "Create")
	vch.CreateElement("DATE").SetText(doc.Document.Date.Format("20060102"))
	vch.CreateElement("VOUCHERTYPENAME").SetText(vchType)
	vch.CreateElement("VOUCHERNUMBER").SetText(doc.Document.Number)
	vch.CreateElement("PARTYLEDGERNAME").SetText(doc.Party.Name)
	if doc.Party.GSTIN != "" {
		vch.CreateElement("PARTYGSTIN").SetText(doc.Party.GSTIN)
	}
	if doc.Party.StateCode != "" {
		vch.CreateElement("PLACEOFSUPPLY").SetText(doc.Party.StateCode)
	}
	if doc.Document.Reference != "" {
		vch.CreateElement("REFERENCE").SetText(doc.Document.Reference)
	}
	if doc.Document.Notes != "" {
		vch.CreateElement("NARRATION").SetText(doc.Document.Notes)
	}
	vch.CreateElement("ISINVOICE").SetText("Yes")

	grand := doc.Totals.GrandTotal.Round(2)
	addLedgerEntry(vch, doc.Party.Name, partySign.Mul(grand))

	posted := decimal.Zero // suma de los importes del lado contrario ya redondeados
	for i, l := range doc.Lines {
		taxable := doc.Totals.Lines[i].TaxableAmount.Round(2)
		posted = posted.Add(taxable)
		inv := vch.CreateElement("ALLINVENTORYENTRIES.LIST")
		inv.CreateElement("STOCKITEMNAME").SetText(itemName(l))
		if l.HSNCode != "" {
			inv.CreateElement("GSTHSNCODE").SetText(l.HSNCode)
		}
		inv.CreateElement("GSTRATE").SetText(l.TaxRatePercent.String())
		inv.CreateElement("ISDEEMEDPOSITIVE").SetText(yesNo(otherSign.IsNegative()))
		inv.CreateElement("RATE").SetText(l.UnitRate.StringFixed(2))
		inv.CreateElement("DISCOUNT").SetText(l.Discount.StringFixed(2))
		inv.CreateElement("ACTUALQTY").SetText(l.Quantity.String())
		inv.CreateElement("BILLEDQTY").SetText(l.Quantity.String())
		inv.CreateElement("AMOUNT").SetText(otherSign.Mul(taxable).StringFixed(2))
		alloc := inv.CreateElement("ACCOUNTINGALLOCATIONS.LIST")
		alloc.CreateElement("LEDGERNAME").SetText(itemLedger)
		alloc.CreateElement("AMOUNT").SetText(otherSign.Mul(taxable).StringFixed(2))
	}

	cgst := doc.Totals.CGST.Round(2)
	sgst := doc.Totals.SGST.Round(2)
	if !cgst.IsZero() {
		addLedgerEntry(vch, b.ledgers.CGST, otherSign.Mul(cgst))
		posted = posted.Add(cgst)
	}
	if !sgst.IsZero() {
		addLedgerEntry(vch, b.ledgers.SGST, otherSign.Mul(sgst))
		posted = posted.Add(sgst)
	}
	if roundOff := grand.Sub(posted); !roundOff.IsZero() {
		addLedgerEntry(vch, b.ledgers.RoundOff, otherSign.Mul(roundOff))
	}

	xdoc.Indent(2)
	var buf bytes.Buffer
	if _, err := xdoc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("tally: escribir XML: %w", err)
	}
	return buf.Bytes(), nil
}

func addLedgerEntry(vch *etree.Element, ledger string, amount decimal.Decimal) {
	e := vch.CreateElement("LEDGERENTRIES.LIST")
	e.CreateElement("LEDGERNAME").SetText(ledger)
	e.CreateElement("ISDEEMEDPOSITIVE").SetText(yesNo(amount.IsNegative()))
	e.CreateElement("AMOUNT").SetText(amount.StringFixed(2))
}

func itemName(l *entity.DocumentLine) string {
	if l.Description != "" {
		return l.Description
	}
	return fmt.Sprintf("Item %d", l.Position)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
