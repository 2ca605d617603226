package tally_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/billing"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/infrastructure/tally"
)

func rendered(docType string, lines ...*entity.DocumentLine) *billing.RenderedDocument {
	return &billing.RenderedDocument{
		Company:  &entity.Company{Name: "Acme Traders", GSTIN: "27AAPFU0939F1ZV"},
		Party:    &entity.Party{Name: "Bharat Builders", GSTIN: "29AAGCB7383J1Z4", StateCode: "29"},
		Document: &entity.Document{Type: docType, Number: "X-1", Date: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), Notes: "octubre"},
		Lines:    lines,
		Totals:   ledger.ComputeDocument(billing.LinesToItems(lines)),
	}
}

func ln(pos int, qty, rate, disc, tax string) *entity.DocumentLine {
	return &entity.DocumentLine{
		Position:       pos,
		Description:    "item",
		Quantity:       decimal.RequireFromString(qty),
		UnitRate:       decimal.RequireFromString(rate),
		Discount:       decimal.RequireFromString(disc),
		TaxRatePercent: decimal.RequireFromString(tax),
	}
}

func parse(t *testing.T, out []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	vch := doc.FindElement("//VOUCHER")
	require.NotNil(t, vch)
	return vch
}

// sumAmounts suma los AMOUNT de ledgers e inventario (sin contar las asignaciones contables).
func sumAmounts(t *testing.T, vch *etree.Element) decimal.Decimal {
	t.Helper()
	total := decimal.Zero
	for _, path := range []string{"LEDGERENTRIES.LIST/AMOUNT", "ALLINVENTORYENTRIES.LIST/AMOUNT"} {
		for _, el := range vch.FindElements(path) {
			total = total.Add(decimal.RequireFromString(el.Text()))
		}
	}
	return total
}

func TestExportVoucher_TiposYSignos(t *testing.T) {
	cases := []struct {
		docType     string
		vchType     string
		partyAmount string
	}{
		{entity.DocSalesInvoice, "Sales", "-236.00"},
		{entity.DocPurchaseInvoice, "Purchase", "236.00"},
		{entity.DocPurchaseReturn, "Debit Note", "-236.00"},
		{entity.DocSalesReturn, "Credit Note", "236.00"},
	}
	b := tally.NewVoucherBuilder(tally.Ledgers{})
	for _, tc := range cases {
		t.Run(tc.docType, func(t *testing.T) {
			out, err := b.ExportVoucher(context.Background(), rendered(tc.docType, ln(1, "2", "100", "0", "18")))
			require.NoError(t, err)
			vch := parse(t, out)

			assert.Equal(t, tc.vchType, vch.SelectAttrValue("VCHTYPE", ""))
			assert.Equal(t, tc.vchType, vch.FindElement("VOUCHERTYPENAME").Text())
			assert.Equal(t, "20261014", vch.FindElement("DATE").Text())
			assert.Equal(t, "Bharat Builders", vch.FindElement("PARTYLEDGERNAME").Text())

			entries := vch.FindElements("LEDGERENTRIES.LIST")
			require.Len(t, entries, 3, "tercero + CGST + SGST")
			assert.Equal(t, "Bharat Builders", entries[0].FindElement("LEDGERNAME").Text())
			assert.Equal(t, tc.partyAmount, entries[0].FindElement("AMOUNT").Text())
			assert.Equal(t, "CGST", entries[1].FindElement("LEDGERNAME").Text())

			assert.True(t, sumAmounts(t, vch).IsZero(), "el voucher debe cuadrar")
		})
	}
}

func TestExportVoucher_RedondeoCuadra(t *testing.T) {
	b := tally.NewVoucherBuilder(tally.Ledgers{RoundOff: "Rounding"})
	out, err := b.ExportVoucher(context.Background(), rendered(entity.DocSalesInvoice,
		ln(1, "1.5", "33.33", "0", "12"),
		ln(2, "3", "0.333", "0", "5"),
	))
	require.NoError(t, err)
	vch := parse(t, out)

	var names []string
	for _, e := range vch.FindElements("LEDGERENTRIES.LIST/LEDGERNAME") {
		names = append(names, e.Text())
	}
	assert.Contains(t, names, "Rounding")
	assert.Len(t, vch.FindElements("ALLINVENTORYENTRIES.LIST"), 2)
	assert.Equal(t, "Sales", vch.FindElement("ALLINVENTORYENTRIES.LIST/ACCOUNTINGALLOCATIONS.LIST/LEDGERNAME").Text())
	assert.True(t, sumAmounts(t, vch).IsZero())
}

func TestExportVoucher_Errores(t *testing.T) {
	b := tally.NewVoucherBuilder(tally.DefaultLedgers())
	doc := rendered("quotation", ln(1, "1", "1", "0", "0"))
	_, err := b.ExportVoucher(context.Background(), doc)
	assert.Error(t, err)

	_, err = b.ExportVoucher(context.Background(), nil)
	assert.Error(t, err)
}
