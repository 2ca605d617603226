package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/billing"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/infrastructure/pdf"
)

func sampleDocument(docType string) *billing.RenderedDocument {
	lines := []*entity.DocumentLine{
		{ID: "l1", Position: 1, Description: "Steel rod 12mm", HSNCode: "7214", Quantity: decimal.NewFromInt(10), UnitRate: decimal.RequireFromString("450.50"), Discount: decimal.NewFromInt(100), TaxRatePercent: decimal.NewFromInt(18)},
		{ID: "l2", Position: 2, Description: "Cartage", Quantity: decimal.NewFromInt(1), UnitRate: decimal.NewFromInt(250), TaxRatePercent: decimal.NewFromInt(5)},
	}
	return &billing.RenderedDocument{
		Company:  &entity.Company{Name: "Acme Traders", GSTIN: "27AAPFU0939F1ZV", StateCode: "27"},
		Party:    &entity.Party{Name: "Bharat Builders", Kind: entity.PartyCustomer, GSTIN: "29AAGCB7383J1Z4", StateCode: "29"},
		Document: &entity.Document{Type: docType, Number: "SI-1001", Date: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)},
		Lines:    lines,
		Totals:   ledger.ComputeDocument(billing.LinesToItems(lines)),
	}
}

func TestGenerateDocumentPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	for _, docType := range []string{entity.DocSalesInvoice, entity.DocPurchaseReturn} {
		out, err := g.GenerateDocumentPDF(context.Background(), sampleDocument(docType))
		require.NoError(t, err, docType)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
		assert.Greater(t, len(out), 1000)
	}
}

func TestGenerateDocumentPDF_Incompleto(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	doc := sampleDocument(entity.DocSalesInvoice)
	doc.Party = nil
	_, err := g.GenerateDocumentPDF(context.Background(), doc)
	assert.Error(t, err)

	doc = sampleDocument(entity.DocSalesInvoice)
	doc.Totals = ledger.DocumentTotals{}
	_, err = g.GenerateDocumentPDF(context.Background(), doc)
	assert.Error(t, err, "totales sin líneas")
}
