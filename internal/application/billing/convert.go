package billing

import (
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
)

func requestToLineItems(lines []dto.DocumentLineRequest) []ledger.LineItem {
	items := make([]ledger.LineItem, len(lines))
	for i, l := range lines {
		items[i] = ledger.LineItem{
			Quantity:       l.Quantity,
			UnitRate:       l.UnitRate,
			Discount:       l.Discount,
			TaxRatePercent: l.TaxRatePercent,
		}
	}
	return items
}

// LinesToItems convierte las líneas almacenadas en entradas del calculador, en orden.
func LinesToItems(lines []*entity.DocumentLine) []ledger.LineItem {
	items := make([]ledger.LineItem, len(lines))
	for i, l := range lines {
		items[i] = ledger.LineItem{
			Quantity:       l.Quantity,
			UnitRate:       l.UnitRate,
			Discount:       l.Discount,
			TaxRatePercent: l.TaxRatePercent,
		}
	}
	return items
}

func totalsToResponse(t ledger.DocumentTotals) dto.TotalsResponse {
	return dto.TotalsResponse{
		GrossTotal:       t.GrossTotal,
		TotalDiscount:    t.TotalDiscount,
		SubTotal:         t.SubTotal,
		TotalTax:         t.TotalTax,
		CGST:             t.CGST,
		SGST:             t.SGST,
		TotalBeforeRound: t.TotalBeforeRound,
		RoundOff:         t.RoundOff,
		GrandTotal:       t.GrandTotal,
	}
}

func lineResultToResponse(r ledger.LineResult) dto.LineResultResponse {
	return dto.LineResultResponse{
		TaxableAmount: r.TaxableAmount,
		TaxAmount:     r.TaxAmount,
		LineTotal:     r.LineTotal,
	}
}

func toDocumentResponse(doc *entity.Document, partyName string, lines []*entity.DocumentLine, totals ledger.DocumentTotals) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:        doc.ID,
		Type:      doc.Type,
		Number:    doc.Number,
		Date:      doc.Date,
		PartyID:   doc.PartyID,
		PartyName: partyName,
		Reference: doc.Reference,
		Notes:     doc.Notes,
		Status:    doc.Status,
		Lines:     make([]dto.DocumentLineResponse, 0, len(lines)),
		Totals:    totalsToResponse(totals),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for i, l := range lines {
		resp.Lines = append(resp.Lines, dto.DocumentLineResponse{
			ID:                 l.ID,
			Position:           l.Position,
			Description:        l.Description,
			HSNCode:            l.HSNCode,
			Quantity:           l.Quantity,
			UnitRate:           l.UnitRate,
			Discount:           l.Discount,
			TaxRatePercent:     l.TaxRatePercent,
			LineResultResponse: lineResultToResponse(totals.Lines[i]),
		})
	}
	return resp
}

func toDocumentSummary(doc *entity.Document) dto.DocumentSummaryResponse {
	return dto.DocumentSummaryResponse{
		ID:         doc.ID,
		Type:       doc.Type,
		Number:     doc.Number,
		Date:       doc.Date,
		PartyID:    doc.PartyID,
		Status:     doc.Status,
		SubTotal:   doc.SubTotal,
		TaxTotal:   doc.TaxTotal,
		RoundOff:   doc.RoundOff,
		GrandTotal: doc.GrandTotal,
	}
}
