package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest una línea tal como la digita el usuario.
// Los decimales aceptan número o string en JSON; los signos se validan en el use case.
type DocumentLineRequest struct {
	Description    string          `json:"description" validate:"max=300"`
	HSNCode        string          `json:"hsn_code" validate:"omitempty,max=8,numeric"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitRate       decimal.Decimal `json:"unit_rate"`
	Discount       decimal.Decimal `json:"discount"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

// CreateDocumentRequest entrada para crear una factura o devolución.
type CreateDocumentRequest struct {
	Type      string                `json:"type" validate:"required,oneof=sales_invoice purchase_invoice purchase_return sales_return"`
	PartyID   string                `json:"party_id" validate:"omitempty,uuid"`
	Number    string                `json:"number" validate:"omitempty,max=40"`
	Date      string                `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Reference string                `json:"reference" validate:"omitempty,max=40"`
	Notes     string                `json:"notes" validate:"omitempty,max=1000"`
	Lines     []DocumentLineRequest `json:"lines" validate:"dive"`
}

// UpdateDocumentRequest reemplaza cabecera y líneas de un documento en borrador.
type UpdateDocumentRequest struct {
	PartyID   string                `json:"party_id" validate:"omitempty,uuid"`
	Date      string                `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Reference string                `json:"reference" validate:"omitempty,max=40"`
	Notes     string                `json:"notes" validate:"omitempty,max=1000"`
	Lines     []DocumentLineRequest `json:"lines" validate:"dive"`
}

// PreviewRequest líneas en edición; se recalculan sin persistir.
type PreviewRequest struct {
	Lines []DocumentLineRequest `json:"lines" validate:"dive"`
}

// TotalsResponse totales del documento.
type TotalsResponse struct {
	GrossTotal       decimal.Decimal `json:"gross_total"`
	TotalDiscount    decimal.Decimal `json:"total_discount"`
	SubTotal         decimal.Decimal `json:"sub_total"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	CGST             decimal.Decimal `json:"cgst"`
	SGST             decimal.Decimal `json:"sgst"`
	TotalBeforeRound decimal.Decimal `json:"total_before_round"`
	RoundOff         decimal.Decimal `json:"round_off"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
}

// LineResultResponse importes derivados de una línea.
type LineResultResponse struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// PreviewResponse salida de POST /api/documents/preview.
type PreviewResponse struct {
	Lines  []LineResultResponse `json:"lines"`
	Totals TotalsResponse       `json:"totals"`
}

// DocumentLineResponse línea almacenada más sus importes recalculados.
type DocumentLineResponse struct {
	ID             string          `json:"id"`
	Position       int             `json:"position"`
	Description    string          `json:"description"`
	HSNCode        string          `json:"hsn_code,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitRate       decimal.Decimal `json:"unit_rate"`
	Discount       decimal.Decimal `json:"discount"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	LineResultResponse
}

// DocumentResponse documento completo con totales recalculados desde las líneas.
type DocumentResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Number    string                 `json:"number"`
	Date      time.Time              `json:"date"`
	PartyID   string                 `json:"party_id"`
	PartyName string                 `json:"party_name,omitempty"`
	Reference string                 `json:"reference,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
	Status    string                 `json:"status"`
	Lines     []DocumentLineResponse `json:"lines"`
	Totals    TotalsResponse         `json:"totals"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// DocumentSummaryResponse fila de listado (totales cacheados en cabecera).
type DocumentSummaryResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Number     string          `json:"number"`
	Date       time.Time       `json:"date"`
	PartyID    string          `json:"party_id"`
	Status     string          `json:"status"`
	SubTotal   decimal.Decimal `json:"sub_total"`
	TaxTotal   decimal.Decimal `json:"tax_total"`
	RoundOff   decimal.Decimal `json:"round_off"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// DocumentListRequest filtros de GET /api/documents.
type DocumentListRequest struct {
	Type    string `query:"type" validate:"omitempty,oneof=sales_invoice purchase_invoice purchase_return sales_return"`
	PartyID string `query:"party_id" validate:"omitempty,uuid"`
	From    string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentSummaryResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
