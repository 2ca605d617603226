package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento con líneas.
const (
	DocSalesInvoice    = "sales_invoice"
	DocPurchaseInvoice = "purchase_invoice"
	DocPurchaseReturn  = "purchase_return"
	DocSalesReturn     = "sales_return"
)

// Estados del documento.
const (
	DocStatusDraft  = "DRAFT"
	DocStatusPosted = "POSTED"
)

// Document cabecera de una factura o devolución.
// Los totales se guardan como caché para listados; la fuente de verdad son las líneas.
type Document struct {
	ID         string
	CompanyID  string
	PartyID    string
	Type       string // ver constantes Doc*
	Number     string
	Date       time.Time
	Reference  string // número de la factura original en devoluciones
	Notes      string
	Status     string
	SubTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	RoundOff   decimal.Decimal
	GrandTotal decimal.Decimal
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentLine una línea del documento tal como la digitó el usuario.
type DocumentLine struct {
	ID             string
	DocumentID     string
	Position       int // orden de captura, base 1
	Description    string
	HSNCode        string
	Quantity       decimal.Decimal
	UnitRate       decimal.Decimal
	Discount       decimal.Decimal
	TaxRatePercent decimal.Decimal
}

// IsPurchaseSide indica si el documento pertenece al ciclo de compras.
func IsPurchaseSide(docType string) bool {
	return docType == DocPurchaseInvoice || docType == DocPurchaseReturn
}

// IsValidDocType valida el tipo de documento.
func IsValidDocType(docType string) bool {
	switch docType {
	case DocSalesInvoice, DocPurchaseInvoice, DocPurchaseReturn, DocSalesReturn:
		return true
	}
	return false
}

// DocumentPrefix prefijo de numeración por tipo de documento.
func DocumentPrefix(docType string) string {
	switch docType {
	case DocSalesInvoice:
		return "SI"
	case DocPurchaseInvoice:
		return "PI"
	case DocPurchaseReturn:
		return "PR"
	case DocSalesReturn:
		return "SR"
	}
	return "DOC"
}
