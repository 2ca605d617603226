package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// DocumentTxRunner ejecuta una función dentro de una transacción con el repositorio de documentos.
// Cabecera y líneas se guardan juntas: si fn retorna error se hace rollback.
type DocumentTxRunner interface {
	RunDocument(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error
}

// RenderedDocument todo lo necesario para imprimir o exportar un documento.
// Totals siempre se recalcula desde Lines.
type RenderedDocument struct {
	Company  *entity.Company
	Party    *entity.Party
	Document *entity.Document
	Lines    []*entity.DocumentLine
	Totals   ledger.DocumentTotals
}

// DocumentPDFGenerator genera la representación gráfica del documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *RenderedDocument) ([]byte, error)
}

// VoucherExporter exporta el documento a un formato de importación contable (XML Tally).
type VoucherExporter interface {
	ExportVoucher(ctx context.Context, doc *RenderedDocument) ([]byte, error)
}

// MetricsRecorder registra documentos guardados.
type MetricsRecorder interface {
	DocumentSaved(docType string, grandTotal decimal.Decimal)
}

type nopRecorder struct{}

func (nopRecorder) DocumentSaved(string, decimal.Decimal) {}
