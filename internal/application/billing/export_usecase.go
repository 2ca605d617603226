package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// ExportUseCase exporta documentos como vouchers importables por el software contable.
type ExportUseCase struct {
	loader   renderLoader
	exporter VoucherExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	partyRepo repository.PartyRepository,
	exporter VoucherExporter,
) *ExportUseCase {
	return &ExportUseCase{
		loader:   renderLoader{docRepo: docRepo, companyRepo: companyRepo, partyRepo: partyRepo},
		exporter: exporter,
	}
}

// ExportVoucher devuelve el XML del voucher y el nombre de archivo sugerido.
func (uc *ExportUseCase) ExportVoucher(ctx context.Context, companyID, documentID string) ([]byte, string, error) {
	doc, err := uc.loader.load(ctx, companyID, documentID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.ExportVoucher(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("export: %w", err)
	}
	return out, fmt.Sprintf("%s_%s.xml", doc.Document.Type, doc.Document.Number), nil
}
