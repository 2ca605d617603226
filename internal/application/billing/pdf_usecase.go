package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura o devolución.
type PDFUseCase struct {
	loader    renderLoader
	generator DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	partyRepo repository.PartyRepository,
	generator DocumentPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		loader:    renderLoader{docRepo: docRepo, companyRepo: companyRepo, partyRepo: partyRepo},
		generator: generator,
	}
}

// DownloadPDF recupera el documento con sus líneas, recalcula totales y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
//   - domain.ErrForbidden        si el documento no pertenece a la empresa del token.
func (uc *PDFUseCase) DownloadPDF(ctx context.Context, companyID, documentID string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.loader.load(ctx, companyID, documentID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("%s_%s.pdf", doc.Document.Type, doc.Document.Number), nil
}
