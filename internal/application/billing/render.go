package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/ledger"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// renderLoader carga documento, líneas, empresa y tercero para PDF y exportación.
type renderLoader struct {
	docRepo     repository.DocumentRepository
	companyRepo repository.CompanyRepository
	partyRepo   repository.PartyRepository
}

func (l renderLoader) load(ctx context.Context, companyID, documentID string) (*RenderedDocument, error) {
	doc, err := l.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := l.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	party, err := l.partyRepo.GetByID(ctx, doc.PartyID)
	if err != nil {
		return nil, fmt.Errorf("obtener tercero: %w", err)
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := l.docRepo.GetLines(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("obtener líneas: %w", err)
	}
	return &RenderedDocument{
		Company:  company,
		Party:    party,
		Document: doc,
		Lines:    lines,
		Totals:   ledger.ComputeDocument(LinesToItems(lines)),
	}, nil
}
