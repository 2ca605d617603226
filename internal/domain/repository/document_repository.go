package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// DocumentFilter filtros para listar documentos.
type DocumentFilter struct {
	Type    string
	PartyID string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// DocumentRepository define el puerto de persistencia para Document y sus líneas.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	CreateLine(ctx context.Context, line *entity.DocumentLine) error
	// UpdateDraft actualiza la cabecera solo si el documento sigue en DRAFT; no cambia el estado.
	// domain.ErrConflict si ya fue contabilizado, domain.ErrNotFound si no existe.
	UpdateDraft(ctx context.Context, doc *entity.Document) error
	// MarkPosted pasa el documento de DRAFT a POSTED; domain.ErrConflict si ya no estaba en DRAFT.
	MarkPosted(ctx context.Context, id string, at time.Time) error
	// DeleteLines elimina todas las líneas (se usa al reemplazarlas en una edición).
	DeleteLines(ctx context.Context, documentID string) error
	// DeleteDraft elimina un documento en DRAFT; mismos errores que UpdateDraft.
	DeleteDraft(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error)
	ListByCompany(ctx context.Context, companyID string, f DocumentFilter) ([]*entity.Document, int, error)
	ExistsNumber(ctx context.Context, companyID, docType, number string) (bool, error)
	// SumGrandTotalByType suma GrandTotal por tipo en el rango [from, to] (solo para el dashboard).
	SumGrandTotalByType(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error)
}
