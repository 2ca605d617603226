package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// PartyFilter filtros para listar terceros.
type PartyFilter struct {
	Kind   string // vacío = todos
	Search string // coincidencia parcial por nombre o GSTIN
	Limit  int
	Offset int
}

// PartyRepository define el puerto de persistencia para Party (clientes y proveedores).
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, id string) (*entity.Party, error)
	GetByCompanyAndGSTIN(ctx context.Context, companyID, gstin string) (*entity.Party, error)
	ListByCompany(ctx context.Context, companyID string, f PartyFilter) ([]*entity.Party, error)
	Update(ctx context.Context, party *entity.Party) error
	Delete(ctx context.Context, id string) error
}
