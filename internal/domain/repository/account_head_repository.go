package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// AccountHeadRepository define el puerto de persistencia del plan de cuentas.
type AccountHeadRepository interface {
	Create(ctx context.Context, head *entity.AccountHead) error
	GetByID(ctx context.Context, id string) (*entity.AccountHead, error)
	GetByCompanyAndCode(ctx context.Context, companyID, code string) (*entity.AccountHead, error)
	ListByCompany(ctx context.Context, companyID, group string) ([]*entity.AccountHead, error)
	Update(ctx context.Context, head *entity.AccountHead) error
	Delete(ctx context.Context, id string) error
}
