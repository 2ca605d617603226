package repository

import (
	"context"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// BankAccountRepository define el puerto de persistencia para BankAccount.
type BankAccountRepository interface {
	Create(ctx context.Context, account *entity.BankAccount) error
	GetByID(ctx context.Context, id string) (*entity.BankAccount, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.BankAccount, error)
	Update(ctx context.Context, account *entity.BankAccount) error
	Delete(ctx context.Context, id string) error
}
