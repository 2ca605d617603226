package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain/entity"
)

// ExpenseFilter filtros para listar gastos.
type ExpenseFilter struct {
	AccountHeadID string
	From          *time.Time
	To            *time.Time
	Limit         int // 0 = sin límite (resúmenes)
	Offset        int
}

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	ListByCompany(ctx context.Context, companyID string, f ExpenseFilter) ([]*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id string) error
	SumAmount(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
}
