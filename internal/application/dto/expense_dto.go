package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	AccountHeadID string          `json:"account_head_id" validate:"required,uuid"`
	BankAccountID string          `json:"bank_account_id" validate:"omitempty,uuid"`
	Date          string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note" validate:"omitempty,max=500"`
}

// UpdateExpenseRequest campos opcionales.
type UpdateExpenseRequest struct {
	AccountHeadID *string          `json:"account_head_id" validate:"omitempty,uuid"`
	BankAccountID *string          `json:"bank_account_id" validate:"omitempty,uuid"`
	Date          *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Amount        *decimal.Decimal `json:"amount"`
	Note          *string          `json:"note" validate:"omitempty,max=500"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	AccountHeadID string          `json:"account_head_id"`
	BankAccountID string          `json:"bank_account_id,omitempty"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ExpenseListRequest filtros de GET /api/expenses.
type ExpenseListRequest struct {
	AccountHeadID string `query:"account_head_id" validate:"omitempty,uuid"`
	From          string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To            string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// ExpenseListResponse lista paginada de gastos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ExpenseGroupResponse gastos de una cuenta.
type ExpenseGroupResponse struct {
	AccountHeadID   string            `json:"account_head_id"`
	AccountHeadCode string            `json:"account_head_code"`
	AccountHeadName string            `json:"account_head_name"`
	Count           int               `json:"count"`
	Total           decimal.Decimal   `json:"total"`
	Items           []ExpenseResponse `json:"items"`
}

// ExpenseSummaryResponse gastos agrupados por cuenta, ordenados por nombre de cuenta.
type ExpenseSummaryResponse struct {
	From   string                 `json:"from,omitempty"`
	To     string                 `json:"to,omitempty"`
	Groups []ExpenseGroupResponse `json:"groups"`
	Total  decimal.Decimal        `json:"total"`
}
