package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto registrado contra una cuenta del plan de cuentas.
type Expense struct {
	ID            string
	CompanyID     string
	AccountHeadID string
	BankAccountID string // vacío = pagado en efectivo
	Date          time.Time
	Amount        decimal.Decimal
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
