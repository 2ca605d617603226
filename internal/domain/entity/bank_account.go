package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount cuenta bancaria de la empresa.
type BankAccount struct {
	ID             string
	CompanyID      string
	Name           string
	BankName       string
	AccountNumber  string
	IFSC           string
	OpeningBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
