package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ── Plan de cuentas ───────────────────────────────────────────────────────────

// CreateAccountHeadRequest entrada para crear una cuenta.
type CreateAccountHeadRequest struct {
	Code     string `json:"code" validate:"required,min=1,max=20"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Group    string `json:"group" validate:"required,oneof=asset liability equity income expense"`
	ParentID string `json:"parent_id" validate:"omitempty,uuid"`
}

// UpdateAccountHeadRequest campos opcionales.
type UpdateAccountHeadRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Group    *string `json:"group" validate:"omitempty,oneof=asset liability equity income expense"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

// AccountHeadResponse salida de una cuenta.
type AccountHeadResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Group     string    `json:"group"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Cuentas bancarias ─────────────────────────────────────────────────────────

// CreateBankAccountRequest entrada para registrar una cuenta bancaria.
type CreateBankAccountRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=100"`
	BankName       string          `json:"bank_name" validate:"required,max=100"`
	AccountNumber  string          `json:"account_number" validate:"required,numeric,min=6,max=20"`
	IFSC           string          `json:"ifsc" validate:"required,ifsc"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// UpdateBankAccountRequest campos opcionales; el número de cuenta no se edita.
type UpdateBankAccountRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=100"`
	BankName       *string          `json:"bank_name" validate:"omitempty,max=100"`
	IFSC           *string          `json:"ifsc" validate:"omitempty,ifsc"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
}

// BankAccountResponse salida con el número enmascarado.
type BankAccountResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	BankName       string          `json:"bank_name"`
	AccountNumber  string          `json:"account_number"`
	IFSC           string          `json:"ifsc"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MaskAccountNumber deja visibles solo los últimos 4 dígitos: "123456789" → "XXXXX6789".
func MaskAccountNumber(n string) string {
	if len(n) <= 4 {
		return n
	}
	return strings.Repeat("X", len(n)-4) + n[len(n)-4:]
}
