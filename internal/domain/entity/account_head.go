package entity

import "time"

// Grupos del plan de cuentas.
const (
	GroupAsset     = "asset"
	GroupLiability = "liability"
	GroupEquity    = "equity"
	GroupIncome    = "income"
	GroupExpense   = "expense"
)

// AccountHead cuenta del plan de cuentas (chart of accounts).
type AccountHead struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Group     string // ver constantes Group*
	ParentID  string // vacío = cuenta raíz
	CreatedAt time.Time
	UpdatedAt time.Time
}
