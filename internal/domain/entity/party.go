package entity

import "time"

// Tipos de tercero.
const (
	PartyCustomer = "customer"
	PartyVendor   = "vendor"
	PartySupplier = "supplier"
)

// Party representa un tercero comercial: cliente, proveedor o suministrador.
type Party struct {
	ID        string
	CompanyID string
	Kind      string // ver constantes Party*
	Name      string
	GSTIN     string // vacío si el tercero no está registrado
	StateCode string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSeller indica si el tercero es del lado de compras (vendor o supplier).
func (p *Party) IsSeller() bool {
	return p.Kind == PartyVendor || p.Kind == PartySupplier
}
