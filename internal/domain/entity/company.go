package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
type Company struct {
	ID        string
	Name      string
	GSTIN     string // GSTIN de 15 caracteres (opcional para no registrados)
	StateCode string // código de estado de 2 dígitos (primeros 2 del GSTIN)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
