package dto

import "time"

// CreatePartyRequest entrada para crear un cliente o proveedor.
type CreatePartyRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=customer vendor supplier"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	GSTIN     string `json:"gstin" validate:"omitempty,len=15"`
	StateCode string `json:"state_code" validate:"omitempty,len=2,numeric"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Address   string `json:"address" validate:"omitempty,max=500"`
}

// UpdatePartyRequest campos opcionales; Kind no se puede cambiar si tiene documentos.
type UpdatePartyRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	GSTIN     *string `json:"gstin" validate:"omitempty,max=15"`
	StateCode *string `json:"state_code" validate:"omitempty,len=2,numeric"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
}

// PartyResponse salida de un tercero.
type PartyResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	GSTIN     string    `json:"gstin,omitempty"`
	StateCode string    `json:"state_code,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartyListResponse lista paginada de terceros.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
