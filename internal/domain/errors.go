package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Validaciones previas al envío de un documento o gasto.
	ErrAmountNotPositive = errors.New("el monto debe ser mayor que cero")
	ErrPartyRequired     = errors.New("debe seleccionar un tercero")
	ErrPartyKindMismatch = errors.New("el tipo de tercero no corresponde al documento")
	ErrInvalidGSTIN      = errors.New("GSTIN inválido")
)
