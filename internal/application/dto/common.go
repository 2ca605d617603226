package dto

import "time"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"` // campos que fallaron la validación
}

// DateLayout formato de fechas en requests y query params.
const DateLayout = "2006-01-02"

// ParseDate interpreta una fecha YYYY-MM-DD en UTC; vacío devuelve el día de def (00:00 UTC).
func ParseDate(s string, def time.Time) (time.Time, error) {
	if s == "" {
		if def.IsZero() {
			return def, nil
		}
		y, m, d := def.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
