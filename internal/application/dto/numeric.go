package dto

import "github.com/shopspring/decimal"

// NumericColumn precisión de una columna NUMERIC(IntDigits+Scale, Scale).
type NumericColumn struct {
	IntDigits int32
	Scale     int32
}

// Columnas donde se guardan los valores tal como se digitan.
var (
	AmountColumn = NumericColumn{IntDigits: 14, Scale: 4} // cantidades, tarifas, descuentos, montos
	RateColumn   = NumericColumn{IntDigits: 4, Scale: 2}  // porcentajes de impuesto
)

// Fits indica si v se guarda sin redondeo ni desbordamiento.
func (c NumericColumn) Fits(v decimal.Decimal) bool {
	if !v.Equal(v.Truncate(c.Scale)) {
		return false
	}
	return v.Abs().LessThan(decimal.New(1, c.IntDigits))
}
