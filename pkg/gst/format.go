package gst

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	inPrinter = message.NewPrinter(language.MustParse("en-IN"))
	maxInt64  = decimal.NewFromInt(math.MaxInt64)
)

// FormatINR formatea un monto con agrupación en-IN y 2 decimales.
// Ej: 1500 → "₹1,500.00"; -20.5 → "-₹20.50".
func FormatINR(amount decimal.Decimal) string {
	sign, digits := formatParts(amount)
	return sign + "₹" + digits
}

// FormatAmount igual que FormatINR pero sin símbolo (tablas de detalle).
func FormatAmount(amount decimal.Decimal) string {
	sign, digits := formatParts(amount)
	return sign + digits
}

// formatParts redondea a 2 decimales y separa el signo del resultado ya redondeado:
// -0.004 queda en "0.00" sin signo. La parte entera se agrupa en-IN (lakh/crore);
// fuera del rango de int64 se imprime sin separadores.
func formatParts(amount decimal.Decimal) (sign, digits string) {
	r := amount.Round(2)
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	fixed := r.StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]
	if r.Truncate(0).LessThanOrEqual(maxInt64) {
		intPart = inPrinter.Sprintf("%d", r.IntPart())
	}
	return sign, intPart + "." + frac
}
