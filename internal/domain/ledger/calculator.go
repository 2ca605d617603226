// Package ledger calcula los totales de un documento de líneas (factura, compra o devolución):
// base gravable por línea, impuesto GST por línea, total bruto, descuentos, CGST/SGST,
// redondeo y gran total.
//
// Es un servicio de dominio puro: sin I/O, sin estado y sin errores. Cualquier entrada
// numérica produce un resultado (incluso descuentos mayores al valor de la línea, que
// generan base e impuesto negativos y no se corrigen).
package ledger

import "github.com/shopspring/decimal"

var half = decimal.New(5, -1)

// LineItem una fila del documento. Es un valor inmutable; el calculador nunca la modifica.
type LineItem struct {
	Quantity       decimal.Decimal // admite fracciones (ej. kg)
	UnitRate       decimal.Decimal // precio unitario antes de descuento e impuesto
	Discount       decimal.Decimal // monto absoluto, no porcentaje
	TaxRatePercent decimal.Decimal // 0, 5, 12, 18, 28 en la práctica
}

// LineResult valores derivados de una línea.
type LineResult struct {
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
	LineTotal     decimal.Decimal
}

// DocumentTotals agregados del documento completo.
// Lines conserva el orden de entrada para la numeración en pantalla.
type DocumentTotals struct {
	GrossTotal       decimal.Decimal
	TotalDiscount    decimal.Decimal
	SubTotal         decimal.Decimal
	TotalTax         decimal.Decimal
	CGST             decimal.Decimal
	SGST             decimal.Decimal
	TotalBeforeRound decimal.Decimal
	RoundOff         decimal.Decimal
	GrandTotal       decimal.Decimal
	Lines            []LineResult
}

// Gross valor de la línea antes de descuento e impuesto.
func (i LineItem) Gross() decimal.Decimal {
	return i.Quantity.Mul(i.UnitRate)
}

// ComputeLine calcula base gravable, impuesto y total de una línea:
//
//	taxable = quantity*unitRate - discount
//	tax     = taxable*taxRatePercent/100
//	total   = taxable + tax
func ComputeLine(item LineItem) LineResult {
	taxable := item.Gross().Sub(item.Discount)
	tax := taxable.Mul(item.TaxRatePercent).Shift(-2)
	return LineResult{
		TaxableAmount: taxable,
		TaxAmount:     tax,
		LineTotal:     taxable.Add(tax),
	}
}

// ComputeDocument agrega las líneas en el orden recibido (acumulación izquierda a derecha).
// El impuesto se calcula por línea y luego se suma; se divide 50/50 en CGST y SGST.
// El gran total se redondea a unidades enteras (mitad lejos de cero) y RoundOff es la
// diferencia con signo, de modo que SubTotal + TotalTax + RoundOff == GrandTotal.
func ComputeDocument(items []LineItem) DocumentTotals {
	var gross, discount, tax decimal.Decimal
	lines := make([]LineResult, 0, len(items))
	for _, item := range items {
		line := ComputeLine(item)
		gross = gross.Add(item.Gross())
		discount = discount.Add(item.Discount)
		tax = tax.Add(line.TaxAmount)
		lines = append(lines, line)
	}

	subTotal := gross.Sub(discount)
	beforeRound := subTotal.Add(tax)
	grand := beforeRound.Round(0)
	// mitad exacta: CGST + SGST == TotalTax sin pérdida
	split := tax.Mul(half)

	return DocumentTotals{
		GrossTotal:       gross,
		TotalDiscount:    discount,
		SubTotal:         subTotal,
		TotalTax:         tax,
		CGST:             split,
		SGST:             split,
		TotalBeforeRound: beforeRound,
		RoundOff:         grand.Sub(beforeRound),
		GrandTotal:       grand,
		Lines:            lines,
	}
}
