package gst

import (
	"fmt"
	"regexp"
	"strings"
)

// gstinCharset alfabeto base 36 usado por el dígito de control del GSTIN.
const gstinCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Estructura: 2 dígitos de estado + PAN (5 letras, 4 dígitos, 1 letra) + entidad + 'Z' + control.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// NormalizeGSTIN quita espacios y pasa a mayúsculas.
func NormalizeGSTIN(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// ValidateGSTIN valida formato, código de estado y dígito de control (módulo 36) del GSTIN.
// Acepta minúsculas y espacios; la comparación se hace sobre la forma normalizada.
func ValidateGSTIN(s string) error {
	g := NormalizeGSTIN(s)
	if len(g) != 15 {
		return fmt.Errorf("gst: GSTIN debe tener 15 caracteres, se recibieron %d", len(g))
	}
	if !gstinPattern.MatchString(g) {
		return fmt.Errorf("gst: formato de GSTIN inválido: %s", g)
	}
	if _, ok := StateNames[g[:2]]; !ok {
		return fmt.Errorf("gst: código de estado desconocido: %s", g[:2])
	}
	expected, err := ComputeGSTINCheckChar(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("gst: dígito de control del GSTIN inválido: esperado %c, recibido %c", expected, g[14])
	}
	return nil
}

// ComputeGSTINCheckChar calcula el carácter de control para los 14 primeros caracteres.
// Factor alternado 1,2 de izquierda a derecha; cada producto aporta cociente + resto base 36.
func ComputeGSTINCheckChar(base string) (byte, error) {
	if len(base) < 14 {
		return 0, fmt.Errorf("gst: se requieren 14 caracteres para calcular el control, se recibieron %d", len(base))
	}
	var sum int
	for i := 0; i < 14; i++ {
		v := strings.IndexByte(gstinCharset, base[i])
		if v < 0 {
			return 0, fmt.Errorf("gst: carácter inválido %q en la posición %d", base[i], i+1)
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		p := v * factor
		sum += p/36 + p%36
	}
	return gstinCharset[(36-sum%36)%36], nil
}

// StateCode devuelve los 2 primeros caracteres del GSTIN (código de estado) o "" si es muy corto.
func StateCode(gstin string) string {
	g := NormalizeGSTIN(gstin)
	if len(g) < 2 {
		return ""
	}
	return g[:2]
}
