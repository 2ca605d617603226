// Package gst contiene catálogos y validaciones del régimen GST (India) usados por
// la facturación: GSTIN, códigos de estado, tasas estándar y formato de montos.
package gst

import "github.com/shopspring/decimal"

// =============================================================================
// Tasas GST estándar (slabs). La tasa de la línea es el total; se divide 50/50
// en CGST y SGST para operaciones dentro del mismo estado.
// =============================================================================

// Slabs tasas estándar en porcentaje.
var Slabs = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// IsStandardSlab indica si la tasa corresponde a un slab estándar.
func IsStandardSlab(rate decimal.Decimal) bool {
	for _, s := range Slabs {
		if s.Equal(rate) {
			return true
		}
	}
	return false
}

// =============================================================================
// Códigos de estado GST (primeros 2 dígitos del GSTIN).
// =============================================================================

// StateNames códigos de estado y territorios de la unión.
var StateNames = map[string]string{
	"01": "Jammu and Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"26": "Dadra and Nagar Haveli and Daman and Diu",
	"27": "Maharashtra",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman and Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
	"97": "Other Territory",
}
