package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Totales del período (por defecto el mes en curso) por tipo de documento y gastos.
type DashboardSummaryDTO struct {
	SalesTotal           decimal.Decimal `json:"sales_total"`
	SalesReturnsTotal    decimal.Decimal `json:"sales_returns_total"`
	PurchasesTotal       decimal.Decimal `json:"purchases_total"`
	PurchaseReturnsTotal decimal.Decimal `json:"purchase_returns_total"`

	NetSales     decimal.Decimal `json:"net_sales"`     // ventas - devoluciones de venta
	NetPurchases decimal.Decimal `json:"net_purchases"` // compras - devoluciones de compra

	ExpensesTotal decimal.Decimal `json:"expenses_total"`

	// Metadatos del período
	From      string `json:"from"`
	To        string `json:"to"`
	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}
