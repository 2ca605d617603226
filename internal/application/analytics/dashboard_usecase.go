// Package analytics contiene los casos de uso de reportes del tablero.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del período: totales por tipo de documento y gastos.
//
// Los agregados son solo de visualización; la fuente de verdad siguen siendo las líneas.
type DashboardUseCase struct {
	docRepo     repository.DocumentRepository
	expenseRepo repository.ExpenseRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(docRepo repository.DocumentRepository, expenseRepo repository.ExpenseRepository) *DashboardUseCase {
	return &DashboardUseCase{docRepo: docRepo, expenseRepo: expenseRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO para la empresa indicada.
// from/to vacíos = mes en curso (día 1 – hoy).
//
// Dos llamadas en paralelo:
//  1. SumGrandTotalByType(rango) → ventas, compras y devoluciones
//  2. SumAmount(rango)           → gastos
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID, from, to string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().UTC()

	// ── Rango de fechas ────────────────────────────────────────────────────────
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start, err := dto.ParseDate(from, monthStart)
	if err != nil {
		return nil, fmt.Errorf("%w: from", domain.ErrInvalidInput)
	}
	endDay, err := dto.ParseDate(to, todayStart)
	if err != nil {
		return nil, fmt.Errorf("%w: to", domain.ErrInvalidInput)
	}
	if endDay.Before(start) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	end := endDay.Add(24*time.Hour - time.Nanosecond)

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type docsResult struct {
		totals map[string]decimal.Decimal
		err    error
	}
	type expensesResult struct {
		total decimal.Decimal
		err   error
	}

	docsCh := make(chan docsResult, 1)
	expCh := make(chan expensesResult, 1)

	go func() {
		totals, err := uc.docRepo.SumGrandTotalByType(ctx, companyID, start, end)
		docsCh <- docsResult{totals, err}
	}()
	go func() {
		total, err := uc.expenseRepo.SumAmount(ctx, companyID, start, end)
		expCh <- expensesResult{total, err}
	}()

	docs := <-docsCh
	exp := <-expCh

	if docs.err != nil {
		return nil, fmt.Errorf("dashboard: totales de documentos: %w", docs.err)
	}
	if exp.err != nil {
		return nil, fmt.Errorf("dashboard: gastos: %w", exp.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	sales := docs.totals[entity.DocSalesInvoice]
	salesReturns := docs.totals[entity.DocSalesReturn]
	purchases := docs.totals[entity.DocPurchaseInvoice]
	purchaseReturns := docs.totals[entity.DocPurchaseReturn]

	return &dto.DashboardSummaryDTO{
		SalesTotal:           sales,
		SalesReturnsTotal:    salesReturns,
		PurchasesTotal:       purchases,
		PurchaseReturnsTotal: purchaseReturns,
		NetSales:             sales.Sub(salesReturns),
		NetPurchases:         purchases.Sub(purchaseReturns),
		ExpensesTotal:        exp.total,
		From:                 start.Format(dto.DateLayout),
		To:                   endDay.Format(dto.DateLayout),
		DateLabel:            periodLabel(start, endDay),
	}, nil
}

// periodLabel etiqueta legible: "Febrero 2026" si el rango cae en un mes, si no "Enero 2026 - Marzo 2026".
func periodLabel(from, to time.Time) string {
	if from.Year() == to.Year() && from.Month() == to.Month() {
		return monthLabel(from)
	}
	return monthLabel(from) + " - " + monthLabel(to)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
