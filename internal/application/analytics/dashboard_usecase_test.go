package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
)

const companyID = "11111111-1111-1111-1111-111111111111"

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestGetSummary_MesEnCurso(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	docs := []*entity.Document{
		{ID: "1", Type: entity.DocSalesInvoice, Number: "SI-1", Date: date("2026-10-02"), GrandTotal: decimal.NewFromInt(1000)},
		{ID: "2", Type: entity.DocSalesInvoice, Number: "SI-2", Date: date("2026-10-10"), GrandTotal: decimal.NewFromInt(500)},
		{ID: "3", Type: entity.DocSalesReturn, Number: "SR-1", Date: date("2026-10-11"), GrandTotal: decimal.NewFromInt(200)},
		{ID: "4", Type: entity.DocPurchaseInvoice, Number: "PI-1", Date: date("2026-10-03"), GrandTotal: decimal.NewFromInt(700)},
		{ID: "5", Type: entity.DocPurchaseReturn, Number: "PR-1", Date: date("2026-10-04"), GrandTotal: decimal.NewFromInt(50)},
		{ID: "6", Type: entity.DocSalesInvoice, Number: "SI-0", Date: date("2026-09-30"), GrandTotal: decimal.NewFromInt(9999)},
	}
	for _, d := range docs {
		d.CompanyID = companyID
		require.NoError(t, store.Documents().Create(ctx, d))
	}
	require.NoError(t, store.Expenses().Create(ctx, &entity.Expense{ID: "e1", CompanyID: companyID, Date: date("2026-10-14"), Amount: decimal.RequireFromString("120.50")}))
	require.NoError(t, store.Expenses().Create(ctx, &entity.Expense{ID: "e2", CompanyID: companyID, Date: date("2026-10-15"), Amount: decimal.NewFromInt(80)}))

	uc := NewDashboardUseCase(store.Documents(), store.Expenses())
	uc.now = func() time.Time { return time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC) }

	got, err := uc.GetSummary(ctx, companyID, "", "")
	require.NoError(t, err)
	assert.True(t, got.SalesTotal.Equal(decimal.NewFromInt(1500)))
	assert.True(t, got.NetSales.Equal(decimal.NewFromInt(1300)))
	assert.True(t, got.NetPurchases.Equal(decimal.NewFromInt(650)))
	assert.True(t, got.ExpensesTotal.Equal(decimal.RequireFromString("120.50")), "el gasto de mañana no entra")
	assert.Equal(t, "2026-10-01", got.From)
	assert.Equal(t, "2026-10-14", got.To)
	assert.Equal(t, "Octubre 2026", got.DateLabel)
}

func TestGetSummary_RangoPersonalizado(t *testing.T) {
	uc := NewDashboardUseCase(memory.New().Documents(), memory.New().Expenses())

	got, err := uc.GetSummary(context.Background(), companyID, "2026-01-01", "2026-03-31")
	require.NoError(t, err)
	assert.True(t, got.SalesTotal.IsZero())
	assert.Equal(t, "Enero 2026 - Marzo 2026", got.DateLabel)

	_, err = uc.GetSummary(context.Background(), companyID, "2026-03-01", "2026-01-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetSummary(context.Background(), companyID, "ayer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
