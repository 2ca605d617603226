package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/application/usecase"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
)

const (
	companyID = "11111111-1111-1111-1111-111111111111"
	otherCoID = "22222222-2222-2222-2222-222222222222"
	userID    = "33333333-3333-3333-3333-333333333333"

	validGSTIN = "27AAPFU0939F1ZV"
	otherGSTIN = "29AAGCB7383J1Z4"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

// ── Empresas ──────────────────────────────────────────────────────────────────

func TestCompany_CreateValidaGSTIN(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCompanyUseCase(memory.New().Companies())

	c, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Acme", GSTIN: " 27aapfu0939f1zv "})
	require.NoError(t, err)
	assert.Equal(t, validGSTIN, c.GSTIN)
	assert.Equal(t, "27", c.StateCode)
	assert.Equal(t, "Maharashtra", c.StateName)
	assert.Equal(t, "active", c.Status)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", GSTIN: validGSTIN})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Mala", GSTIN: "27AAPFU0939F1ZA"})
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN)

	unregistered, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Sin GSTIN"})
	require.NoError(t, err)
	assert.Empty(t, unregistered.StateCode)

	updated, err := uc.Update(ctx, c.ID, dto.UpdateCompanyRequest{Phone: ptr("+91 22 1234 5678"), Status: ptr("suspended")})
	require.NoError(t, err)
	assert.Equal(t, "suspended", updated.Status)
	assert.Equal(t, "Acme", updated.Name)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func TestUser_UpdateRoles(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	now := time.Now()
	admin := &entity.User{ID: userID, CompanyID: companyID, Email: "admin@acme.in", Role: entity.RoleAdmin, Status: "active", CreatedAt: now}
	clerk := &entity.User{ID: "44444444-4444-4444-4444-444444444444", CompanyID: companyID, Email: "clerk@acme.in", Role: entity.RoleViewer, Status: "active", CreatedAt: now.Add(time.Second)}
	require.NoError(t, store.Users().Create(ctx, admin))
	require.NoError(t, store.Users().Create(ctx, clerk))
	uc := usecase.NewUserUseCase(store.Users())

	got, err := uc.Update(ctx, companyID, admin.ID, clerk.ID, dto.UpdateUserRequest{Role: ptr(entity.RoleAccountant)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAccountant, got.Role)

	_, err = uc.Update(ctx, companyID, admin.ID, admin.ID, dto.UpdateUserRequest{Role: ptr(entity.RoleViewer)})
	assert.ErrorIs(t, err, domain.ErrConflict, "un admin no se quita su propio rol")

	_, err = uc.Update(ctx, companyID, admin.ID, admin.ID, dto.UpdateUserRequest{Status: ptr("inactive")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.GetByID(ctx, otherCoID, clerk.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(ctx, companyID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "admin@acme.in", list.Items[0].Email)
}

// ── Terceros ──────────────────────────────────────────────────────────────────

func TestParty_CRUD(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewPartyUseCase(store.Parties())

	p, err := uc.Create(ctx, companyID, dto.CreatePartyRequest{Kind: entity.PartyCustomer, Name: "  Zeta Traders ", GSTIN: validGSTIN})
	require.NoError(t, err)
	assert.Equal(t, "Zeta Traders", p.Name)
	assert.Equal(t, "27", p.StateCode, "el estado se deriva del GSTIN")

	_, err = uc.Create(ctx, companyID, dto.CreatePartyRequest{Kind: entity.PartyVendor, Name: "Dup", GSTIN: validGSTIN})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo GSTIN en otra empresa es válido.
	_, err = uc.Create(ctx, otherCoID, dto.CreatePartyRequest{Kind: entity.PartyVendor, Name: "Dup", GSTIN: validGSTIN})
	assert.NoError(t, err)

	_, err = uc.Create(ctx, companyID, dto.CreatePartyRequest{Kind: entity.PartyVendor, Name: "Estado", GSTIN: otherGSTIN, StateCode: "27"})
	assert.ErrorIs(t, err, domain.ErrInvalidGSTIN, "el estado debe coincidir con el GSTIN")

	_, err = uc.Create(ctx, companyID, dto.CreatePartyRequest{Kind: entity.PartyVendor, Name: "Alfa Supplies"})
	require.NoError(t, err)

	list, err := uc.List(ctx, companyID, "", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Alfa Supplies", list.Items[0].Name, "orden por nombre")

	vendors, err := uc.List(ctx, companyID, entity.PartyVendor, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, vendors.Items, 1)

	found, err := uc.List(ctx, companyID, "", "zeta", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)

	updated, err := uc.Update(ctx, companyID, p.ID, dto.UpdatePartyRequest{GSTIN: ptr(otherGSTIN)})
	require.NoError(t, err)
	assert.Equal(t, "29", updated.StateCode)

	_, err = uc.Get(ctx, otherCoID, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, uc.Delete(ctx, companyID, p.ID))
	_, err = uc.Get(ctx, companyID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParty_DeleteConDocumentos(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewPartyUseCase(store.Parties())
	p, err := uc.Create(ctx, companyID, dto.CreatePartyRequest{Kind: entity.PartyCustomer, Name: "Con factura"})
	require.NoError(t, err)
	require.NoError(t, store.Documents().Create(ctx, &entity.Document{ID: "doc-1", CompanyID: companyID, PartyID: p.ID, Type: entity.DocSalesInvoice, Number: "SI-1"}))

	assert.ErrorIs(t, uc.Delete(ctx, companyID, p.ID), domain.ErrConflict)
}

// ── Plan de cuentas y bancos ──────────────────────────────────────────────────

func TestAccount_Heads(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewAccountUseCase(store.AccountHeads(), store.BankAccounts())

	parent, err := uc.CreateHead(ctx, companyID, dto.CreateAccountHeadRequest{Code: "ex-100", Name: "Gastos operativos", Group: entity.GroupExpense})
	require.NoError(t, err)
	assert.Equal(t, "EX-100", parent.Code)

	child, err := uc.CreateHead(ctx, companyID, dto.CreateAccountHeadRequest{Code: "EX-110", Name: "Arriendo", Group: entity.GroupExpense, ParentID: parent.ID})
	require.NoError(t, err)

	_, err = uc.CreateHead(ctx, companyID, dto.CreateAccountHeadRequest{Code: "EX-100", Name: "Dup", Group: entity.GroupExpense})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateHead(ctx, companyID, dto.CreateAccountHeadRequest{Code: "AS-1", Name: "Caja", Group: entity.GroupAsset, ParentID: parent.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el padre debe ser del mismo grupo")

	_, err = uc.UpdateHead(ctx, companyID, parent.ID, dto.UpdateAccountHeadRequest{ParentID: ptr(child.ID)})
	assert.ErrorIs(t, err, domain.ErrConflict, "ciclo padre-hijo")

	heads, err := uc.ListHeads(ctx, companyID, entity.GroupExpense)
	require.NoError(t, err)
	assert.Len(t, heads, 2)

	assert.ErrorIs(t, uc.DeleteHead(ctx, companyID, parent.ID), domain.ErrConflict, "tiene subcuentas")
	require.NoError(t, uc.DeleteHead(ctx, companyID, child.ID))
}

func TestAccount_BankAccountEnmascarado(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewAccountUseCase(store.AccountHeads(), store.BankAccounts())

	acc, err := uc.CreateBankAccount(ctx, companyID, dto.CreateBankAccountRequest{
		Name: "Corriente", BankName: "HDFC", AccountNumber: "50100012345678", IFSC: "hdfc0001234", OpeningBalance: d("1500.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "XXXXXXXXXX5678", acc.AccountNumber)
	assert.Equal(t, "HDFC0001234", acc.IFSC)

	stored, err := store.BankAccounts().GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "50100012345678", stored.AccountNumber, "se guarda el número completo")

	updated, err := uc.UpdateBankAccount(ctx, companyID, acc.ID, dto.UpdateBankAccountRequest{OpeningBalance: ptr(d("2000"))})
	require.NoError(t, err)
	assert.True(t, updated.OpeningBalance.Equal(d("2000")))

	_, err = uc.GetBankAccount(ctx, otherCoID, acc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ── Gastos ────────────────────────────────────────────────────────────────────

func TestExpense_CreateYSummary(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	accounts := usecase.NewAccountUseCase(store.AccountHeads(), store.BankAccounts())
	uc := usecase.NewExpenseUseCase(store.Expenses(), store.AccountHeads(), store.BankAccounts())

	rent, err := accounts.CreateHead(ctx, companyID, dto.CreateAccountHeadRequest{Code: "EX-1", Name: "Rent", Group: entity.GroupExpense})
	require.NoError(t, err)
	power, err := accounts.CreateHead(ctx, companyID, dto.CreateAccountHeadRequest{Code: "EX-2", Name: "Electricity", Group: entity.GroupExpense})
	require.NoError(t, err)

	_, err = uc.Create(ctx, companyID, userID, dto.CreateExpenseRequest{AccountHeadID: rent.ID, Amount: d("0")})
	assert.ErrorIs(t, err, domain.ErrAmountNotPositive)
	_, err = uc.Create(ctx, companyID, userID, dto.CreateExpenseRequest{AccountHeadID: rent.ID, Amount: d("-5")})
	assert.ErrorIs(t, err, domain.ErrAmountNotPositive)
	_, err = uc.Create(ctx, companyID, userID, dto.CreateExpenseRequest{Amount: d("5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cuenta obligatoria")
	_, err = uc.Create(ctx, companyID, userID, dto.CreateExpenseRequest{AccountHeadID: rent.ID, Amount: d("10.00005")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "más decimales de los que se guardan")
	_, err = uc.Create(ctx, companyID, userID, dto.CreateExpenseRequest{AccountHeadID: rent.ID, Amount: d("100000000000000")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fuera de rango")

	for _, e := range []dto.CreateExpenseRequest{
		{AccountHeadID: rent.ID, Date: "2026-10-01", Amount: d("25000")},
		{AccountHeadID: power.ID, Date: "2026-10-05", Amount: d("1200.40")},
		{AccountHeadID: power.ID, Date: "2026-10-03", Amount: d("800.10")},
		{AccountHeadID: rent.ID, Date: "2026-09-01", Amount: d("25000")},
	} {
		_, err := uc.Create(ctx, companyID, userID, e)
		require.NoError(t, err)
	}

	sum, err := uc.Summary(ctx, companyID, "2026-10-01", "2026-10-31")
	require.NoError(t, err)
	require.Len(t, sum.Groups, 2)
	assert.Equal(t, "Electricity", sum.Groups[0].AccountHeadName, "orden por nombre de cuenta")
	assert.Equal(t, 2, sum.Groups[0].Count)
	assert.True(t, sum.Groups[0].Total.Equal(d("2000.50")))
	assert.Equal(t, "2026-10-03", sum.Groups[0].Items[0].Date.Format(dto.DateLayout))
	assert.Equal(t, "Rent", sum.Groups[1].AccountHeadName)
	assert.True(t, sum.Total.Equal(d("27000.50")))

	list, err := uc.List(ctx, companyID, dto.ExpenseListRequest{AccountHeadID: rent.ID})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	_, err = uc.Summary(ctx, companyID, "octubre", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpense_Update(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	accounts := usecase.NewAccountUseCase(store.AccountHeads(), store.BankAccounts())
	uc := usecase.NewExpenseUseCase(store.Expenses(), store.AccountHeads(), store.BankAccounts())

	head, err := accounts.CreateHead(ctx, companyID, dto.CreateAccountHeadRequest{Code: "EX-1", Name: "Rent", Group: entity.GroupExpense})
	require.NoError(t, err)
	foreign, err := accounts.CreateBankAccount(ctx, otherCoID, dto.CreateBankAccountRequest{Name: "Ajena", BankName: "SBI", AccountNumber: "123456789", IFSC: "SBIN0000001"})
	require.NoError(t, err)

	e, err := uc.Create(ctx, companyID, userID, dto.CreateExpenseRequest{AccountHeadID: head.ID, Amount: d("100")})
	require.NoError(t, err)

	_, err = uc.Update(ctx, companyID, e.ID, dto.UpdateExpenseRequest{Amount: ptr(d("1.23456"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, companyID, e.ID, dto.UpdateExpenseRequest{Amount: ptr(d("0"))})
	assert.ErrorIs(t, err, domain.ErrAmountNotPositive)

	_, err = uc.Update(ctx, companyID, e.ID, dto.UpdateExpenseRequest{BankAccountID: ptr(foreign.ID)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.Update(ctx, companyID, e.ID, dto.UpdateExpenseRequest{Amount: ptr(d("150.25")), Note: ptr("ajuste")})
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(d("150.25")))
	assert.Equal(t, "ajuste", got.Note)

	require.NoError(t, uc.Delete(ctx, companyID, e.ID))
	_, err = uc.Get(ctx, companyID, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccount_BankAccountSaldoConPrecisionGuardable(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := usecase.NewAccountUseCase(store.AccountHeads(), store.BankAccounts())

	_, err := uc.CreateBankAccount(ctx, companyID, dto.CreateBankAccountRequest{
		Name: "Corriente", BankName: "HDFC", AccountNumber: "50100012345678", IFSC: "HDFC0000123", OpeningBalance: d("0.12345"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	acc, err := uc.CreateBankAccount(ctx, companyID, dto.CreateBankAccountRequest{
		Name: "Corriente", BankName: "HDFC", AccountNumber: "50100012345678", IFSC: "HDFC0000123", OpeningBalance: d("1500.5000"),
	})
	require.NoError(t, err)
	assert.True(t, acc.OpeningBalance.Equal(d("1500.5")))
}
