package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ledger-api/internal/application/billing"
	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
	"github.com/jhoicas/ledger-api/internal/infrastructure/memory"
)

const (
	companyID  = "11111111-1111-1111-1111-111111111111"
	otherCoID  = "22222222-2222-2222-2222-222222222222"
	userID     = "33333333-3333-3333-3333-333333333333"
	customerID = "44444444-4444-4444-4444-444444444444"
	vendorID   = "55555555-5555-5555-5555-555555555555"
	foreignID  = "66666666-6666-6666-6666-666666666666"
)

type recorder struct {
	types  []string
	totals []decimal.Decimal
}

func (r *recorder) DocumentSaved(docType string, grandTotal decimal.Decimal) {
	r.types = append(r.types, docType)
	r.totals = append(r.totals, grandTotal)
}

type fixture struct {
	store   *memory.Store
	uc      *billing.DocumentUseCase
	metrics *recorder
}

func newFixture(t *testing.T, opts billing.DocumentOptions) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	now := time.Now()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: companyID, Name: "Acme", GSTIN: "27AAPFU0939F1ZV", StateCode: "27", Status: "active", CreatedAt: now}))
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: customerID, CompanyID: companyID, Kind: entity.PartyCustomer, Name: "Cliente Uno"}))
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: vendorID, CompanyID: companyID, Kind: entity.PartyVendor, Name: "Proveedor Uno"}))
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: foreignID, CompanyID: otherCoID, Kind: entity.PartyCustomer, Name: "Ajeno"}))

	rec := &recorder{}
	uc := billing.NewDocumentUseCase(store.TxRunner(), store.Documents(), store.Parties(), rec, opts)
	return &fixture{store: store, uc: uc, metrics: rec}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(qty, rate, disc, tax string) dto.DocumentLineRequest {
	return dto.DocumentLineRequest{Description: "item", Quantity: d(qty), UnitRate: d(rate), Discount: d(disc), TaxRatePercent: d(tax)}
}

func salesRequest(lines ...dto.DocumentLineRequest) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{Type: entity.DocSalesInvoice, PartyID: customerID, Date: "2026-10-01", Lines: lines}
}

func TestCreate_CalculaTotalesYGuarda(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	ctx := context.Background()

	resp, err := f.uc.Create(ctx, companyID, userID, salesRequest(
		line("2", "100", "0", "18"),
		line("1", "200", "20", "5"),
		line("1", "0.5", "0", "0"),
	))
	require.NoError(t, err)

	// 200 + 36 = 236; 180 + 9 = 189; 0.5 → 425.5 → 426
	assert.True(t, resp.Totals.GrossTotal.Equal(d("400.5")))
	assert.True(t, resp.Totals.TotalDiscount.Equal(d("20")))
	assert.True(t, resp.Totals.SubTotal.Equal(d("380.5")))
	assert.True(t, resp.Totals.TotalTax.Equal(d("45")))
	assert.True(t, resp.Totals.CGST.Equal(d("22.5")))
	assert.True(t, resp.Totals.SGST.Equal(d("22.5")))
	assert.True(t, resp.Totals.GrandTotal.Equal(d("426")))
	assert.True(t, resp.Totals.RoundOff.Equal(d("0.5")))
	assert.Equal(t, entity.DocStatusDraft, resp.Status)
	assert.Equal(t, "Cliente Uno", resp.PartyName)
	require.Len(t, resp.Lines, 3)
	assert.True(t, resp.Lines[0].LineTotal.Equal(d("236")))
	assert.Equal(t, 1, resp.Lines[0].Position)
	assert.Regexp(t, `^SI-\d+$`, resp.Number)

	stored, err := f.store.Documents().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.GrandTotal.Equal(d("426")), "la cabecera guarda los totales para listados")

	lines, err := f.store.Documents().GetLines(ctx, resp.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	assert.Equal(t, []string{entity.DocSalesInvoice}, f.metrics.types)
}

func TestCreate_Validaciones(t *testing.T) {
	cases := []struct {
		name    string
		req     func() dto.CreateDocumentRequest
		wantErr error
	}{
		{"sin tercero", func() dto.CreateDocumentRequest {
			r := salesRequest(line("1", "10", "0", "0"))
			r.PartyID = ""
			return r
		}, domain.ErrPartyRequired},
		{"tercero inexistente", func() dto.CreateDocumentRequest {
			r := salesRequest(line("1", "10", "0", "0"))
			r.PartyID = "77777777-7777-7777-7777-777777777777"
			return r
		}, domain.ErrNotFound},
		{"tercero de otra empresa", func() dto.CreateDocumentRequest {
			r := salesRequest(line("1", "10", "0", "0"))
			r.PartyID = foreignID
			return r
		}, domain.ErrForbidden},
		{"proveedor en factura de venta", func() dto.CreateDocumentRequest {
			r := salesRequest(line("1", "10", "0", "0"))
			r.PartyID = vendorID
			return r
		}, domain.ErrPartyKindMismatch},
		{"cliente en devolución de compra", func() dto.CreateDocumentRequest {
			return dto.CreateDocumentRequest{Type: entity.DocPurchaseReturn, PartyID: customerID, Lines: []dto.DocumentLineRequest{line("1", "10", "0", "0")}}
		}, domain.ErrPartyKindMismatch},
		{"sin líneas", func() dto.CreateDocumentRequest { return salesRequest() }, domain.ErrInvalidInput},
		{"cantidad negativa", func() dto.CreateDocumentRequest { return salesRequest(line("-1", "10", "0", "0")) }, domain.ErrInvalidInput},
		{"tarifa negativa", func() dto.CreateDocumentRequest { return salesRequest(line("1", "-10", "0", "0")) }, domain.ErrInvalidInput},
		{"descuento negativo", func() dto.CreateDocumentRequest { return salesRequest(line("1", "10", "-1", "0")) }, domain.ErrInvalidInput},
		{"impuesto negativo", func() dto.CreateDocumentRequest { return salesRequest(line("1", "10", "0", "-5")) }, domain.ErrInvalidInput},
		{"total cero", func() dto.CreateDocumentRequest { return salesRequest(line("0", "10", "0", "18")) }, domain.ErrAmountNotPositive},
		{"descuento mayor al valor", func() dto.CreateDocumentRequest { return salesRequest(line("1", "10", "20", "0")) }, domain.ErrAmountNotPositive},
		{"tipo inválido", func() dto.CreateDocumentRequest {
			r := salesRequest(line("1", "10", "0", "0"))
			r.Type = "quotation"
			return r
		}, domain.ErrInvalidInput},
		{"fecha inválida", func() dto.CreateDocumentRequest {
			r := salesRequest(line("1", "10", "0", "0"))
			r.Date = "01/10/2026"
			return r
		}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, billing.DocumentOptions{})
			_, err := f.uc.Create(context.Background(), companyID, userID, tc.req())
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, f.metrics.types, "no se registra nada si la validación falla")
		})
	}
}

func TestCreate_TasasEstrictas(t *testing.T) {
	strict := newFixture(t, billing.DocumentOptions{StrictSlabs: true})
	_, err := strict.uc.Create(context.Background(), companyID, userID, salesRequest(line("1", "100", "0", "7")))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = strict.uc.Create(context.Background(), companyID, userID, salesRequest(line("1", "100", "0", "28")))
	assert.NoError(t, err)

	lax := newFixture(t, billing.DocumentOptions{})
	_, err = lax.uc.Create(context.Background(), companyID, userID, salesRequest(line("1", "100", "0", "7")))
	assert.NoError(t, err)
}

func TestCreate_NumeroDuplicado(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	req := salesRequest(line("1", "10", "0", "0"))
	req.Number = "SI-0001"
	_, err := f.uc.Create(context.Background(), companyID, userID, req)
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), companyID, userID, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo número en otro tipo de documento sí se permite.
	req.Type = entity.DocSalesReturn
	_, err = f.uc.Create(context.Background(), companyID, userID, req)
	assert.NoError(t, err)
}

func TestCreate_NumeracionAutomaticaNoRepite(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	a, err := f.uc.Create(context.Background(), companyID, userID, salesRequest(line("1", "10", "0", "0")))
	require.NoError(t, err)
	b, err := f.uc.Create(context.Background(), companyID, userID, salesRequest(line("1", "10", "0", "0")))
	require.NoError(t, err)
	assert.NotEqual(t, a.Number, b.Number)
}

func TestGet_RecalculaDesdeLineas(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	ctx := context.Background()
	created, err := f.uc.Create(ctx, companyID, userID, salesRequest(line("3", "33.33", "0", "12")))
	require.NoError(t, err)

	// Se corrompe el total cacheado: la lectura debe ignorarlo.
	stored, _ := f.store.Documents().GetByID(ctx, created.ID)
	stored.GrandTotal = d("999999")
	require.NoError(t, f.store.Documents().UpdateDraft(ctx, stored))

	got, err := f.uc.Get(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Totals.GrandTotal.Equal(created.Totals.GrandTotal))
	assert.True(t, got.Totals.GrandTotal.Equal(d("112")), "99.99 + 11.9988 = 111.9888 → 112")

	_, err = f.uc.Get(ctx, otherCoID, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(ctx, companyID, "88888888-8888-8888-8888-888888888888")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_ReemplazaLineas(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	ctx := context.Background()
	created, err := f.uc.Create(ctx, companyID, userID, salesRequest(line("1", "100", "0", "18"), line("1", "50", "0", "0")))
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, companyID, created.ID, dto.UpdateDocumentRequest{
		Notes: "corregida",
		Lines: []dto.DocumentLineRequest{line("2", "100", "0", "5")},
	})
	require.NoError(t, err)
	assert.True(t, updated.Totals.GrandTotal.Equal(d("210")))
	assert.Equal(t, "corregida", updated.Notes)
	assert.Equal(t, created.Number, updated.Number)

	lines, err := f.store.Documents().GetLines(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestPost_BloqueaEdicionYBorrado(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	ctx := context.Background()
	created, err := f.uc.Create(ctx, companyID, userID, salesRequest(line("1", "100", "0", "18")))
	require.NoError(t, err)

	posted, err := f.uc.Post(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusPosted, posted.Status)

	_, err = f.uc.Update(ctx, companyID, created.ID, dto.UpdateDocumentRequest{Lines: []dto.DocumentLineRequest{line("1", "1", "0", "0")}})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, f.uc.Delete(ctx, companyID, created.ID), domain.ErrConflict)
}

func TestDelete_Borrador(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	ctx := context.Background()
	created, err := f.uc.Create(ctx, companyID, userID, salesRequest(line("1", "100", "0", "18")))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, companyID, created.ID))
	_, err = f.uc.Get(ctx, companyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// partiesHook ejecuta hook una sola vez antes de la siguiente consulta de tercero.
type partiesHook struct {
	repository.PartyRepository
	hook func()
	err  error
}

func (p *partiesHook) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	if p.err != nil {
		return nil, p.err
	}
	if h := p.hook; h != nil {
		p.hook = nil
		h()
	}
	return p.PartyRepository.GetByID(ctx, id)
}

// docsHook ejecuta hook una sola vez después de la siguiente lectura de cabecera.
type docsHook struct {
	repository.DocumentRepository
	hook func()
}

func (r *docsHook) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := r.DocumentRepository.GetByID(ctx, id)
	if h := r.hook; h != nil {
		r.hook = nil
		h()
	}
	return doc, err
}

func TestUpdate_ContabilizadoDuranteLaEdicion(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: customerID, CompanyID: companyID, Kind: entity.PartyCustomer, Name: "Cliente"}))
	parties := &partiesHook{PartyRepository: store.Parties()}
	uc := billing.NewDocumentUseCase(store.TxRunner(), store.Documents(), parties, nil, billing.DocumentOptions{})

	created, err := uc.Create(ctx, companyID, userID, salesRequest(line("1", "100", "0", "18")))
	require.NoError(t, err)

	// El Post entra después del chequeo de estado de Update y antes de su escritura.
	parties.hook = func() {
		_, err := uc.Post(ctx, companyID, created.ID)
		require.NoError(t, err)
	}
	_, err = uc.Update(ctx, companyID, created.ID, dto.UpdateDocumentRequest{
		Lines: []dto.DocumentLineRequest{line("5", "100", "0", "18")},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := uc.Get(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusPosted, got.Status)
	assert.True(t, got.Totals.GrandTotal.Equal(d("118")), "las líneas contabilizadas no cambian")
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].Quantity.Equal(d("1")))
}

func TestDelete_ContabilizadoDuranteElBorrado(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: customerID, CompanyID: companyID, Kind: entity.PartyCustomer, Name: "Cliente"}))
	docs := &docsHook{DocumentRepository: store.Documents()}
	uc := billing.NewDocumentUseCase(store.TxRunner(), docs, store.Parties(), nil, billing.DocumentOptions{})

	created, err := uc.Create(ctx, companyID, userID, salesRequest(line("1", "100", "0", "18")))
	require.NoError(t, err)

	docs.hook = func() {
		require.NoError(t, store.Documents().MarkPosted(ctx, created.ID, time.Now()))
	}
	assert.ErrorIs(t, uc.Delete(ctx, companyID, created.ID), domain.ErrConflict)

	got, err := uc.Get(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusPosted, got.Status)
	assert.Len(t, got.Lines, 1)
}

func TestPost_Idempotente(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	ctx := context.Background()
	created, err := f.uc.Create(ctx, companyID, userID, salesRequest(line("1", "100", "0", "18")))
	require.NoError(t, err)

	_, err = f.uc.Post(ctx, companyID, created.ID)
	require.NoError(t, err)
	again, err := f.uc.Post(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusPosted, again.Status)

	assert.ErrorIs(t, f.store.Documents().MarkPosted(ctx, created.ID, time.Now()), domain.ErrConflict)
	assert.ErrorIs(t, f.store.Documents().DeleteDraft(ctx, "88888888-8888-8888-8888-888888888888"), domain.ErrNotFound)
}

func TestGet_PropagaErrorDeTerceros(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: customerID, CompanyID: companyID, Kind: entity.PartyCustomer, Name: "Cliente"}))
	parties := &partiesHook{PartyRepository: store.Parties()}
	uc := billing.NewDocumentUseCase(store.TxRunner(), store.Documents(), parties, nil, billing.DocumentOptions{})

	created, err := uc.Create(ctx, companyID, userID, salesRequest(line("1", "100", "0", "18")))
	require.NoError(t, err)

	boom := errors.New("conexión perdida")
	parties.err = boom
	_, err = uc.Get(ctx, companyID, created.ID)
	assert.ErrorIs(t, err, boom)
}

func TestCreate_RechazaValoresQueNoSeGuardanExactos(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	ctx := context.Background()

	cases := []struct {
		name string
		line dto.DocumentLineRequest
	}{
		{"tarifa con 5 decimales", line("1", "33.33333", "0", "18")},
		{"cantidad con 5 decimales", line("0.00001", "100", "0", "0")},
		{"descuento con 5 decimales", line("1", "100", "0.00001", "0")},
		{"tasa con 3 decimales", line("1", "100", "0", "18.005")},
		{"tarifa fuera de rango", line("1", "100000000000000", "0", "0")},
		{"tasa fuera de rango", line("1", "100", "0", "10000")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, companyID, userID, salesRequest(tc.line))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, err = f.uc.Preview(dto.PreviewRequest{Lines: []dto.DocumentLineRequest{tc.line}})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Ceros a la derecha no cuentan como decimales de más; lo guardado recalcula igual.
	created, err := f.uc.Create(ctx, companyID, userID, salesRequest(line("3", "33.33330", "0", "12.00"), line("1", "99999999999999.9999", "0", "0")))
	require.NoError(t, err)
	got, err := f.uc.Get(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Totals.GrandTotal.Equal(created.Totals.GrandTotal))
	assert.True(t, got.Totals.TotalTax.Equal(created.Totals.TotalTax))
}

func TestList_FiltrosYPaginacion(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	ctx := context.Background()
	for _, date := range []string{"2026-09-01", "2026-10-01", "2026-10-15"} {
		req := salesRequest(line("1", "10", "0", "0"))
		req.Date = date
		_, err := f.uc.Create(ctx, companyID, userID, req)
		require.NoError(t, err)
	}
	_, err := f.uc.Create(ctx, companyID, userID, dto.CreateDocumentRequest{
		Type: entity.DocPurchaseInvoice, PartyID: vendorID, Date: "2026-10-02",
		Lines: []dto.DocumentLineRequest{line("1", "10", "0", "0")},
	})
	require.NoError(t, err)

	all, err := f.uc.List(ctx, companyID, dto.DocumentListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 4)
	assert.Equal(t, 20, all.Page.Limit)
	assert.Equal(t, "2026-10-15", all.Items[0].Date.Format(dto.DateLayout), "más recientes primero")

	sales, err := f.uc.List(ctx, companyID, dto.DocumentListRequest{Type: entity.DocSalesInvoice, From: "2026-10-01"})
	require.NoError(t, err)
	assert.Len(t, sales.Items, 2)
	assert.Equal(t, 2, sales.Page.Total)

	page, err := f.uc.List(ctx, companyID, dto.DocumentListRequest{PageRequest: dto.PageRequest{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 4, page.Page.Total)

	_, err = f.uc.List(ctx, companyID, dto.DocumentListRequest{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPreview_NoPersiste(t *testing.T) {
	f := newFixture(t, billing.DocumentOptions{})
	resp, err := f.uc.Preview(dto.PreviewRequest{Lines: []dto.DocumentLineRequest{line("1.5", "33.33", "0", "12")}})
	require.NoError(t, err)
	assert.True(t, resp.Totals.GrandTotal.Equal(d("56")))
	assert.True(t, resp.Totals.RoundOff.Equal(d("0.0056")))
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].TaxAmount.Equal(d("5.9994")))

	empty, err := f.uc.Preview(dto.PreviewRequest{})
	require.NoError(t, err)
	assert.True(t, empty.Totals.GrandTotal.IsZero())

	_, err = f.uc.Preview(dto.PreviewRequest{Lines: []dto.DocumentLineRequest{line("1", "10", "-1", "0")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, _, err := f.store.Documents().ListByCompany(context.Background(), companyID, repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// failingTx simula un fallo al guardar la segunda línea para comprobar el rollback.
type failingTx struct {
	inner billing.DocumentTxRunner
}

type failOnSecondLine struct {
	repository.DocumentRepository
	n int
}

func (f *failOnSecondLine) CreateLine(ctx context.Context, l *entity.DocumentLine) error {
	f.n++
	if f.n == 2 {
		return errors.New("disco lleno")
	}
	return f.DocumentRepository.CreateLine(ctx, l)
}

func (t failingTx) RunDocument(ctx context.Context, fn func(repository.DocumentRepository) error) error {
	return t.inner.RunDocument(ctx, func(r repository.DocumentRepository) error {
		return fn(&failOnSecondLine{DocumentRepository: r})
	})
}

func TestCreate_RollbackSiFallaUnaLinea(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: customerID, CompanyID: companyID, Kind: entity.PartyCustomer, Name: "Cliente"}))

	rec := &recorder{}
	uc := billing.NewDocumentUseCase(failingTx{inner: store.TxRunner()}, store.Documents(), store.Parties(), rec, billing.DocumentOptions{})
	_, err := uc.Create(ctx, companyID, userID, salesRequest(line("1", "10", "0", "0"), line("1", "20", "0", "0")))
	require.Error(t, err)

	list, total, err := store.Documents().ListByCompany(ctx, companyID, repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "ni cabecera ni líneas quedan guardadas")
	assert.Zero(t, total)
	assert.Empty(t, rec.types)
}
