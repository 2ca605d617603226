package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/application/dto"
	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

// ExpenseUseCase registra gastos contra el plan de cuentas.
type ExpenseUseCase struct {
	repo     repository.ExpenseRepository
	headRepo repository.AccountHeadRepository
	bankRepo repository.BankAccountRepository
	now      func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(
	repo repository.ExpenseRepository,
	headRepo repository.AccountHeadRepository,
	bankRepo repository.BankAccountRepository,
) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, headRepo: headRepo, bankRepo: bankRepo, now: time.Now}
}

// Create registra un gasto. Requiere cuenta y un monto mayor que cero.
func (uc *ExpenseUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := checkAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, companyID, in.AccountHeadID, in.BankAccountID); err != nil {
		return nil, err
	}
	now := uc.now()
	date, err := dto.ParseDate(in.Date, now)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha", domain.ErrInvalidInput)
	}
	exp := &entity.Expense{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		AccountHeadID: in.AccountHeadID,
		BankAccountID: in.BankAccountID,
		Date:          date,
		Amount:        in.Amount,
		Note:          strings.TrimSpace(in.Note),
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, exp); err != nil {
		return nil, err
	}
	return entityToExpenseResponse(exp), nil
}

// Get obtiene un gasto de la empresa.
func (uc *ExpenseUseCase) Get(ctx context.Context, companyID, id string) (*dto.ExpenseResponse, error) {
	exp, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return entityToExpenseResponse(exp), nil
}

// List lista gastos con filtros por cuenta y fechas.
func (uc *ExpenseUseCase) List(ctx context.Context, companyID string, in dto.ExpenseListRequest) (*dto.ExpenseListResponse, error) {
	in.DefaultPage()
	f, err := expenseFilter(in.AccountHeadID, in.From, in.To)
	if err != nil {
		return nil, err
	}
	f.Limit, f.Offset = in.Limit, in.Offset
	list, err := uc.repo.ListByCompany(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *entityToExpenseResponse(e))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update modifica un gasto; mismas reglas que Create.
func (uc *ExpenseUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	exp, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil {
		if err := checkAmount(*in.Amount); err != nil {
			return nil, err
		}
		exp.Amount = *in.Amount
	}
	if in.AccountHeadID != nil {
		exp.AccountHeadID = *in.AccountHeadID
	}
	if in.BankAccountID != nil {
		exp.BankAccountID = *in.BankAccountID
	}
	if in.Date != nil {
		date, err := dto.ParseDate(*in.Date, exp.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha", domain.ErrInvalidInput)
		}
		exp.Date = date
	}
	if in.Note != nil {
		exp.Note = strings.TrimSpace(*in.Note)
	}
	if err := uc.checkRefs(ctx, companyID, exp.AccountHeadID, exp.BankAccountID); err != nil {
		return nil, err
	}
	exp.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, exp); err != nil {
		return nil, err
	}
	return entityToExpenseResponse(exp), nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Summary agrupa los gastos del rango por cuenta, ordenados por nombre de cuenta.
// Dentro de cada grupo los gastos van por fecha.
func (uc *ExpenseUseCase) Summary(ctx context.Context, companyID, from, to string) (*dto.ExpenseSummaryResponse, error) {
	f, err := expenseFilter("", from, to)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	heads, err := uc.headRepo.ListByCompany(ctx, companyID, "")
	if err != nil {
		return nil, err
	}
	headByID := make(map[string]*entity.AccountHead, len(heads))
	for _, h := range heads {
		headByID[h.ID] = h
	}

	groups := map[string]*dto.ExpenseGroupResponse{}
	total := decimal.Zero
	for _, e := range list {
		g, ok := groups[e.AccountHeadID]
		if !ok {
			g = &dto.ExpenseGroupResponse{AccountHeadID: e.AccountHeadID, Total: decimal.Zero}
			if h := headByID[e.AccountHeadID]; h != nil {
				g.AccountHeadCode, g.AccountHeadName = h.Code, h.Name
			}
			groups[e.AccountHeadID] = g
		}
		g.Count++
		g.Total = g.Total.Add(e.Amount)
		g.Items = append(g.Items, *entityToExpenseResponse(e))
		total = total.Add(e.Amount)
	}

	out := make([]dto.ExpenseGroupResponse, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.Items, func(i, j int) bool { return g.Items[i].Date.Before(g.Items[j].Date) })
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].AccountHeadName), strings.ToLower(out[j].AccountHeadName)
		if a != b {
			return a < b
		}
		return out[i].AccountHeadCode < out[j].AccountHeadCode
	})
	return &dto.ExpenseSummaryResponse{From: from, To: to, Groups: out, Total: total}, nil
}

func (uc *ExpenseUseCase) load(ctx context.Context, companyID, id string) (*entity.Expense, error) {
	exp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	if exp.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return exp, nil
}

// checkRefs valida que la cuenta (obligatoria) y la cuenta bancaria (opcional) sean de la empresa.
func (uc *ExpenseUseCase) checkRefs(ctx context.Context, companyID, headID, bankID string) error {
	if headID == "" {
		return fmt.Errorf("%w: debe seleccionar una cuenta", domain.ErrInvalidInput)
	}
	head, err := uc.headRepo.GetByID(ctx, headID)
	if err != nil {
		return err
	}
	if head == nil {
		return domain.ErrNotFound
	}
	if head.CompanyID != companyID {
		return domain.ErrForbidden
	}
	if bankID == "" {
		return nil
	}
	acc, err := uc.bankRepo.GetByID(ctx, bankID)
	if err != nil {
		return err
	}
	if acc == nil {
		return domain.ErrNotFound
	}
	if acc.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func expenseFilter(headID, from, to string) (repository.ExpenseFilter, error) {
	f := repository.ExpenseFilter{AccountHeadID: headID}
	if from != "" {
		t, err := dto.ParseDate(from, time.Time{})
		if err != nil {
			return f, fmt.Errorf("%w: from", domain.ErrInvalidInput)
		}
		f.From = &t
	}
	if to != "" {
		t, err := dto.ParseDate(to, time.Time{})
		if err != nil {
			return f, fmt.Errorf("%w: to", domain.ErrInvalidInput)
		}
		f.To = &t
	}
	return f, nil
}

func entityToExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:            e.ID,
		AccountHeadID: e.AccountHeadID,
		BankAccountID: e.BankAccountID,
		Date:          e.Date,
		Amount:        e.Amount,
		Note:          e.Note,
		CreatedAt:     e.CreatedAt,
	}
}

func checkAmount(v decimal.Decimal) error {
	if !v.IsPositive() {
		return domain.ErrAmountNotPositive
	}
	if !dto.AmountColumn.Fits(v) {
		return fmt.Errorf("%w: monto %s fuera de rango o con más de %d decimales", domain.ErrInvalidInput, v, dto.AmountColumn.Scale)
	}
	return nil
}
