package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos en memoria.
type ExpenseRepo struct{ s *Store }

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.expenses[e.ID] = &cp
	return nil
}

func (r *ExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if e, ok := r.s.expenses[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *ExpenseRepo) ListByCompany(_ context.Context, companyID string, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	r.s.mu.RLock()
	var list []*entity.Expense
	for _, e := range r.s.expenses {
		switch {
		case e.CompanyID != companyID:
			continue
		case f.AccountHeadID != "" && e.AccountHeadID != f.AccountHeadID:
			continue
		case f.From != nil && e.Date.Before(*f.From):
			continue
		case f.To != nil && e.Date.After(*f.To):
			continue
		}
		cp := *e
		list = append(list, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *ExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	r.s.expenses[e.ID] = &cp
	return nil
}

func (r *ExpenseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.expenses, id)
	return nil
}

func (r *ExpenseRepo) SumAmount(_ context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, e := range r.s.expenses {
		if e.CompanyID == companyID && !e.Date.Before(from) && !e.Date.After(to) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}
