package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var (
	_ repository.AccountHeadRepository = (*AccountHeadRepo)(nil)
	_ repository.BankAccountRepository = (*BankAccountRepo)(nil)
)

// AccountHeadRepo plan de cuentas en memoria.
type AccountHeadRepo struct{ s *Store }

func (r *AccountHeadRepo) Create(_ context.Context, h *entity.AccountHead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.accountHeads {
		if other.CompanyID == h.CompanyID && other.Code == h.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *h
	r.s.accountHeads[h.ID] = &cp
	return nil
}

func (r *AccountHeadRepo) GetByID(_ context.Context, id string) (*entity.AccountHead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if h, ok := r.s.accountHeads[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, nil
}

func (r *AccountHeadRepo) GetByCompanyAndCode(_ context.Context, companyID, code string) (*entity.AccountHead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, h := range r.s.accountHeads {
		if h.CompanyID == companyID && h.Code == code {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *AccountHeadRepo) ListByCompany(_ context.Context, companyID, group string) ([]*entity.AccountHead, error) {
	r.s.mu.RLock()
	var list []*entity.AccountHead
	for _, h := range r.s.accountHeads {
		if h.CompanyID == companyID && (group == "" || h.Group == group) {
			cp := *h
			list = append(list, &cp)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

func (r *AccountHeadRepo) Update(_ context.Context, h *entity.AccountHead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accountHeads[h.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *h
	r.s.accountHeads[h.ID] = &cp
	return nil
}

// Delete falla con ErrConflict si la cuenta tiene gastos o subcuentas.
func (r *AccountHeadRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.expenses {
		if e.AccountHeadID == id {
			return domain.ErrConflict
		}
	}
	for _, h := range r.s.accountHeads {
		if h.ParentID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.accountHeads, id)
	return nil
}

// BankAccountRepo cuentas bancarias en memoria.
type BankAccountRepo struct{ s *Store }

func (r *BankAccountRepo) Create(_ context.Context, a *entity.BankAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.bankAccounts {
		if other.CompanyID == a.CompanyID && other.AccountNumber == a.AccountNumber && other.IFSC == a.IFSC {
			return domain.ErrDuplicate
		}
	}
	cp := *a
	r.s.bankAccounts[a.ID] = &cp
	return nil
}

func (r *BankAccountRepo) GetByID(_ context.Context, id string) (*entity.BankAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if a, ok := r.s.bankAccounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *BankAccountRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.BankAccount, error) {
	r.s.mu.RLock()
	var list []*entity.BankAccount
	for _, a := range r.s.bankAccounts {
		if a.CompanyID == companyID {
			cp := *a
			list = append(list, &cp)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name) })
	return list, nil
}

func (r *BankAccountRepo) Update(_ context.Context, a *entity.BankAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bankAccounts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.s.bankAccounts[a.ID] = &cp
	return nil
}

// Delete falla con ErrConflict si hay gastos pagados desde la cuenta.
func (r *BankAccountRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.expenses {
		if e.BankAccountID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.bankAccounts, id)
	return nil
}
