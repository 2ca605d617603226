package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo terceros en memoria.
type PartyRepo struct{ s *Store }

func (r *PartyRepo) Create(_ context.Context, p *entity.Party) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.GSTIN != "" {
		for _, other := range r.s.parties {
			if other.CompanyID == p.CompanyID && other.GSTIN == p.GSTIN {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *p
	r.s.parties[p.ID] = &cp
	return nil
}

func (r *PartyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.parties[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *PartyRepo) GetByCompanyAndGSTIN(_ context.Context, companyID, gstin string) (*entity.Party, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.parties {
		if p.CompanyID == companyID && gstin != "" && p.GSTIN == gstin {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *PartyRepo) ListByCompany(_ context.Context, companyID string, f repository.PartyFilter) ([]*entity.Party, error) {
	search := strings.ToLower(f.Search)
	r.s.mu.RLock()
	var list []*entity.Party
	for _, p := range r.s.parties {
		if p.CompanyID != companyID || (f.Kind != "" && p.Kind != f.Kind) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.GSTIN), search) {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name) })
	return paginate(list, f.Limit, f.Offset), nil
}

func (r *PartyRepo) Update(_ context.Context, p *entity.Party) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.parties[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if p.GSTIN != "" {
		for _, other := range r.s.parties {
			if other.ID != p.ID && other.CompanyID == p.CompanyID && other.GSTIN == p.GSTIN {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *p
	r.s.parties[p.ID] = &cp
	return nil
}

// Delete falla con ErrConflict si el tercero tiene documentos.
func (r *PartyRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.documents {
		if d.PartyID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.parties, id)
	return nil
}
