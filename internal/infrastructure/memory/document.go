package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos y líneas en memoria.
type DocumentRepo struct{ s *Store }

func (r *DocumentRepo) Create(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.documents {
		if other.CompanyID == d.CompanyID && other.Type == d.Type && other.Number == d.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *d
	r.s.documents[d.ID] = &cp
	return nil
}

func (r *DocumentRepo) CreateLine(_ context.Context, l *entity.DocumentLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.documents[l.DocumentID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	cur := r.s.lines[l.DocumentID]
	next := make([]*entity.DocumentLine, 0, len(cur)+1)
	next = append(next, cur...)
	r.s.lines[l.DocumentID] = append(next, &cp)
	return nil
}

// UpdateDraft conserva el estado guardado; falla si el documento ya no está en DRAFT.
func (r *DocumentRepo) UpdateDraft(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, err := r.draftLocked(d.ID)
	if err != nil {
		return err
	}
	cp := *d
	cp.Status = cur.Status
	r.s.documents[d.ID] = &cp
	return nil
}

func (r *DocumentRepo) MarkPosted(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, err := r.draftLocked(id)
	if err != nil {
		return err
	}
	cp := *cur
	cp.Status = entity.DocStatusPosted
	cp.UpdatedAt = at
	r.s.documents[id] = &cp
	return nil
}

func (r *DocumentRepo) DeleteLines(_ context.Context, documentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.lines, documentID)
	return nil
}

func (r *DocumentRepo) DeleteDraft(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, err := r.draftLocked(id); err != nil {
		return err
	}
	delete(r.s.documents, id)
	delete(r.s.lines, id)
	return nil
}

// draftLocked requiere s.mu tomado.
func (r *DocumentRepo) draftLocked(id string) (*entity.Document, error) {
	cur, ok := r.s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if cur.Status != entity.DocStatusDraft {
		return nil, fmt.Errorf("%w: documento en estado %s", domain.ErrConflict, cur.Status)
	}
	return cur, nil
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if d, ok := r.s.documents[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

// GetLines devuelve las líneas ordenadas por posición.
func (r *DocumentRepo) GetLines(_ context.Context, documentID string) ([]*entity.DocumentLine, error) {
	r.s.mu.RLock()
	src := r.s.lines[documentID]
	out := make([]*entity.DocumentLine, 0, len(src))
	for _, l := range src {
		cp := *l
		out = append(out, &cp)
	}
	r.s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *DocumentRepo) ListByCompany(_ context.Context, companyID string, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	r.s.mu.RLock()
	var list []*entity.Document
	for _, d := range r.s.documents {
		if d.CompanyID != companyID || !matchDocument(d, f) {
			continue
		}
		cp := *d
		list = append(list, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginate(list, f.Limit, f.Offset), len(list), nil
}

func (r *DocumentRepo) ExistsNumber(_ context.Context, companyID, docType, number string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.documents {
		if d.CompanyID == companyID && d.Type == docType && d.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *DocumentRepo) SumGrandTotalByType(_ context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]decimal.Decimal{}
	for _, d := range r.s.documents {
		if d.CompanyID != companyID || d.Date.Before(from) || d.Date.After(to) {
			continue
		}
		out[d.Type] = out[d.Type].Add(d.GrandTotal)
	}
	return out, nil
}

func matchDocument(d *entity.Document, f repository.DocumentFilter) bool {
	switch {
	case f.Type != "" && d.Type != f.Type:
		return false
	case f.PartyID != "" && d.PartyID != f.PartyID:
		return false
	case f.From != nil && d.Date.Before(*f.From):
		return false
	case f.To != nil && d.Date.After(*f.To):
		return false
	}
	return true
}
