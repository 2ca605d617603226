package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo terceros sobre PostgreSQL.
type PartyRepo struct {
	db Querier
}

// NewPartyRepository construye el adaptador de persistencia para terceros.
func NewPartyRepository(db Querier) *PartyRepo {
	return &PartyRepo{db: db}
}

const partyColumns = `id, company_id, kind, name, COALESCE(gstin, ''), state_code, email, phone, address, created_at, updated_at`

func scanParty(row interface{ Scan(...any) error }) (*entity.Party, error) {
	var p entity.Party
	err := row.Scan(&p.ID, &p.CompanyID, &p.Kind, &p.Name, &p.GSTIN, &p.StateCode, &p.Email, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	query := `
		INSERT INTO parties (id, company_id, kind, name, gstin, state_code, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.CompanyID, p.Kind, p.Name, nullIfEmpty(p.GSTIN), p.StateCode,
		p.Email, p.Phone, p.Address, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

func (r *PartyRepo) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	p, err := scanParty(r.db.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return p, nil
}

func (r *PartyRepo) GetByCompanyAndGSTIN(ctx context.Context, companyID, gstin string) (*entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE company_id = $1 AND gstin = $2`
	p, err := scanParty(r.db.QueryRow(ctx, query, companyID, gstin))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party by GSTIN: %w", err)
	}
	return p, nil
}

// ListByCompany filtra por tipo y búsqueda parcial (nombre o GSTIN, sin distinguir mayúsculas).
func (r *PartyRepo) ListByCompany(ctx context.Context, companyID string, f repository.PartyFilter) ([]*entity.Party, error) {
	var search any
	if s := strings.TrimSpace(f.Search); s != "" {
		search = "%" + strings.ToLower(s) + "%"
	}
	query := `
		SELECT ` + partyColumns + ` FROM parties
		WHERE company_id = $1
		  AND ($2::text IS NULL OR kind = $2)
		  AND ($3::text IS NULL OR LOWER(name) LIKE $3 OR LOWER(COALESCE(gstin, '')) LIKE $3)
		ORDER BY LOWER(name)
		LIMIT $4 OFFSET $5`
	rows, err := r.db.Query(ctx, query, companyID, nullIfEmpty(f.Kind), search, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()

	var list []*entity.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartyRepo) Update(ctx context.Context, p *entity.Party) error {
	query := `
		UPDATE parties
		SET kind = $2, name = $3, gstin = $4, state_code = $5, email = $6, phone = $7, address = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Kind, p.Name, nullIfEmpty(p.GSTIN), p.StateCode, p.Email, p.Phone, p.Address, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete falla con ErrConflict si el tercero tiene documentos.
func (r *PartyRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete party: %w", err)
	}
	return nil
}
