package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.AccountHeadRepository = (*AccountHeadRepo)(nil)

// AccountHeadRepo plan de cuentas sobre PostgreSQL.
type AccountHeadRepo struct {
	db Querier
}

func NewAccountHeadRepository(db Querier) *AccountHeadRepo {
	return &AccountHeadRepo{db: db}
}

const accountHeadColumns = `id, company_id, code, name, "group", COALESCE(parent_id::text, ''), created_at, updated_at`

func scanAccountHead(row interface{ Scan(...any) error }) (*entity.AccountHead, error) {
	var h entity.AccountHead
	if err := row.Scan(&h.ID, &h.CompanyID, &h.Code, &h.Name, &h.Group, &h.ParentID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *AccountHeadRepo) Create(ctx context.Context, h *entity.AccountHead) error {
	query := `
		INSERT INTO account_heads (id, company_id, code, name, "group", parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, h.ID, h.CompanyID, h.Code, h.Name, h.Group, nullIfEmpty(h.ParentID), h.CreatedAt, h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account head: %w", err)
	}
	return nil
}

func (r *AccountHeadRepo) GetByID(ctx context.Context, id string) (*entity.AccountHead, error) {
	h, err := scanAccountHead(r.db.QueryRow(ctx, `SELECT `+accountHeadColumns+` FROM account_heads WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account head: %w", err)
	}
	return h, nil
}

func (r *AccountHeadRepo) GetByCompanyAndCode(ctx context.Context, companyID, code string) (*entity.AccountHead, error) {
	query := `SELECT ` + accountHeadColumns + ` FROM account_heads WHERE company_id = $1 AND code = $2`
	h, err := scanAccountHead(r.db.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account head by code: %w", err)
	}
	return h, nil
}

// ListByCompany ordena por código; group vacío = todos los grupos.
func (r *AccountHeadRepo) ListByCompany(ctx context.Context, companyID, group string) ([]*entity.AccountHead, error) {
	query := `
		SELECT ` + accountHeadColumns + ` FROM account_heads
		WHERE company_id = $1 AND ($2::text IS NULL OR "group" = $2)
		ORDER BY code`
	rows, err := r.db.Query(ctx, query, companyID, nullIfEmpty(group))
	if err != nil {
		return nil, fmt.Errorf("list account heads: %w", err)
	}
	defer rows.Close()

	var list []*entity.AccountHead
	for rows.Next() {
		h, err := scanAccountHead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account head: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *AccountHeadRepo) Update(ctx context.Context, h *entity.AccountHead) error {
	query := `
		UPDATE account_heads SET code = $2, name = $3, "group" = $4, parent_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, h.ID, h.Code, h.Name, h.Group, nullIfEmpty(h.ParentID), h.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update account head: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete falla con ErrConflict si la cuenta tiene gastos o subcuentas.
func (r *AccountHeadRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM account_heads WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete account head: %w", err)
	}
	return nil
}
