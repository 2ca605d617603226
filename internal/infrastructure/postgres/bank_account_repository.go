package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.BankAccountRepository = (*BankAccountRepo)(nil)

// BankAccountRepo cuentas bancarias sobre PostgreSQL.
type BankAccountRepo struct {
	db Querier
}

func NewBankAccountRepository(db Querier) *BankAccountRepo {
	return &BankAccountRepo{db: db}
}

const bankAccountColumns = `id, company_id, name, bank_name, account_number, ifsc, opening_balance, created_at, updated_at`

func scanBankAccount(row interface{ Scan(...any) error }) (*entity.BankAccount, error) {
	var a entity.BankAccount
	if err := row.Scan(&a.ID, &a.CompanyID, &a.Name, &a.BankName, &a.AccountNumber, &a.IFSC, &a.OpeningBalance, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *BankAccountRepo) Create(ctx context.Context, a *entity.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (id, company_id, name, bank_name, account_number, ifsc, opening_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query, a.ID, a.CompanyID, a.Name, a.BankName, a.AccountNumber, a.IFSC, a.OpeningBalance, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

func (r *BankAccountRepo) GetByID(ctx context.Context, id string) (*entity.BankAccount, error) {
	a, err := scanBankAccount(r.db.QueryRow(ctx, `SELECT `+bankAccountColumns+` FROM bank_accounts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return a, nil
}

func (r *BankAccountRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE company_id = $1 ORDER BY LOWER(name)`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	defer rows.Close()

	var list []*entity.BankAccount
	for rows.Next() {
		a, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *BankAccountRepo) Update(ctx context.Context, a *entity.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET name = $2, bank_name = $3, account_number = $4, ifsc = $5, opening_balance = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, a.ID, a.Name, a.BankName, a.AccountNumber, a.IFSC, a.OpeningBalance, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update bank account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete falla con ErrConflict si hay gastos pagados desde la cuenta.
func (r *BankAccountRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete bank account: %w", err)
	}
	return nil
}
