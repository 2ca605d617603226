package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-api/internal/domain"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos sobre PostgreSQL.
type ExpenseRepo struct {
	db Querier
}

func NewExpenseRepository(db Querier) *ExpenseRepo {
	return &ExpenseRepo{db: db}
}

const expenseColumns = `id, company_id, account_head_id, COALESCE(bank_account_id::text, ''), date, amount, note,
	COALESCE(created_by::text, ''), created_at, updated_at`

func scanExpense(row interface{ Scan(...any) error }) (*entity.Expense, error) {
	var e entity.Expense
	if err := row.Scan(&e.ID, &e.CompanyID, &e.AccountHeadID, &e.BankAccountID, &e.Date, &e.Amount, &e.Note,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, company_id, account_head_id, bank_account_id, date, amount, note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.CompanyID, e.AccountHeadID, nullIfEmpty(e.BankAccountID), e.Date, e.Amount, e.Note,
		nullIfEmpty(e.CreatedBy), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// ListByCompany más recientes primero; Limit 0 devuelve todo (resúmenes).
func (r *ExpenseRepo) ListByCompany(ctx context.Context, companyID string, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + ` FROM expenses
		WHERE company_id = $1
		  AND ($2::uuid IS NULL OR account_head_id = $2)
		  AND ($3::date IS NULL OR date >= $3)
		  AND ($4::date IS NULL OR date <= $4)
		ORDER BY date DESC, created_at DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.db.Query(ctx, query, companyID, nullIfEmpty(f.AccountHeadID), f.From, f.To, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	query := `
		UPDATE expenses
		SET account_head_id = $2, bank_account_id = $3, date = $4, amount = $5, note = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, e.ID, e.AccountHeadID, nullIfEmpty(e.BankAccountID), e.Date, e.Amount, e.Note, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) SumAmount(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE company_id = $1 AND date >= $2 AND date <= $3`
	if err := r.db.QueryRow(ctx, query, companyID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}
