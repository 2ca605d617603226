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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo documentos y líneas sobre PostgreSQL (pool o transacción).
type DocumentRepo struct {
	db Querier
}

// NewDocumentRepository construye el adaptador; dentro de TxRunner recibe la pgx.Tx.
func NewDocumentRepository(db Querier) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = `id, company_id, party_id, type, number, date, reference, notes, status,
	sub_total, tax_total, round_off, grand_total, COALESCE(created_by::text, ''), created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.CompanyID, &d.PartyID, &d.Type, &d.Number, &d.Date, &d.Reference, &d.Notes, &d.Status,
		&d.SubTotal, &d.TaxTotal, &d.RoundOff, &d.GrandTotal, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (id, company_id, party_id, type, number, date, reference, notes, status,
			sub_total, tax_total, round_off, grand_total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.CompanyID, d.PartyID, d.Type, d.Number, d.Date, d.Reference, d.Notes, d.Status,
		d.SubTotal, d.TaxTotal, d.RoundOff, d.GrandTotal, nullIfEmpty(d.CreatedBy), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) CreateLine(ctx context.Context, l *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (id, document_id, position, description, hsn_code, quantity, unit_rate, discount, tax_rate_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		l.ID, l.DocumentID, l.Position, l.Description, l.HSNCode, l.Quantity, l.UnitRate, l.Discount, l.TaxRatePercent,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// UpdateDraft reescribe la cabecera con la condición status = DRAFT en el mismo UPDATE.
func (r *DocumentRepo) UpdateDraft(ctx context.Context, d *entity.Document) error {
	query := `
		UPDATE documents
		SET party_id = $2, number = $3, date = $4, reference = $5, notes = $6,
			sub_total = $7, tax_total = $8, round_off = $9, grand_total = $10, updated_at = $11
		WHERE id = $1 AND status = $12`
	tag, err := r.db.Exec(ctx, query,
		d.ID, d.PartyID, d.Number, d.Date, d.Reference, d.Notes,
		d.SubTotal, d.TaxTotal, d.RoundOff, d.GrandTotal, d.UpdatedAt, entity.DocStatusDraft,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.notDraft(ctx, d.ID)
	}
	return nil
}

func (r *DocumentRepo) MarkPosted(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE documents SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`,
		id, entity.DocStatusPosted, at, entity.DocStatusDraft,
	)
	if err != nil {
		return fmt.Errorf("post document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.notDraft(ctx, id)
	}
	return nil
}

func (r *DocumentRepo) DeleteLines(ctx context.Context, documentID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete document lines: %w", err)
	}
	return nil
}

// DeleteDraft borra el documento si sigue en DRAFT; las líneas caen por ON DELETE CASCADE.
func (r *DocumentRepo) DeleteDraft(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND status = $2`, id, entity.DocStatusDraft)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.notDraft(ctx, id)
	}
	return nil
}

// notDraft distingue, tras una escritura condicional sin filas, entre inexistente y ya contabilizado.
func (r *DocumentRepo) notDraft(ctx context.Context, id string) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM documents WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get document status: %w", err)
	}
	return fmt.Errorf("%w: documento en estado %s", domain.ErrConflict, status)
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	d, err := scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepo) GetLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, position, description, hsn_code, quantity, unit_rate, discount, tax_rate_percent
		FROM document_lines WHERE document_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.Position, &l.Description, &l.HSNCode,
			&l.Quantity, &l.UnitRate, &l.Discount, &l.TaxRatePercent); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByCompany devuelve la página pedida y el total de filas que cumplen el filtro.
func (r *DocumentRepo) ListByCompany(ctx context.Context, companyID string, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	where := `
		WHERE company_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::uuid IS NULL OR party_id = $3)
		  AND ($4::date IS NULL OR date >= $4)
		  AND ($5::date IS NULL OR date <= $5)`
	args := []any{companyID, nullIfEmpty(f.Type), nullIfEmpty(f.PartyID), f.From, f.To}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM documents`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	query := `SELECT ` + documentColumns + ` FROM documents` + where + `
		ORDER BY date DESC, created_at DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.db.Query(ctx, query, append(args, limitArg(f.Limit), f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

func (r *DocumentRepo) ExistsNumber(ctx context.Context, companyID, docType, number string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM documents WHERE company_id = $1 AND type = $2 AND number = $3)`
	if err := r.db.QueryRow(ctx, query, companyID, docType, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists document number: %w", err)
	}
	return exists, nil
}

func (r *DocumentRepo) SumGrandTotalByType(ctx context.Context, companyID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT type, COALESCE(SUM(grand_total), 0)
		FROM documents
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		GROUP BY type`
	rows, err := r.db.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum documents: %w", err)
	}
	defer rows.Close()

	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var docType string
		var total decimal.Decimal
		if err := rows.Scan(&docType, &total); err != nil {
			return nil, fmt.Errorf("scan sum: %w", err)
		}
		out[docType] = total
	}
	return out, rows.Err()
}
