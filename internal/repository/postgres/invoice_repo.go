package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billfold/internal/domain"
	"billfold/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// statusClause returns the SQL fragment and bind args for a status filter.
// argIdx is the next free positional parameter index.
func statusClause(filter domain.StatusFilter, argIdx int) (string, []interface{}) {
	switch filter {
	case domain.FilterAll, "":
		return "", nil
	case domain.FilterActive:
		return fmt.Sprintf(" AND status <> $%d", argIdx), []interface{}{domain.StatusTrashed}
	default:
		return fmt.Sprintf(" AND status = $%d", argIdx), []interface{}{domain.InvoiceStatus(filter)}
	}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (
		id, owner_id, invoice_number,
		client_name, client_email, client_address, client_phone,
		issue_date, due_date, status, original_status, line_items,
		subtotal, discount_rate, discount_amount, tax_rate, tax_amount, total,
		deleted_at, created_at, updated_at
	) VALUES (
		$1, $2, $3,
		$4, $5, $6, $7,
		$8, $9, $10, $11, $12,
		$13, $14, $15, $16, $17, $18,
		$19, $20, $21
	)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.OwnerID, inv.InvoiceNumber,
		inv.ClientName, inv.ClientEmail, inv.ClientAddress, inv.ClientPhone,
		inv.IssueDate, inv.DueDate, inv.Status, inv.OriginalStatus, inv.LineItems,
		inv.Subtotal, inv.DiscountRate, inv.DiscountAmount, inv.TaxRate, inv.TaxAmount, inv.Total,
		inv.DeletedAt, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter, offset, limit int) ([]domain.Invoice, int, error) {
	clause, extra := statusClause(filter, 2)
	countArgs := append([]interface{}{ownerID}, extra...)

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE owner_id = $1"+clause, countArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	next := 2 + len(extra)
	query := fmt.Sprintf(
		"SELECT * FROM invoices WHERE owner_id = $1%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		clause, next, next+1)
	listArgs := append(countArgs, limit, offset)

	var invs []domain.Invoice
	if err := r.db.SelectContext(ctx, &invs, query, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invs, total, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			invoice_number = $1,
			client_name = $2, client_email = $3, client_address = $4, client_phone = $5,
			issue_date = $6, due_date = $7,
			status = $8, original_status = $9, line_items = $10,
			subtotal = $11, discount_rate = $12, discount_amount = $13,
			tax_rate = $14, tax_amount = $15, total = $16,
			deleted_at = $17, updated_at = $18
		 WHERE id = $19 AND owner_id = $20`,
		inv.InvoiceNumber,
		inv.ClientName, inv.ClientEmail, inv.ClientAddress, inv.ClientPhone,
		inv.IssueDate, inv.DueDate,
		inv.Status, inv.OriginalStatus, inv.LineItems,
		inv.Subtotal, inv.DiscountRate, inv.DiscountAmount,
		inv.TaxRate, inv.TaxAmount, inv.Total,
		inv.DeletedAt, inv.UpdatedAt,
		inv.ID, inv.OwnerID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Count(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter) (int, error) {
	clause, extra := statusClause(filter, 2)
	args := append([]interface{}{ownerID}, extra...)

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE owner_id = $1"+clause, args...)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.Count: %w", err)
	}
	return total, nil
}

func (r *invoiceRepo) RestoreAllTrashed(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET
			status = COALESCE(original_status, $1),
			original_status = NULL,
			deleted_at = NULL,
			updated_at = $2
		 WHERE owner_id = $3 AND status = $4`,
		domain.StatusDraft, time.Now().UTC(), ownerID, domain.StatusTrashed)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.RestoreAllTrashed: %w", err)
	}
	return result.RowsAffected()
}

func (r *invoiceRepo) DeleteAllTrashed(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE owner_id = $1 AND status = $2",
		ownerID, domain.StatusTrashed)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.DeleteAllTrashed: %w", err)
	}
	return result.RowsAffected()
}

func (r *invoiceRepo) DeleteTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE status = $1 AND deleted_at IS NOT NULL AND deleted_at < $2",
		domain.StatusTrashed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.DeleteTrashedBefore: %w", err)
	}
	return result.RowsAffected()
}

func (r *invoiceRepo) PromoteOverdue(ctx context.Context, today time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = $2
		 WHERE status = $3 AND due_date < $4`,
		domain.StatusOverdue, time.Now().UTC(), domain.StatusPending, today)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.PromoteOverdue: %w", err)
	}
	return result.RowsAffected()
}
