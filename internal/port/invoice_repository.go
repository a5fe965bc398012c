package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billfold/internal/domain"
)

// InvoiceRepository defines the persistence contract for invoices. Every
// single-record operation is scoped to (ownerID, id); a record owned by
// someone else is indistinguishable from a missing one. Update applies its
// whole patch in one statement, so a concurrent writer on the same id can
// never observe a half-applied patch.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter, offset, limit int) ([]domain.Invoice, int, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Count(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter) (int, error)

	// Bulk operations. Each executes as a single SQL statement so a batch is
	// atomic: a mid-batch failure leaves no partially-restored or
	// partially-purged set.

	// RestoreAllTrashed restores every trashed invoice of the owner to its
	// original status (draft when the original status is missing) and returns
	// how many records changed.
	RestoreAllTrashed(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// DeleteAllTrashed permanently removes every trashed invoice of the owner.
	DeleteAllTrashed(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// DeleteTrashedBefore permanently removes every trashed invoice, across
	// all owners, whose deletion timestamp is older than cutoff.
	DeleteTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// PromoteOverdue moves every pending invoice with a due date strictly
	// before today to overdue. It never touches any other status.
	PromoteOverdue(ctx context.Context, today time.Time) (int64, error)
}
