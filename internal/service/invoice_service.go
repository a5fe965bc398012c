package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"billfold/internal/domain"
	"billfold/internal/port"
)

// CreateInvoiceInput is the DTO for creating an invoice. The caller never
// supplies summary figures; they are derived here from the line items.
// Dates are YYYY-MM-DD strings and an empty Status defaults to draft.
type CreateInvoiceInput struct {
	OwnerID       uuid.UUID
	InvoiceNumber string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	ClientPhone   string
	IssueDate     string
	DueDate       string
	Status        domain.InvoiceStatus
	LineItems     []domain.LineItem
	TaxRate       float64
	DiscountRate  float64
}

// UpdateInvoiceInput is the DTO for editing an invoice. Nil fields are left
// unchanged; the summary is always recomputed from the resulting record.
type UpdateInvoiceInput struct {
	OwnerID       uuid.UUID
	InvoiceID     uuid.UUID
	InvoiceNumber *string
	ClientName    *string
	ClientEmail   *string
	ClientAddress *string
	ClientPhone   *string
	IssueDate     *string
	DueDate       *string
	Status        *domain.InvoiceStatus
	LineItems     *[]domain.LineItem
	TaxRate       *float64
	DiscountRate  *float64
}

// InvoiceService is the invoice lifecycle engine: it validates and applies
// status transitions, soft delete, restore, permanent purge, retention
// sweeping, and overdue promotion.
type InvoiceService interface {
	Create(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter, offset, limit int) ([]domain.Invoice, int, error)
	Count(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter) (int, error)
	Update(ctx context.Context, input *UpdateInvoiceInput) (*domain.Invoice, error)
	Send(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error)
	SoftDelete(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error)
	Restore(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error)
	PermanentDelete(ctx context.Context, ownerID, id uuid.UUID) error
	RestoreAll(ctx context.Context, ownerID uuid.UUID) (int64, error)
	EmptyTrash(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Sweep(ctx context.Context, now time.Time) (int64, error)
	PromoteOverdue(ctx context.Context, now time.Time) (int64, error)
}

type invoiceService struct {
	repo            port.InvoiceRepository
	sender          port.InvoiceSender
	renderer        port.DocumentRenderer
	retentionWindow time.Duration
	maxInvoices     int // 0 = unlimited
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	repo port.InvoiceRepository,
	sender port.InvoiceSender,
	renderer port.DocumentRenderer,
	retentionWindow time.Duration,
	maxInvoices int,
) InvoiceService {
	return &invoiceService{
		repo:            repo,
		sender:          sender,
		renderer:        renderer,
		retentionWindow: retentionWindow,
		maxInvoices:     maxInvoices,
	}
}

func (s *invoiceService) Create(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error) {
	if input.ClientName == "" {
		return nil, domain.ErrClientNameRequired
	}
	issueDate, err := domain.ParseDate(input.IssueDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := domain.ParseDate(input.DueDate)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateRates(input.TaxRate, input.DiscountRate); err != nil {
		return nil, err
	}
	if err := domain.ValidateLineItems(input.LineItems); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}
	// Records are never born trashed; soft delete is the only way in.
	if !status.Valid() || status == domain.StatusTrashed {
		return nil, domain.ErrInvalidStatus
	}

	if s.maxInvoices > 0 {
		count, err := s.repo.Count(ctx, input.OwnerID, domain.FilterActive)
		if err != nil {
			return nil, fmt.Errorf("counting invoices for plan limit: %w", err)
		}
		if count >= s.maxInvoices {
			return nil, domain.ErrPlanLimitReached
		}
	}

	items, summary := domain.ComputeSummary(input.LineItems, input.TaxRate, input.DiscountRate)

	inv := &domain.Invoice{
		ID:            uuid.New(),
		OwnerID:       input.OwnerID,
		InvoiceNumber: input.InvoiceNumber,
		ClientName:    input.ClientName,
		ClientEmail:   input.ClientEmail,
		ClientAddress: input.ClientAddress,
		ClientPhone:   input.ClientPhone,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Status:        status,
		LineItems:     items,
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = generateInvoiceNumber()
	}
	applySummary(inv, summary)

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	s.repairIfNeeded(ctx, inv)
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter, offset, limit int) ([]domain.Invoice, int, error) {
	// Keep observed state fresh: purge expired trash and promote overdue
	// invoices before reading. Failures here never block the read.
	now := time.Now().UTC()
	if _, err := s.Sweep(ctx, now); err != nil {
		log.Printf("invoiceService.List: sweep failed: %v", err)
	}
	if _, err := s.PromoteOverdue(ctx, now); err != nil {
		log.Printf("invoiceService.List: overdue promotion failed: %v", err)
	}

	invs, total, err := s.repo.List(ctx, ownerID, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range invs {
		s.repairIfNeeded(ctx, &invs[i])
	}
	return invs, total, nil
}

func (s *invoiceService) Count(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter) (int, error) {
	return s.repo.Count(ctx, ownerID, filter)
}

func (s *invoiceService) Update(ctx context.Context, input *UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, input.OwnerID, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Trashed() {
		return nil, domain.ErrNotFound
	}

	wasDraft := inv.Status == domain.StatusDraft
	explicitDraft := input.Status != nil && *input.Status == domain.StatusDraft

	if input.Status != nil {
		if !input.Status.Valid() || *input.Status == domain.StatusTrashed {
			return nil, domain.ErrInvalidStatus
		}
		inv.Status = *input.Status
	}
	if input.InvoiceNumber != nil {
		inv.InvoiceNumber = *input.InvoiceNumber
	}
	if input.ClientName != nil {
		if *input.ClientName == "" {
			return nil, domain.ErrClientNameRequired
		}
		inv.ClientName = *input.ClientName
	}
	if input.ClientEmail != nil {
		inv.ClientEmail = *input.ClientEmail
	}
	if input.ClientAddress != nil {
		inv.ClientAddress = *input.ClientAddress
	}
	if input.ClientPhone != nil {
		inv.ClientPhone = *input.ClientPhone
	}
	if input.IssueDate != nil {
		d, err := domain.ParseDate(*input.IssueDate)
		if err != nil {
			return nil, err
		}
		inv.IssueDate = d
	}
	if input.DueDate != nil {
		d, err := domain.ParseDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		inv.DueDate = d
	}
	if input.TaxRate != nil {
		inv.TaxRate = *input.TaxRate
	}
	if input.DiscountRate != nil {
		inv.DiscountRate = *input.DiscountRate
	}
	if input.LineItems != nil {
		inv.LineItems = *input.LineItems
	}

	if err := domain.ValidateRates(inv.TaxRate, inv.DiscountRate); err != nil {
		return nil, err
	}
	if err := domain.ValidateLineItems(inv.LineItems); err != nil {
		return nil, err
	}

	// Editing a draft implicitly marks it as in progress unless the caller
	// pins the status to draft.
	if wasDraft && !explicitDraft && inv.Status == domain.StatusDraft {
		inv.Status = domain.StatusPending
	}

	items, summary := domain.ComputeSummary(inv.LineItems, inv.TaxRate, inv.DiscountRate)
	inv.LineItems = items
	applySummary(inv, summary)

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Send(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if inv.Trashed() {
		return nil, domain.ErrNotFound
	}
	if inv.ClientEmail == "" {
		return nil, domain.ErrClientEmailMissing
	}

	// The renderer gets a snapshot by value, never the live record.
	html, text, err := s.renderer.RenderInvoice(*inv)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering: %v", domain.ErrSendFailed, err)
	}

	email := port.InvoiceEmail{
		ToEmail:  inv.ClientEmail,
		ToName:   inv.ClientName,
		Subject:  fmt.Sprintf("Invoice %s", inv.InvoiceNumber),
		HTMLBody: html,
		TextBody: text,
	}
	if err := s.sender.SendInvoice(ctx, email); err != nil {
		// Delivery failed, so the draft stays a draft.
		return nil, fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}

	if inv.Status == domain.StatusDraft {
		inv.Status = domain.StatusPending
		if err := s.repo.Update(ctx, inv); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if inv.Trashed() {
		return nil, domain.ErrNotFound
	}

	inv.Status = domain.StatusPaid
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	// Re-trashing would overwrite the remembered original status with
	// "trashed" itself, so an already-trashed record rejects the transition.
	if inv.Trashed() {
		return nil, domain.ErrNotFound
	}

	orig := inv.Status
	now := time.Now().UTC()
	inv.OriginalStatus = &orig
	inv.Status = domain.StatusTrashed
	inv.DeletedAt = &now

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Restore(ctx context.Context, ownerID, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if !inv.Trashed() {
		return nil, domain.ErrNotFound
	}

	if inv.OriginalStatus != nil && inv.OriginalStatus.Valid() && *inv.OriginalStatus != domain.StatusTrashed {
		inv.Status = *inv.OriginalStatus
	} else {
		inv.Status = domain.StatusDraft
	}
	inv.OriginalStatus = nil
	inv.DeletedAt = nil

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) PermanentDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func (s *invoiceService) RestoreAll(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.repo.RestoreAllTrashed(ctx, ownerID)
}

func (s *invoiceService) EmptyTrash(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.repo.DeleteAllTrashed(ctx, ownerID)
}

// Sweep permanently deletes every trashed invoice whose trash age exceeds the
// retention window. Idempotent: a second sweep right after purges nothing.
func (s *invoiceService) Sweep(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.retentionWindow)
	return s.repo.DeleteTrashedBefore(ctx, cutoff)
}

// PromoteOverdue moves pending invoices past their due date to overdue.
// One-directional: nothing here ever demotes overdue back to pending.
func (s *invoiceService) PromoteOverdue(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.PromoteOverdue(ctx, domain.DateOnly(now))
}

// repairIfNeeded applies the pure repair function at the read boundary and
// writes the record back when it changed. A failed write-back only logs: the
// caller still gets the repaired view.
func (s *invoiceService) repairIfNeeded(ctx context.Context, inv *domain.Invoice) {
	if !domain.Repair(inv) {
		return
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		log.Printf("invoiceService.repairIfNeeded: failed to persist repair for %s: %v", inv.ID, err)
	}
}

// applySummary copies derived figures onto the invoice record.
func applySummary(inv *domain.Invoice, sum domain.Summary) {
	inv.Subtotal = sum.Subtotal
	inv.DiscountRate = sum.DiscountRate
	inv.DiscountAmount = sum.DiscountAmount
	inv.TaxRate = sum.TaxRate
	inv.TaxAmount = sum.TaxAmount
	inv.Total = sum.Total
}

// generateInvoiceNumber builds a display number for invoices created without
// one. Uniqueness per owner is still enforced by the store.
func generateInvoiceNumber() string {
	return fmt.Sprintf("INV-%s", time.Now().UTC().Format("20060102-150405"))
}
