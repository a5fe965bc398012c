package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"billfold/internal/domain"
	"billfold/internal/export"
	"billfold/internal/port"
)

// exportPageSize bounds a single export; per-user volume is modest so one
// page covers everything in practice.
const exportPageSize = 10000

// ExportService writes an owner's invoice book as a spreadsheet and stores it
// as a downloadable artifact.
type ExportService interface {
	// ExportInvoices builds the workbook and returns a presigned download URL.
	ExportInvoices(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter) (string, error)
}

type exportService struct {
	repo          port.InvoiceRepository
	storage       port.ObjectStorage
	presignExpiry time.Duration
}

// NewExportService creates a new ExportService implementation.
func NewExportService(repo port.InvoiceRepository, storage port.ObjectStorage, presignExpiry time.Duration) ExportService {
	return &exportService{repo: repo, storage: storage, presignExpiry: presignExpiry}
}

func (s *exportService) ExportInvoices(ctx context.Context, ownerID uuid.UUID, filter domain.StatusFilter) (string, error) {
	invs, _, err := s.repo.List(ctx, ownerID, filter, 0, exportPageSize)
	if err != nil {
		return "", fmt.Errorf("%w: listing invoices: %v", domain.ErrExportFailed, err)
	}

	book, err := export.BuildWorkbook(invs)
	if err != nil {
		return "", fmt.Errorf("%w: building workbook: %v", domain.ErrExportFailed, err)
	}

	key := fmt.Sprintf("exports/%s/invoices-%s.xlsx", ownerID, time.Now().UTC().Format("20060102-150405"))
	if err := s.storage.Upload(ctx, key, export.WorkbookContentType, book); err != nil {
		return "", fmt.Errorf("%w: uploading workbook: %v", domain.ErrExportFailed, err)
	}

	url, err := s.storage.PresignDownload(ctx, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: presigning download: %v", domain.ErrExportFailed, err)
	}
	return url, nil
}
