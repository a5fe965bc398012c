package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billfold/internal/domain"
	"billfold/internal/export"
	"billfold/internal/service"
	"billfold/mocks"
)

func TestExportService_ExportInvoices_Success(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(repo, storage, time.Hour)

	ownerID := uuid.New()
	invs := []domain.Invoice{{
		ID: uuid.New(), OwnerID: ownerID, InvoiceNumber: "INV-0042",
		ClientName: "Acme", Status: domain.StatusPending, Total: 44.89,
	}}
	repo.On("List", mock.Anything, ownerID, domain.FilterActive, 0, 10000).Return(invs, 1, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("string"), export.WorkbookContentType, mock.AnythingOfType("[]uint8")).Return(nil)
	storage.On("PresignDownload", mock.Anything, mock.AnythingOfType("string"), time.Hour).Return("https://example.com/download", nil)

	url, err := svc.ExportInvoices(context.Background(), ownerID, domain.FilterActive)

	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/download", url)
	storage.AssertExpectations(t)
}

func TestExportService_ExportInvoices_ListFails(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(repo, storage, time.Hour)

	ownerID := uuid.New()
	repo.On("List", mock.Anything, ownerID, domain.FilterAll, 0, 10000).Return(nil, 0, errors.New("db down"))

	url, err := svc.ExportInvoices(context.Background(), ownerID, domain.FilterAll)

	assert.Empty(t, url)
	assert.ErrorIs(t, err, domain.ErrExportFailed)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportService_ExportInvoices_UploadFails(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(repo, storage, time.Hour)

	ownerID := uuid.New()
	repo.On("List", mock.Anything, ownerID, domain.FilterActive, 0, 10000).Return([]domain.Invoice{}, 0, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("string"), export.WorkbookContentType, mock.AnythingOfType("[]uint8")).Return(errors.New("bucket gone"))

	url, err := svc.ExportInvoices(context.Background(), ownerID, domain.FilterActive)

	assert.Empty(t, url)
	assert.ErrorIs(t, err, domain.ErrExportFailed)
	storage.AssertNotCalled(t, "PresignDownload", mock.Anything, mock.Anything, mock.Anything)
}
