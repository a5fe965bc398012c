package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billfold/internal/port"
)

// MockInvoiceSender is a mock implementation of port.InvoiceSender.
type MockInvoiceSender struct {
	mock.Mock
}

func (m *MockInvoiceSender) SendInvoice(ctx context.Context, email port.InvoiceEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
