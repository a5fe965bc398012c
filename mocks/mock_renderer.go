package mocks

import (
	"github.com/stretchr/testify/mock"

	"billfold/internal/domain"
)

// MockRenderer is a mock implementation of port.DocumentRenderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderInvoice(inv domain.Invoice) (string, string, error) {
	args := m.Called(inv)
	return args.String(0), args.String(1), args.Error(2)
}
