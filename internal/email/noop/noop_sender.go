package noop

import (
	"context"
	"log"

	"billfold/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op InvoiceSender that logs deliveries to stdout.
func NewNoopSender() port.InvoiceSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoice(_ context.Context, email port.InvoiceEmail) error {
	log.Printf("[NOOP EMAIL] %q to %s (%s)", email.Subject, email.ToName, email.ToEmail)
	return nil
}
