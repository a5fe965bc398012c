package port

import "context"

// InvoiceEmail is a fully-rendered invoice message ready for delivery.
type InvoiceEmail struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// InvoiceSender defines the contract for delivering invoice emails.
type InvoiceSender interface {
	SendInvoice(ctx context.Context, email InvoiceEmail) error
}
