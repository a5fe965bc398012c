package port

import "billfold/internal/domain"

// DocumentRenderer turns an invoice into presentable documents. It receives
// the invoice by value: a read-only snapshot, never the live record.
type DocumentRenderer interface {
	// RenderInvoice returns an HTML document and a plain-text fallback.
	RenderInvoice(inv domain.Invoice) (html string, text string, err error)
}
