package domain

// InvoiceStatus is the lifecycle state of an invoice. Trashed is an overlay
// state: the prior status is preserved in OriginalStatus so restore is
// lossless. The string values are part of the storage compatibility contract.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
	StatusTrashed InvoiceStatus = "trashed"
)

// ValidStatuses maps every persistable status to true.
var ValidStatuses = map[InvoiceStatus]bool{
	StatusDraft:   true,
	StatusPending: true,
	StatusPaid:    true,
	StatusOverdue: true,
	StatusTrashed: true,
}

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	return ValidStatuses[s]
}

// StatusFilter selects which invoices a list or count query sees. Besides the
// two named filters, any concrete InvoiceStatus converts to a filter matching
// exactly that status.
type StatusFilter string

const (
	// FilterAll matches every invoice, trashed included.
	FilterAll StatusFilter = "all"
	// FilterActive matches every invoice that is not trashed.
	FilterActive StatusFilter = "active"
)

// FilterFor returns the filter matching exactly the given status.
func FilterFor(s InvoiceStatus) StatusFilter {
	return StatusFilter(s)
}

// Valid reports whether f is a named filter or a concrete status.
func (f StatusFilter) Valid() bool {
	if f == FilterAll || f == FilterActive {
		return true
	}
	return InvoiceStatus(f).Valid()
}
