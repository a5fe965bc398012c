package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents an account that owns invoices.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LineItem is a single billable line on an invoice. Amount is derived from
// Quantity and Rate by the summary calculator and is never authoritative.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// LineItems is stored as a single JSONB column.
type LineItems []LineItem

// Value implements driver.Valuer.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *LineItems) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("LineItems.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, l)
}

// Invoice is the central entity. Client fields are a snapshot copied by value
// at save time, not a reference to a client record. Summary fields are derived
// from LineItems plus the two rates and recomputed server-side on every write.
type Invoice struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OwnerID       uuid.UUID `db:"owner_id" json:"owner_id"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number"`

	ClientName    string `db:"client_name" json:"client_name"`
	ClientEmail   string `db:"client_email" json:"client_email"`
	ClientAddress string `db:"client_address" json:"client_address"`
	ClientPhone   string `db:"client_phone" json:"client_phone"`

	IssueDate time.Time `db:"issue_date" json:"issue_date"`
	DueDate   time.Time `db:"due_date" json:"due_date"`

	Status         InvoiceStatus  `db:"status" json:"status"`
	OriginalStatus *InvoiceStatus `db:"original_status" json:"original_status,omitempty"`

	LineItems LineItems `db:"line_items" json:"line_items"`

	Subtotal       float64 `db:"subtotal" json:"subtotal"`
	DiscountRate   float64 `db:"discount_rate" json:"discount_rate"`
	DiscountAmount float64 `db:"discount_amount" json:"discount_amount"`
	TaxRate        float64 `db:"tax_rate" json:"tax_rate"`
	TaxAmount      float64 `db:"tax_amount" json:"tax_amount"`
	Total          float64 `db:"total" json:"total"`

	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Trashed reports whether the invoice currently sits in the trash.
func (i *Invoice) Trashed() bool {
	return i.Status == StatusTrashed
}
