package domain

import "errors"

var (
	// ErrNotFound covers a missing record, a record owned by someone else, and
	// a record whose status is incompatible with the requested transition.
	// The three are deliberately indistinguishable to callers so ownership
	// probes leak nothing.
	ErrNotFound = errors.New("invoice not found")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")

	// Validation failures, raised before any store mutation.
	ErrClientNameRequired = errors.New("client name is required")
	ErrClientEmailMissing = errors.New("invoice client has no email address")
	ErrInvalidDate        = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrInvalidLineItem    = errors.New("line item quantity and rate must be non-negative")
	ErrInvalidRate        = errors.New("tax and discount rates must be between 0 and 100")
	ErrInvalidStatus      = errors.New("invalid invoice status")

	// ErrDuplicateInvoiceNumber surfaces the per-owner uniqueness constraint.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists for this owner")

	// ErrPlanLimitReached means the owner may not create another invoice.
	ErrPlanLimitReached = errors.New("invoice limit for the current plan reached")

	// Collaborator failures.
	ErrSendFailed   = errors.New("sending invoice email failed")
	ErrExportFailed = errors.New("exporting invoices failed")
)
