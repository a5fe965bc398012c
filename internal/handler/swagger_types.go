package handler

import (
	"billfold/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@studio.dev"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
	FullName string `json:"full_name" binding:"required" example:"Jane Doe"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"jane@studio.dev"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateInvoiceRequest represents the create invoice request body.
type CreateInvoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number" example:"INV-2026-0042"`
	ClientName    string               `json:"client_name" binding:"required" example:"Acme Corporation"`
	ClientEmail   string               `json:"client_email" example:"billing@acme.com"`
	ClientAddress string               `json:"client_address" example:"123 Market St, Springfield"`
	ClientPhone   string               `json:"client_phone" example:"+1-555-0123"`
	IssueDate     string               `json:"issue_date" binding:"required" example:"2026-08-01"`
	DueDate       string               `json:"due_date" binding:"required" example:"2026-08-31"`
	Status        domain.InvoiceStatus `json:"status" example:"draft"`
	LineItems     []domain.LineItem    `json:"line_items" binding:"required"`
	TaxRate       float64              `json:"tax_rate" example:"8.5"`
	DiscountRate  float64              `json:"discount_rate" example:"10"`
}

// UpdateInvoiceRequest represents the update invoice request body.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string               `json:"invoice_number" example:"INV-2026-0042"`
	ClientName    *string               `json:"client_name" example:"Acme Corporation"`
	ClientEmail   *string               `json:"client_email" example:"billing@acme.com"`
	ClientAddress *string               `json:"client_address" example:"123 Market St, Springfield"`
	ClientPhone   *string               `json:"client_phone" example:"+1-555-0123"`
	IssueDate     *string               `json:"issue_date" example:"2026-08-01"`
	DueDate       *string               `json:"due_date" example:"2026-08-31"`
	Status        *domain.InvoiceStatus `json:"status" example:"pending"`
	LineItems     *[]domain.LineItem    `json:"line_items"`
	TaxRate       *float64              `json:"tax_rate" example:"8.5"`
	DiscountRate  *float64              `json:"discount_rate" example:"10"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// ExportResponse represents the invoice export response.
type ExportResponse struct {
	DownloadURL string `json:"download_url" example:"https://s3.amazonaws.com/billfold-exports/...?X-Amz-Signature=..."`
}

// BulkCountResponse represents the result of a bulk trash operation.
type BulkCountResponse struct {
	Restored int64 `json:"restored,omitempty" example:"3"`
	Deleted  int64 `json:"deleted,omitempty" example:"3"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
