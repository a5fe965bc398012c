package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billfold/internal/domain"
	"billfold/internal/service"
)

// InvoiceHandler handles invoice lifecycle endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	exportService  service.ExportService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, exportService service.ExportService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, exportService: exportService}
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Description Create an invoice; totals are computed from the line items
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice created"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Duplicate invoice number"
// @Failure 429 {object} ErrorResponseBody "Plan limit reached"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	var req struct {
		InvoiceNumber string               `json:"invoice_number"`
		ClientName    string               `json:"client_name" binding:"required"`
		ClientEmail   string               `json:"client_email"`
		ClientAddress string               `json:"client_address"`
		ClientPhone   string               `json:"client_phone"`
		IssueDate     string               `json:"issue_date" binding:"required"`
		DueDate       string               `json:"due_date" binding:"required"`
		Status        domain.InvoiceStatus `json:"status"`
		LineItems     []domain.LineItem    `json:"line_items" binding:"required"`
		TaxRate       float64              `json:"tax_rate"`
		DiscountRate  float64              `json:"discount_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "client_name, issue_date, due_date, and line_items are required")
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), &service.CreateInvoiceInput{
		OwnerID:       ownerID,
		InvoiceNumber: req.InvoiceNumber,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientAddress: req.ClientAddress,
		ClientPhone:   req.ClientPhone,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Status:        req.Status,
		LineItems:     req.LineItems,
		TaxRate:       req.TaxRate,
		DiscountRate:  req.DiscountRate,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List invoices with an optional status filter; trashed invoices are excluded unless requested
// @Tags invoices
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Param status query string false "Status filter: draft, pending, paid, overdue, trashed, active, all" default(active)
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta} "List of invoices"
// @Failure 400 {object} ErrorResponseBody "Invalid status filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	filter := domain.StatusFilter(c.DefaultQuery("status", string(domain.FilterActive)))
	if !filter.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "status must be one of: draft, pending, paid, overdue, trashed, active, all")
		return
	}

	invs, total, err := h.invoiceService.List(c.Request.Context(), ownerID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Description Get a single invoice, trashed or not
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	invID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), ownerID, invID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Update handles PUT /api/v1/invoices/:id
// @Summary Update an invoice
// @Description Update invoice fields; omitted fields are left unchanged and totals are recomputed
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Invoice} "Updated invoice"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found or trashed"
// @Failure 409 {object} ErrorResponseBody "Duplicate invoice number"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	invID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var req struct {
		InvoiceNumber *string               `json:"invoice_number"`
		ClientName    *string               `json:"client_name"`
		ClientEmail   *string               `json:"client_email"`
		ClientAddress *string               `json:"client_address"`
		ClientPhone   *string               `json:"client_phone"`
		IssueDate     *string               `json:"issue_date"`
		DueDate       *string               `json:"due_date"`
		Status        *domain.InvoiceStatus `json:"status"`
		LineItems     *[]domain.LineItem    `json:"line_items"`
		TaxRate       *float64              `json:"tax_rate"`
		DiscountRate  *float64              `json:"discount_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), &service.UpdateInvoiceInput{
		OwnerID:       ownerID,
		InvoiceID:     invID,
		InvoiceNumber: req.InvoiceNumber,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientAddress: req.ClientAddress,
		ClientPhone:   req.ClientPhone,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Status:        req.Status,
		LineItems:     req.LineItems,
		TaxRate:       req.TaxRate,
		DiscountRate:  req.DiscountRate,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Move an invoice to trash
// @Description Soft-delete an invoice; it can be restored until the retention window expires
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Trashed invoice"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found or already trashed"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	invID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.SoftDelete(c.Request.Context(), ownerID, invID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Send handles POST /api/v1/invoices/:id/send
// @Summary Send an invoice
// @Description Email the invoice to the client; a draft becomes pending on successful delivery
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Sent invoice"
// @Failure 400 {object} ErrorResponseBody "Invoice has no client email"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found or trashed"
// @Failure 502 {object} ErrorResponseBody "Email delivery failed"
// @Security BearerAuth
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	invID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.Send(c.Request.Context(), ownerID, invID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// MarkPaid handles POST /api/v1/invoices/:id/pay
// @Summary Mark an invoice paid
// @Description Mark an invoice as paid regardless of its current live status
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Paid invoice"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found or trashed"
// @Security BearerAuth
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	invID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.MarkPaid(c.Request.Context(), ownerID, invID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Restore handles POST /api/v1/invoices/:id/restore
// @Summary Restore a trashed invoice
// @Description Bring a trashed invoice back to its pre-trash status, or draft if that is unknown
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Restored invoice"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found or not trashed"
// @Security BearerAuth
// @Router /invoices/{id}/restore [post]
func (h *InvoiceHandler) Restore(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	invID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.Restore(c.Request.Context(), ownerID, invID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// PermanentDelete handles DELETE /api/v1/invoices/:id/permanent
// @Summary Permanently delete an invoice
// @Description Remove an invoice from storage; this cannot be undone
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response "Invoice deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id}/permanent [delete]
func (h *InvoiceHandler) PermanentDelete(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	invID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.PermanentDelete(c.Request.Context(), ownerID, invID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice permanently deleted"})
}

// Export handles GET /api/v1/invoices/export
// @Summary Export invoices
// @Description Build an XLSX workbook of the owner's invoices and return a download URL
// @Tags invoices
// @Produce json
// @Param status query string false "Status filter: draft, pending, paid, overdue, trashed, active, all" default(active)
// @Success 200 {object} Response{data=ExportResponse} "Download URL"
// @Failure 400 {object} ErrorResponseBody "Invalid status filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 500 {object} ErrorResponseBody "Export failed"
// @Security BearerAuth
// @Router /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	filter := domain.StatusFilter(c.DefaultQuery("status", string(domain.FilterActive)))
	if !filter.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "status must be one of: draft, pending, paid, overdue, trashed, active, all")
		return
	}

	url, err := h.exportService.ExportInvoices(c.Request.Context(), ownerID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// ListTrash handles GET /api/v1/trash
// @Summary List trashed invoices
// @Description List the owner's trashed invoices
// @Tags trash
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta} "Trashed invoices"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /trash [get]
func (h *InvoiceHandler) ListTrash(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	invs, total, err := h.invoiceService.List(c.Request.Context(), ownerID, domain.FilterFor(domain.StatusTrashed), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// RestoreAll handles POST /api/v1/trash/restore
// @Summary Restore all trashed invoices
// @Description Restore every trashed invoice to its pre-trash status in one operation
// @Tags trash
// @Produce json
// @Success 200 {object} Response{data=BulkCountResponse} "Number of invoices restored"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /trash/restore [post]
func (h *InvoiceHandler) RestoreAll(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	restored, err := h.invoiceService.RestoreAll(c.Request.Context(), ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"restored": restored})
}

// EmptyTrash handles DELETE /api/v1/trash
// @Summary Empty the trash
// @Description Permanently delete every trashed invoice; this cannot be undone
// @Tags trash
// @Produce json
// @Success 200 {object} Response{data=BulkCountResponse} "Number of invoices deleted"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /trash [delete]
func (h *InvoiceHandler) EmptyTrash(c *gin.Context) {
	ownerID, ok := extractOwner(c)
	if !ok {
		return
	}

	deleted, err := h.invoiceService.EmptyTrash(c.Request.Context(), ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": deleted})
}
