// Package render produces presentable invoice documents for the email and
// PDF collaborators.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"billfold/internal/domain"
	"billfold/internal/port"
)

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 640px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice {{.InvoiceNumber}}</h2>
  <p>Billed to: <strong>{{.ClientName}}</strong>{{if .ClientAddress}}<br>{{.ClientAddress}}{{end}}</p>
  <p>Issued {{.IssueDate.Format "2006-01-02"}} &middot; Due {{.DueDate.Format "2006-01-02"}}</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr style="border-bottom: 1px solid #333;">
      <th style="text-align: left; padding: 6px;">Description</th>
      <th style="text-align: right; padding: 6px;">Qty</th>
      <th style="text-align: right; padding: 6px;">Rate</th>
      <th style="text-align: right; padding: 6px;">Amount</th>
    </tr>
    {{range .LineItems}}
    <tr style="border-bottom: 1px solid #eee;">
      <td style="padding: 6px;">{{.Description}}</td>
      <td style="text-align: right; padding: 6px;">{{.Quantity}}</td>
      <td style="text-align: right; padding: 6px;">{{printf "%.2f" .Rate}}</td>
      <td style="text-align: right; padding: 6px;">{{printf "%.2f" .Amount}}</td>
    </tr>
    {{end}}
  </table>
  <table style="width: 100%; margin-top: 12px;">
    <tr><td style="text-align: right;">Subtotal</td><td style="text-align: right; width: 120px;">{{printf "%.2f" .Subtotal}}</td></tr>
    <tr><td style="text-align: right;">Discount ({{printf "%g" .DiscountRate}}%)</td><td style="text-align: right;">-{{printf "%.2f" .DiscountAmount}}</td></tr>
    <tr><td style="text-align: right;">Tax ({{printf "%g" .TaxRate}}%)</td><td style="text-align: right;">{{printf "%.2f" .TaxAmount}}</td></tr>
    <tr><td style="text-align: right;"><strong>Total</strong></td><td style="text-align: right;"><strong>{{printf "%.2f" .Total}}</strong></td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Billfold Invoicing</p>
</body>
</html>`

type htmlRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates the html/template-backed DocumentRenderer.
func NewHTMLRenderer() (port.DocumentRenderer, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf("render.NewHTMLRenderer: parsing template: %w", err)
	}
	return &htmlRenderer{tmpl: tmpl}, nil
}

func (r *htmlRenderer) RenderInvoice(inv domain.Invoice) (string, string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, inv); err != nil {
		return "", "", fmt.Errorf("render.RenderInvoice: %w", err)
	}
	return buf.String(), renderText(inv), nil
}

// renderText builds the plain-text fallback body.
func renderText(inv domain.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invoice %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Billed to: %s\n", inv.ClientName)
	fmt.Fprintf(&b, "Issued %s, due %s\n\n", inv.IssueDate.Format(domain.DateLayout), inv.DueDate.Format(domain.DateLayout))
	for _, it := range inv.LineItems {
		fmt.Fprintf(&b, "  %s  x%g @ %.2f = %.2f\n", it.Description, it.Quantity, it.Rate, it.Amount)
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", inv.Subtotal)
	fmt.Fprintf(&b, "Discount (%g%%): -%.2f\n", inv.DiscountRate, inv.DiscountAmount)
	fmt.Fprintf(&b, "Tax (%g%%): %.2f\n", inv.TaxRate, inv.TaxAmount)
	fmt.Fprintf(&b, "Total: %.2f\n", inv.Total)
	return b.String()
}
