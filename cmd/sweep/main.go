package main

import (
	"context"
	"log"
	"time"

	"billfold/internal/config"
	"billfold/internal/email/noop"
	"billfold/internal/render"
	"billfold/internal/repository/postgres"
	"billfold/internal/service"
)

// One-shot maintenance run: purge expired trash and promote overdue invoices,
// then exit. Meant for cron or a scheduled job runner.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		log.Fatalf("failed to initialize renderer: %v", err)
	}

	invoiceRepo := postgres.NewInvoiceRepo(db)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, noop.NewNoopSender(), renderer, cfg.Retention.Window(), cfg.Plan.MaxInvoices)

	ctx := context.Background()
	now := time.Now().UTC()

	purged, err := invoiceSvc.Sweep(ctx, now)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	log.Printf("purged %d expired trashed invoices", purged)

	promoted, err := invoiceSvc.PromoteOverdue(ctx, now)
	if err != nil {
		log.Fatalf("overdue promotion failed: %v", err)
	}
	log.Printf("promoted %d invoices to overdue", promoted)
}
