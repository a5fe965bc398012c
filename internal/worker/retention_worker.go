// Package worker hosts background maintenance loops.
package worker

import (
	"context"
	"log"
	"time"

	"billfold/internal/service"
)

// RetentionWorker periodically purges expired trash and promotes overdue
// invoices. Both underlying operations are idempotent single statements, so
// the loop can run alongside the opportunistic pre-read maintenance without
// coordination.
type RetentionWorker struct {
	invoices service.InvoiceService
	interval time.Duration
}

// NewRetentionWorker creates a new RetentionWorker.
func NewRetentionWorker(invoices service.InvoiceService, interval time.Duration) *RetentionWorker {
	return &RetentionWorker{invoices: invoices, interval: interval}
}

// Start runs the maintenance loop until ctx is canceled. Per-cycle failures
// are logged and the loop continues; purging is retried on the next cycle.
func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("retentionWorker: started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("retentionWorker: shutting down")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *RetentionWorker) runOnce(ctx context.Context) {
	now := time.Now().UTC()

	purged, err := w.invoices.Sweep(ctx, now)
	if err != nil {
		log.Printf("retentionWorker: sweep failed: %v", err)
	} else if purged > 0 {
		log.Printf("retentionWorker: purged %d expired trashed invoices", purged)
	}

	promoted, err := w.invoices.PromoteOverdue(ctx, now)
	if err != nil {
		log.Printf("retentionWorker: overdue promotion failed: %v", err)
	} else if promoted > 0 {
		log.Printf("retentionWorker: promoted %d invoices to overdue", promoted)
	}
}
