package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billfold/internal/domain"
)

func TestRepair_TrashedWithoutTimestampRevertsToOriginal(t *testing.T) {
	orig := domain.StatusPaid
	inv := &domain.Invoice{Status: domain.StatusTrashed, OriginalStatus: &orig}

	changed := domain.Repair(inv)

	assert.True(t, changed)
	assert.Equal(t, domain.StatusPaid, inv.Status)
	assert.Nil(t, inv.OriginalStatus)
}

func TestRepair_TrashedWithoutTimestampFallsBackToDraft(t *testing.T) {
	inv := &domain.Invoice{Status: domain.StatusTrashed}

	changed := domain.Repair(inv)

	assert.True(t, changed)
	assert.Equal(t, domain.StatusDraft, inv.Status)
}

func TestRepair_CorruptOriginalStatusFallsBackToDraft(t *testing.T) {
	bogus := domain.InvoiceStatus("archived")
	inv := &domain.Invoice{Status: domain.StatusTrashed, OriginalStatus: &bogus}

	changed := domain.Repair(inv)

	assert.True(t, changed)
	assert.Equal(t, domain.StatusDraft, inv.Status)
	assert.Nil(t, inv.OriginalStatus)
}

func TestRepair_TrashedAsOriginalStatusFallsBackToDraft(t *testing.T) {
	trashed := domain.StatusTrashed
	inv := &domain.Invoice{Status: domain.StatusTrashed, OriginalStatus: &trashed}

	changed := domain.Repair(inv)

	assert.True(t, changed)
	assert.Equal(t, domain.StatusDraft, inv.Status)
}

func TestRepair_LiveRecordShedsTrashMarkers(t *testing.T) {
	orig := domain.StatusPending
	now := time.Now()
	inv := &domain.Invoice{Status: domain.StatusPaid, OriginalStatus: &orig, DeletedAt: &now}

	changed := domain.Repair(inv)

	assert.True(t, changed)
	assert.Equal(t, domain.StatusPaid, inv.Status)
	assert.Nil(t, inv.OriginalStatus)
	assert.Nil(t, inv.DeletedAt)
}

func TestRepair_ConsistentRecordsUntouched(t *testing.T) {
	now := time.Now()
	orig := domain.StatusPending

	live := &domain.Invoice{Status: domain.StatusPending}
	assert.False(t, domain.Repair(live))
	assert.Equal(t, domain.StatusPending, live.Status)

	trashed := &domain.Invoice{Status: domain.StatusTrashed, OriginalStatus: &orig, DeletedAt: &now}
	assert.False(t, domain.Repair(trashed))
	assert.Equal(t, domain.StatusTrashed, trashed.Status)
	assert.NotNil(t, trashed.DeletedAt)
}
