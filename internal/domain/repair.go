package domain

// Repair normalizes an invoice whose trash bookkeeping contradicts itself and
// reports whether anything changed (callers persist the record when it did).
//
// A trashed record without a deletion timestamp is treated as not actually
// trashed: it reverts to its original status, or draft when that too is
// missing or corrupt. Conversely a live record sheds any leftover trash
// markers. Pure: touches only the value it is given.
func Repair(inv *Invoice) bool {
	if inv.Status == StatusTrashed && inv.DeletedAt == nil {
		if inv.OriginalStatus != nil && inv.OriginalStatus.Valid() && *inv.OriginalStatus != StatusTrashed {
			inv.Status = *inv.OriginalStatus
		} else {
			inv.Status = StatusDraft
		}
		inv.OriginalStatus = nil
		return true
	}

	if inv.Status != StatusTrashed && (inv.DeletedAt != nil || inv.OriginalStatus != nil) {
		inv.DeletedAt = nil
		inv.OriginalStatus = nil
		return true
	}

	return false
}
