package locate

import (
	"time"

	vo "locates/internal/domain/locate/valueobjects"
)

// FilterExcavator keeps the records whose priority denotes an excavator job.
func FilterExcavator(records []Details, match vo.PriorityMatch) []Details {
	if !match.IsValid() {
		match = vo.PriorityMatchExact
	}
	kept := make([]Details, 0, len(records))
	for _, r := range records {
		if match.Matches(r.PriorityName) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Deduplicate drops repeated work order numbers, keeping the first
// occurrence and the original order. Records without a number are kept.
func Deduplicate(records []Details) []Details {
	seen := make(map[string]struct{}, len(records))
	unique := make([]Details, 0, len(records))
	for _, r := range records {
		if r.WorkOrderNumber != "" {
			if _, dup := seen[r.WorkOrderNumber]; dup {
				continue
			}
			seen[r.WorkOrderNumber] = struct{}{}
		}
		unique = append(unique, r)
	}
	return unique
}

// NewSnapshotFromScrape filters and deduplicates a scrape batch into a new,
// unsaved snapshot.
func NewSnapshotFromScrape(batch *ScrapeBatch, match vo.PriorityMatch, now time.Time) *Snapshot {
	records := Deduplicate(FilterExcavator(batch.WorkOrders, match))

	orders := make([]*WorkOrder, 0, len(records))
	for _, r := range records {
		orders = append(orders, NewWorkOrder(r, now))
	}

	return NewSnapshot(SnapshotParams{
		FilterStartDate: batch.FilterStartDate,
		FilterEndDate:   batch.FilterEndDate,
		DispatchDate:    batch.DispatchDate,
		Source:          batch.Source,
	}, orders, now)
}
