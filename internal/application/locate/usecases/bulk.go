package usecases

import (
	"context"

	"locates/internal/application/locate/dto"
	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/logger"
)

type bulkOutcome struct {
	id       string
	snapshot *locate.Snapshot
	event    events.DomainEvent
	reason   string
}

// bulkRun collects per-item outcomes, saves each touched snapshot once, and
// turns a failed save into failures for that snapshot's items only.
type bulkRun struct {
	outcomes   []bulkOutcome
	touched    []*locate.Snapshot
	seen       map[*locate.Snapshot]bool
	saveErrors map[*locate.Snapshot]string
}

func newBulkRun(size int) *bulkRun {
	return &bulkRun{
		outcomes:   make([]bulkOutcome, 0, size),
		seen:       make(map[*locate.Snapshot]bool),
		saveErrors: make(map[*locate.Snapshot]string),
	}
}

func (b *bulkRun) fail(id, reason string) {
	b.outcomes = append(b.outcomes, bulkOutcome{id: id, reason: reason})
}

func (b *bulkRun) succeed(id string, snapshot *locate.Snapshot, event events.DomainEvent) {
	b.outcomes = append(b.outcomes, bulkOutcome{id: id, snapshot: snapshot, event: event})
	if !b.seen[snapshot] {
		b.seen[snapshot] = true
		b.touched = append(b.touched, snapshot)
	}
}

func (b *bulkRun) save(ctx context.Context, repo locate.SnapshotRepository, log logger.Interface) {
	for _, s := range b.touched {
		if err := repo.Update(ctx, s); err != nil {
			log.Errorw("failed to save snapshot during bulk operation", "snapshot_id", s.ID(), "error", err)
			b.saveErrors[s] = "failed to save: " + err.Error()
		}
	}
}

func (b *bulkRun) result() *dto.BulkResultDTO {
	result := dto.NewBulkResult(len(b.outcomes))
	for _, o := range b.outcomes {
		switch {
		case o.reason != "":
			result.Fail(o.id, o.reason)
		case b.saveErrors[o.snapshot] != "":
			result.Fail(o.id, b.saveErrors[o.snapshot])
		default:
			result.Succeed(o.id)
		}
	}
	return result
}

// savedEvents returns the events of items whose snapshot was saved.
func (b *bulkRun) savedEvents() []events.DomainEvent {
	var evts []events.DomainEvent
	for _, o := range b.outcomes {
		if o.reason == "" && o.event != nil && b.saveErrors[o.snapshot] == "" {
			evts = append(evts, o.event)
		}
	}
	return evts
}

// indexByWorkOrderID maps every live work order id to its snapshot.
func indexByWorkOrderID(snapshots []*locate.Snapshot) map[string]*locate.Snapshot {
	index := make(map[string]*locate.Snapshot)
	for _, s := range snapshots {
		for _, wo := range s.WorkOrders() {
			if _, exists := index[wo.ID()]; !exists {
				index[wo.ID()] = s
			}
		}
	}
	return index
}
