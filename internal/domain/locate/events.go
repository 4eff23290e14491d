package locate

import (
	"strconv"
	"time"

	"locates/internal/domain/shared/events"
)

const (
	EventSnapshotIngested = "locate.snapshot_ingested"
	EventCallRecorded     = "locate.call_recorded"
	EventTagged           = "locate.tagged"
	EventTimerExpired     = "locate.timer_expired"
	EventCompleted        = "locate.completed_manually"
	EventDeleted          = "locate.deleted"
	EventRestored         = "locate.restored"
	EventPurged           = "locate.permanently_deleted"
)

type SnapshotIngestedEvent struct {
	events.BaseEvent
	WorkOrders int
	Scraped    int
}

func NewSnapshotIngestedEvent(snapshotID uint, workOrders, scraped int, at time.Time) SnapshotIngestedEvent {
	return SnapshotIngestedEvent{
		BaseEvent:  events.NewBaseEvent(strconv.FormatUint(uint64(snapshotID), 10), EventSnapshotIngested, at),
		WorkOrders: workOrders,
		Scraped:    scraped,
	}
}

// WorkOrderEvent covers the per-order lifecycle events. Actor is empty for
// system-driven changes such as timer expiry.
type WorkOrderEvent struct {
	events.BaseEvent
	SnapshotID      uint
	WorkOrderNumber string
	Actor           string
}

func NewWorkOrderEvent(eventType string, snapshotID uint, workOrderID, number, actor string, at time.Time) WorkOrderEvent {
	return WorkOrderEvent{
		BaseEvent:       events.NewBaseEvent(workOrderID, eventType, at),
		SnapshotID:      snapshotID,
		WorkOrderNumber: number,
		Actor:           actor,
	}
}
