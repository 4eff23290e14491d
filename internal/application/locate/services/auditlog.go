// Package services holds application services that react to locate events.
package services

import (
	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/logger"
)

// AuditLogHandler writes one structured audit line per domain event.
type AuditLogHandler struct {
	logger logger.Interface
}

func NewAuditLogHandler(log logger.Interface) *AuditLogHandler {
	return &AuditLogHandler{logger: log.With("component", "locate.audit")}
}

// Register subscribes the handler to every event on the dispatcher.
func (h *AuditLogHandler) Register(subscriber events.EventSubscriber) error {
	return subscriber.Subscribe(events.AllEvents, h)
}

func (h *AuditLogHandler) Handle(event events.DomainEvent) error {
	args := []any{
		"event_type", event.GetEventType(),
		"aggregate_id", event.GetAggregateID(),
		"occurred_at", event.GetOccurredAt(),
	}

	switch e := event.(type) {
	case locate.WorkOrderEvent:
		args = append(args,
			"snapshot_id", e.SnapshotID,
			"work_order_number", e.WorkOrderNumber,
		)
		if e.Actor != "" {
			args = append(args, "actor", e.Actor)
		}
	case locate.SnapshotIngestedEvent:
		args = append(args,
			"work_orders", e.WorkOrders,
			"scraped", e.Scraped,
		)
	}

	h.logger.Infow("locate audit", args...)
	return nil
}
