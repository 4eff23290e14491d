package events

import (
	"time"
)

// DomainEvent is something that happened to an aggregate.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetOccurredAt() time.Time
	GetVersion() int
}

// BaseEvent provides common fields for all domain events
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	Version     int       `json:"version"`
}

func NewBaseEvent(aggregateID, eventType string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		OccurredAt:  occurredAt,
		Version:     1,
	}
}

func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }
func (e BaseEvent) GetVersion() int          { return e.Version }

type EventHandler interface {
	Handle(event DomainEvent) error
}

// HandlerFunc adapts a plain function to EventHandler.
type HandlerFunc func(event DomainEvent) error

func (f HandlerFunc) Handle(event DomainEvent) error {
	return f(event)
}

type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
}

type EventSubscriber interface {
	// Subscribe registers handler for eventType; AllEvents matches every type.
	Subscribe(eventType string, handler EventHandler) error
}

type EventDispatcher interface {
	EventPublisher
	EventSubscriber

	Start() error
	Stop() error
}

// AllEvents subscribes a handler to every event type.
const AllEvents = "*"
