package events

import (
	"errors"
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents one structured record in the simulation's event log.
// Events are append-only and consumed incrementally by presentation layers.
type DomainEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string
	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time
	// AtStep returns the simulation step during which this event occurred.
	AtStep() uint64
	// PayloadToJSON serializes the event payload.
	PayloadToJSON() ([]byte, error)
	// IsErrorEvent reports whether this event records a rejected operation.
	IsErrorEvent() bool
}

// FromJSON reconstructs a DomainEvent from its type identifier and payload.
func FromJSON(eventType EventTypeString, payload []byte) (DomainEvent, error) {
	switch eventType {
	case BookPurchasedEventType:
		event, unmarshallingErr := BookPurchasedFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errors.New("unmarshalling event from json failed"), unmarshallingErr)
		}

		return event, nil

	case PurchaseRejectedOutOfStockEventType:
		event, unmarshallingErr := PurchaseRejectedOutOfStockFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errors.New("unmarshalling event from json failed"), unmarshallingErr)
		}

		return event, nil

	case LowStockTriggeredEventType:
		event, unmarshallingErr := LowStockTriggeredFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errors.New("unmarshalling event from json failed"), unmarshallingErr)
		}

		return event, nil

	case BookRestockedEventType:
		event, unmarshallingErr := BookRestockedFromJSON(payload)
		if unmarshallingErr != nil {
			return nil, errors.Join(errors.New("unmarshalling event from json failed"), unmarshallingErr)
		}

		return event, nil
	}

	return nil, errors.New("unknown event type")
}
