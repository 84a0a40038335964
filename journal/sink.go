package journal

import (
	"context"
	"fmt"

	"github.com/bookwerk/bookstore-mas/events"
)

// Sink adapts a Journal to the simulation's event sink interface.
type Sink struct {
	journal Journal
}

// NewSink creates a sink recording every event into the given journal.
func NewSink(journal Journal) *Sink {
	return &Sink{journal: journal}
}

// Record serializes the domain event and appends it to the journal.
func (s *Sink) Record(ctx context.Context, event events.DomainEvent) error {
	payload, marshallingErr := event.PayloadToJSON()
	if marshallingErr != nil {
		return fmt.Errorf("serializing %s payload failed: %w", event.IsEventType(), marshallingErr)
	}

	storable, buildErr := BuildStorableEvent(event.IsEventType(), event.AtStep(), event.HasOccurredAt(), payload)
	if buildErr != nil {
		return fmt.Errorf("building storable event for %s failed: %w", event.IsEventType(), buildErr)
	}

	return s.journal.Append(ctx, storable)
}
