package journal

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")

// StorableEvents is an alias type for a slice of StorableEvent.
type StorableEvents = []StorableEvent

// StorableEvent is the DTO the journal appends and reads back. It is built
// on scalars to stay agnostic of the domain event implementation.
//
// While its properties are exported, it should only be constructed with the
// supplied factory method BuildStorableEvent.
type StorableEvent struct {
	EventType   string
	Step        uint64
	OccurredAt  time.Time
	PayloadJSON []byte
}

// BuildStorableEvent is a factory method for StorableEvent.
//
// It populates the StorableEvent with the given scalar input.
// Returns an error if payloadJSON is not valid JSON.
func BuildStorableEvent(eventType string, step uint64, occurredAt time.Time, payloadJSON []byte) (StorableEvent, error) {
	if !json.Valid(payloadJSON) {
		return StorableEvent{}, ErrInvalidPayloadJSON
	}

	return StorableEvent{
		EventType:   eventType,
		Step:        step,
		OccurredAt:  occurredAt.UTC().Truncate(time.Microsecond),
		PayloadJSON: payloadJSON,
	}, nil
}
