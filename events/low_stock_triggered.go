package events

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// LowStockTriggeredEventType is the event type identifier.
const LowStockTriggeredEventType = "LowStockTriggered"

// LowStockTriggered represents a purchase that pushed a book's stock below
// its effective restock threshold; a restock request was published alongside.
type LowStockTriggered struct {
	EventType  EventTypeString
	Step       StepUint
	CustomerID CustomerIDString
	Customer   string
	BookID     BookIDString
	Book       string
	Quantity   int
	Threshold  int
	OccurredAt OccurredAtTS
}

// BuildLowStockTriggered creates a new LowStockTriggered event.
func BuildLowStockTriggered(
	step uint64,
	customerID uuid.UUID,
	customerName string,
	bookID uuid.UUID,
	bookTitle string,
	quantity int,
	threshold int,
	occurredAt time.Time,
) LowStockTriggered {

	event := LowStockTriggered{
		EventType:  LowStockTriggeredEventType,
		Step:       step,
		CustomerID: customerID.String(),
		Customer:   customerName,
		BookID:     bookID.String(),
		Book:       bookTitle,
		Quantity:   quantity,
		Threshold:  threshold,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// LowStockTriggeredFromJSON reconstructs the event from its JSON payload.
func LowStockTriggeredFromJSON(payload []byte) (LowStockTriggered, error) {
	var event LowStockTriggered
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &event); err != nil {
		return LowStockTriggered{}, err
	}

	return event, nil
}

// IsEventType returns the event type identifier.
func (e LowStockTriggered) IsEventType() string {
	return LowStockTriggeredEventType
}

// HasOccurredAt returns when this event occurred.
func (e LowStockTriggered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AtStep returns the simulation step during which this event occurred.
func (e LowStockTriggered) AtStep() uint64 {
	return e.Step
}

// PayloadToJSON serializes the event payload.
func (e LowStockTriggered) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LowStockTriggered) IsErrorEvent() bool {
	return false
}
