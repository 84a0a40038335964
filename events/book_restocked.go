package events

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// BookRestockedEventType is the event type identifier.
const BookRestockedEventType = "BookRestocked"

// BookRestocked represents one processed restock request. Multiple requests
// for the same book in one tick each produce their own restock.
type BookRestocked struct {
	EventType      EventTypeString
	Step           StepUint
	EmployeeID     EmployeeIDString
	Employee       string
	BookID         BookIDString
	Book           string
	Added          int
	QuantityBefore int
	QuantityAfter  int
	OccurredAt     OccurredAtTS
}

// BuildBookRestocked creates a new BookRestocked event.
func BuildBookRestocked(
	step uint64,
	employeeID uuid.UUID,
	employeeName string,
	bookID uuid.UUID,
	bookTitle string,
	added int,
	quantityBefore int,
	quantityAfter int,
	occurredAt time.Time,
) BookRestocked {

	event := BookRestocked{
		EventType:      BookRestockedEventType,
		Step:           step,
		EmployeeID:     employeeID.String(),
		Employee:       employeeName,
		BookID:         bookID.String(),
		Book:           bookTitle,
		Added:          added,
		QuantityBefore: quantityBefore,
		QuantityAfter:  quantityAfter,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// BookRestockedFromJSON reconstructs the event from its JSON payload.
func BookRestockedFromJSON(payload []byte) (BookRestocked, error) {
	var event BookRestocked
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &event); err != nil {
		return BookRestocked{}, err
	}

	return event, nil
}

// IsEventType returns the event type identifier.
func (e BookRestocked) IsEventType() string {
	return BookRestockedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookRestocked) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AtStep returns the simulation step during which this event occurred.
func (e BookRestocked) AtStep() uint64 {
	return e.Step
}

// PayloadToJSON serializes the event payload.
func (e BookRestocked) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookRestocked) IsErrorEvent() bool {
	return false
}
