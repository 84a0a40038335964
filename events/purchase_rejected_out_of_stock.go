package events

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// PurchaseRejectedOutOfStockEventType is the event type identifier.
const PurchaseRejectedOutOfStockEventType = "PurchaseRejectedOutOfStock"

// PurchaseRejectedOutOfStock represents a purchase attempt against a book
// with zero stock. No state is mutated and no order is created.
type PurchaseRejectedOutOfStock struct {
	EventType  EventTypeString
	Step       StepUint
	CustomerID CustomerIDString
	Customer   string
	BookID     BookIDString
	Book       string
	Quantity   int
	OccurredAt OccurredAtTS
}

// BuildPurchaseRejectedOutOfStock creates a new PurchaseRejectedOutOfStock event.
func BuildPurchaseRejectedOutOfStock(
	step uint64,
	customerID uuid.UUID,
	customerName string,
	bookID uuid.UUID,
	bookTitle string,
	quantity int,
	occurredAt time.Time,
) PurchaseRejectedOutOfStock {

	event := PurchaseRejectedOutOfStock{
		EventType:  PurchaseRejectedOutOfStockEventType,
		Step:       step,
		CustomerID: customerID.String(),
		Customer:   customerName,
		BookID:     bookID.String(),
		Book:       bookTitle,
		Quantity:   quantity,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// PurchaseRejectedOutOfStockFromJSON reconstructs the event from its JSON payload.
func PurchaseRejectedOutOfStockFromJSON(payload []byte) (PurchaseRejectedOutOfStock, error) {
	var event PurchaseRejectedOutOfStock
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &event); err != nil {
		return PurchaseRejectedOutOfStock{}, err
	}

	return event, nil
}

// IsEventType returns the event type identifier.
func (e PurchaseRejectedOutOfStock) IsEventType() string {
	return PurchaseRejectedOutOfStockEventType
}

// HasOccurredAt returns when this event occurred.
func (e PurchaseRejectedOutOfStock) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AtStep returns the simulation step during which this event occurred.
func (e PurchaseRejectedOutOfStock) AtStep() uint64 {
	return e.Step
}

// PayloadToJSON serializes the event payload.
func (e PurchaseRejectedOutOfStock) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}

// IsErrorEvent returns true since this event records a rejected operation.
func (e PurchaseRejectedOutOfStock) IsErrorEvent() bool {
	return true
}
