package events

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// BookPurchasedEventType is the event type identifier.
const BookPurchasedEventType = "BookPurchased"

// BookPurchased represents one successful purchase of a single copy.
// QuantityBefore/QuantityAfter snapshot the stock around the decrement,
// Threshold is the book's effective restock threshold at purchase time.
type BookPurchased struct {
	EventType      EventTypeString
	Step           StepUint
	CustomerID     CustomerIDString
	Customer       string
	BookID         BookIDString
	Book           string
	QuantityBefore int
	QuantityAfter  int
	Threshold      int
	UnitPrice      float64
	OrderID        string
	OccurredAt     OccurredAtTS
}

// BuildBookPurchased creates a new BookPurchased event.
func BuildBookPurchased(
	step uint64,
	customerID uuid.UUID,
	customerName string,
	bookID uuid.UUID,
	bookTitle string,
	quantityBefore int,
	quantityAfter int,
	threshold int,
	unitPrice float64,
	orderID uuid.UUID,
	occurredAt time.Time,
) BookPurchased {

	event := BookPurchased{
		EventType:      BookPurchasedEventType,
		Step:           step,
		CustomerID:     customerID.String(),
		Customer:       customerName,
		BookID:         bookID.String(),
		Book:           bookTitle,
		QuantityBefore: quantityBefore,
		QuantityAfter:  quantityAfter,
		Threshold:      threshold,
		UnitPrice:      unitPrice,
		OrderID:        orderID.String(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// BookPurchasedFromJSON reconstructs the event from its JSON payload.
func BookPurchasedFromJSON(payload []byte) (BookPurchased, error) {
	var event BookPurchased
	if err := jsoniter.ConfigFastest.Unmarshal(payload, &event); err != nil {
		return BookPurchased{}, err
	}

	return event, nil
}

// IsEventType returns the event type identifier.
func (e BookPurchased) IsEventType() string {
	return BookPurchasedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookPurchased) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AtStep returns the simulation step during which this event occurred.
func (e BookPurchased) AtStep() uint64 {
	return e.Step
}

// PayloadToJSON serializes the event payload.
func (e BookPurchased) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookPurchased) IsErrorEvent() bool {
	return false
}
