package ontology

import (
	"time"

	"github.com/google/uuid"
)

// Instead of implementing full value objects, alias types and helper methods are used here ...

type PlacedAtTS = time.Time

// ToPlacedAt normalizes an order timestamp to UTC with microsecond precision.
func ToPlacedAt(t time.Time) PlacedAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// Book is the inventory record for a single title: stock count, price and
// restock threshold. Mutated only by customer turns (decrement) and employee
// turns (increment); never deleted during a run.
type Book struct {
	ID                uuid.UUID
	Name              string // stable display identity, e.g. "book_python"
	Title             Optional[string]
	Author            Optional[string]
	Genre             Optional[string]
	Price             float64 // non-negative, unit price at this instant
	AvailableQuantity int     // invariant: >= 0
	RestockThreshold  Optional[int]
}

// DisplayTitle returns the title if set, else the stable name.
func (b *Book) DisplayTitle() string {
	return b.Title.OrDefault(b.Name)
}

// EffectiveThreshold returns the book's own restock threshold if set,
// else the given model-wide default.
func (b *Book) EffectiveThreshold(defaultThreshold int) int {
	return b.RestockThreshold.OrDefault(defaultThreshold)
}

// Customer is a buyer with an append-only purchase history.
type Customer struct {
	ID          uuid.UUID
	Name        string // stable display identity, e.g. "customer_alice"
	DisplayName Optional[string]
	Purchases   []uuid.UUID // purchased book IDs, append-only
}

// HasName returns the display name if set, else the stable name.
func (c *Customer) HasName() string {
	return c.DisplayName.OrDefault(c.Name)
}

// RecordPurchase appends the book to the purchase history unless it is
// already the most recent entry.
func (c *Customer) RecordPurchase(bookID uuid.UUID) {
	if n := len(c.Purchases); n > 0 && c.Purchases[n-1] == bookID {
		return
	}

	c.Purchases = append(c.Purchases, bookID)
}

// Employee is a staff member with a configured per-restock increment.
type Employee struct {
	ID            uuid.UUID
	Name          string // stable display identity, e.g. "employee_emma"
	DisplayName   Optional[string]
	RestockAmount Optional[int]
}

// HasName returns the display name if set, else the stable name.
func (e *Employee) HasName() string {
	return e.DisplayName.OrDefault(e.Name)
}

// Order records one successful purchase. Immutable once created; the unit
// price is a snapshot taken at purchase time, decoupled from later price
// changes.
type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	BookID     uuid.UUID
	Quantity   int // >= 1
	UnitPrice  float64
	PlacedAt   PlacedAtTS
}

// BuildOrder creates a new Order with a fresh identity.
func BuildOrder(customerID uuid.UUID, bookID uuid.UUID, quantity int, unitPrice float64, placedAt time.Time) Order {
	return Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		BookID:     bookID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		PlacedAt:   ToPlacedAt(placedAt),
	}
}

// Inventory is the optional secondary stock ledger for exactly one Book.
// CurrentQuantity must track Book.AvailableQuantity after every mutation
// that touches stock.
type Inventory struct {
	BookID          uuid.UUID
	CurrentQuantity int
}
