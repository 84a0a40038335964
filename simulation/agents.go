package simulation

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/bookwerk/bookstore-mas/events"
	"github.com/bookwerk/bookstore-mas/ontology"
)

// =================================================================
// ITEM AGENT - Passive carrier of one book
// =================================================================

// ItemAgent places a book on the schedule so that customer agents can find
// it. Its own turn does nothing.
type ItemAgent struct {
	book *ontology.Book
}

// NewItemAgent creates a passive agent carrying the given book.
func NewItemAgent(book *ontology.Book) *ItemAgent {
	return &ItemAgent{book: book}
}

// Book returns the carried book.
func (a *ItemAgent) Book() *ontology.Book {
	return a.book
}

// Act is a no-op; item agents only exist to be selected by customers.
func (a *ItemAgent) Act(_ context.Context, _ *Model) error {
	return nil
}

// =================================================================
// CUSTOMER AGENT - Buys books, signals low stock
// =================================================================

// CustomerAgent models a buyer. Each turn it picks one scheduled book at
// random and attempts to purchase a single copy.
type CustomerAgent struct {
	customer *ontology.Customer
	rng      *rand.Rand
}

// NewCustomerAgent creates a customer agent drawing its book choice from rng.
func NewCustomerAgent(customer *ontology.Customer, rng *rand.Rand) *CustomerAgent {
	return &CustomerAgent{
		customer: customer,
		rng:      rng,
	}
}

// Customer returns the backing customer entity.
func (a *CustomerAgent) Customer() *ontology.Customer {
	return a.customer
}

// Act performs one purchase attempt.
//
// The selected book is the sole nondeterministic element of the turn. Stock
// is checked before mutation, so AvailableQuantity never drops below zero.
// Side effects stay confined to the selected book, this customer's history,
// and the message bus.
func (a *CustomerAgent) Act(ctx context.Context, model *Model) error {
	books := model.ScheduledBooks()
	if len(books) == 0 {
		return nil // nothing to buy, not an error
	}

	book := books[a.rng.Intn(len(books))]
	quantity := book.AvailableQuantity

	if quantity == 0 {
		model.appendEvent(ctx, events.BuildPurchaseRejectedOutOfStock(
			model.CurrentStep(),
			a.customer.ID,
			a.customer.HasName(),
			book.ID,
			book.DisplayTitle(),
			quantity,
			model.now(),
		))

		return nil
	}

	book.AvailableQuantity = quantity - 1

	// The secondary ledger must track the book within the same turn.
	if inventory, attached := model.Store().InventoryFor(book.ID); attached {
		if inventory.CurrentQuantity > 0 {
			inventory.CurrentQuantity--
		}
	}

	order := ontology.BuildOrder(a.customer.ID, book.ID, 1, book.Price, model.now())
	if err := model.Store().RecordOrder(order); err != nil {
		return fmt.Errorf("recording order for %s failed: %w", book.Name, err)
	}

	a.customer.RecordPurchase(book.ID)

	threshold := book.EffectiveThreshold(model.RestockThreshold())

	model.appendEvent(ctx, events.BuildBookPurchased(
		model.CurrentStep(),
		a.customer.ID,
		a.customer.HasName(),
		book.ID,
		book.DisplayTitle(),
		quantity,
		book.AvailableQuantity,
		threshold,
		order.UnitPrice,
		order.ID,
		model.now(),
	))

	if book.AvailableQuantity < threshold {
		model.Bus().Publish(Message{
			Type:   MessageTypeRestockRequest,
			BookID: book.ID,
		})

		model.appendEvent(ctx, events.BuildLowStockTriggered(
			model.CurrentStep(),
			a.customer.ID,
			a.customer.HasName(),
			book.ID,
			book.DisplayTitle(),
			book.AvailableQuantity,
			threshold,
			model.now(),
		))
	}

	return nil
}

// =================================================================
// EMPLOYEE AGENT - Processes restock requests
// =================================================================

// EmployeeAgent models staff restocking low inventory. Each turn it drains
// all pending restock requests and processes every one of them.
type EmployeeAgent struct {
	employee      *ontology.Employee
	restockAmount int
}

// NewEmployeeAgent creates an employee agent. The restock amount is the
// employee's own configured amount if set, else the given model default.
func NewEmployeeAgent(employee *ontology.Employee, defaultRestockAmount int) *EmployeeAgent {
	return &EmployeeAgent{
		employee:      employee,
		restockAmount: employee.RestockAmount.OrDefault(defaultRestockAmount),
	}
}

// Employee returns the backing employee entity.
func (a *EmployeeAgent) Employee() *ontology.Employee {
	return a.employee
}

// RestockAmount returns the per-request increment this agent applies.
func (a *EmployeeAgent) RestockAmount() int {
	return a.restockAmount
}

// Act drains all restock_request messages and adds the restock amount for
// each one. Duplicate requests for the same book are NOT coalesced:
// repeated low-stock signals compound restocking.
func (a *EmployeeAgent) Act(ctx context.Context, model *Model) error {
	for _, message := range model.Bus().Drain(MessageTypeRestockRequest) {
		book, exists := model.Store().BookByID(message.BookID)
		if !exists {
			model.Logger().Warn("restock request for unknown book", "book_id", message.BookID.String())
			continue
		}

		quantityBefore := book.AvailableQuantity
		book.AvailableQuantity = quantityBefore + a.restockAmount

		if inventory, attached := model.Store().InventoryFor(book.ID); attached {
			inventory.CurrentQuantity += a.restockAmount
		}

		model.appendEvent(ctx, events.BuildBookRestocked(
			model.CurrentStep(),
			a.employee.ID,
			a.employee.HasName(),
			book.ID,
			book.DisplayTitle(),
			a.restockAmount,
			quantityBefore,
			book.AvailableQuantity,
			model.now(),
		))
	}

	return nil
}
