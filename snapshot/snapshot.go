// Package snapshot imports and exports the simulation world state for
// external tooling: a JSON codec for the full entity graph and a CSV codec
// for the book inventory table.
//
// Loads validate before mutating: a malformed snapshot aborts the load with
// an error and leaves prior state untouched.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/bookwerk/bookstore-mas/ontology"
)

var ErrMissingBookName = errors.New("snapshot book is missing its name")
var ErrMissingCustomerName = errors.New("snapshot customer is missing its name")
var ErrMissingEmployeeName = errors.New("snapshot employee is missing its name")
var ErrUnknownOrderBook = errors.New("snapshot order references an unknown book")
var ErrUnknownOrderCustomer = errors.New("snapshot order references an unknown customer")
var ErrUnknownPurchasedBook = errors.New("snapshot purchase history references an unknown book")

// BookRecord is the serialized form of a book. Optional fields are pointers;
// absent values resolve to defaults on load.
type BookRecord struct {
	Name             string  `json:"name"`
	Title            *string `json:"title,omitempty"`
	Author           *string `json:"author,omitempty"`
	Genre            *string `json:"genre,omitempty"`
	Price            float64 `json:"price"`
	Quantity         int     `json:"available_quantity"`
	RestockThreshold *int    `json:"restock_threshold,omitempty"`
}

// CustomerRecord is the serialized form of a customer. Purchases reference
// books by their stable names.
type CustomerRecord struct {
	Name        string   `json:"name"`
	DisplayName *string  `json:"display_name,omitempty"`
	Purchases   []string `json:"purchases,omitempty"`
}

// EmployeeRecord is the serialized form of an employee.
type EmployeeRecord struct {
	Name          string  `json:"name"`
	DisplayName   *string `json:"display_name,omitempty"`
	RestockAmount *int    `json:"restock_amount,omitempty"`
}

// OrderRecord is the serialized form of an order, referencing buyer and
// book by their stable names.
type OrderRecord struct {
	Customer  string    `json:"customer"`
	Book      string    `json:"book"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	PlacedAt  time.Time `json:"placed_at"`
}

// Snapshot is the full serialized world state.
type Snapshot struct {
	Books     []BookRecord     `json:"books"`
	Customers []CustomerRecord `json:"customers"`
	Employees []EmployeeRecord `json:"employees"`
	Orders    []OrderRecord    `json:"orders,omitempty"`
}

// Export captures the current world state of a store.
func Export(store *ontology.Store) Snapshot {
	var snap Snapshot

	bookNames := make(map[string]string) // book ID string -> stable name
	for _, book := range store.Books() {
		bookNames[book.ID.String()] = book.Name
		snap.Books = append(snap.Books, BookRecord{
			Name:             book.Name,
			Title:            optionalPtr(book.Title),
			Author:           optionalPtr(book.Author),
			Genre:            optionalPtr(book.Genre),
			Price:            book.Price,
			Quantity:         book.AvailableQuantity,
			RestockThreshold: optionalPtr(book.RestockThreshold),
		})
	}

	customerNames := make(map[string]string)
	for _, customer := range store.Customers() {
		customerNames[customer.ID.String()] = customer.Name

		var purchases []string
		for _, bookID := range customer.Purchases {
			purchases = append(purchases, bookNames[bookID.String()])
		}

		snap.Customers = append(snap.Customers, CustomerRecord{
			Name:        customer.Name,
			DisplayName: optionalPtr(customer.DisplayName),
			Purchases:   purchases,
		})
	}

	for _, employee := range store.Employees() {
		snap.Employees = append(snap.Employees, EmployeeRecord{
			Name:          employee.Name,
			DisplayName:   optionalPtr(employee.DisplayName),
			RestockAmount: optionalPtr(employee.RestockAmount),
		})
	}

	for _, order := range store.Orders() {
		snap.Orders = append(snap.Orders, OrderRecord{
			Customer:  customerNames[order.CustomerID.String()],
			Book:      bookNames[order.BookID.String()],
			Quantity:  order.Quantity,
			UnitPrice: order.UnitPrice,
			PlacedAt:  order.PlacedAt,
		})
	}

	return snap
}

// EncodeJSON serializes a snapshot.
func EncodeJSON(snap Snapshot) ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(snap)
}

// DecodeJSON parses a snapshot without applying it.
func DecodeJSON(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := jsoniter.ConfigFastest.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot json failed: %w", err)
	}

	return snap, nil
}

// BuildStore validates the whole snapshot first and then constructs a fresh
// store from it. On any validation error, no store is produced.
func BuildStore(snap Snapshot) (*ontology.Store, error) {
	if err := validate(snap); err != nil {
		return nil, err
	}

	store := ontology.NewStore()

	for _, record := range snap.Books {
		if _, err := store.AddBook(ontology.BookParams{
			Name:             record.Name,
			Title:            optionalOf(record.Title),
			Author:           optionalOf(record.Author),
			Genre:            optionalOf(record.Genre),
			Price:            record.Price,
			Quantity:         record.Quantity,
			RestockThreshold: optionalOf(record.RestockThreshold),
		}); err != nil {
			return nil, err
		}
	}

	for _, record := range snap.Customers {
		customer, err := store.AddCustomer(record.Name, optionalOf(record.DisplayName))
		if err != nil {
			return nil, err
		}

		for _, bookName := range record.Purchases {
			book, _ := store.BookByName(bookName)
			customer.Purchases = append(customer.Purchases, book.ID)
		}
	}

	for _, record := range snap.Employees {
		if _, err := store.AddEmployee(record.Name, optionalOf(record.DisplayName), optionalOf(record.RestockAmount)); err != nil {
			return nil, err
		}
	}

	customersByName := make(map[string]*ontology.Customer)
	for _, customer := range store.Customers() {
		customersByName[customer.Name] = customer
	}

	for _, record := range snap.Orders {
		book, _ := store.BookByName(record.Book)
		customer := customersByName[record.Customer]

		order := ontology.BuildOrder(customer.ID, book.ID, record.Quantity, record.UnitPrice, record.PlacedAt)
		if err := store.RecordOrder(order); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// LoadJSON decodes and applies a snapshot in one call.
func LoadJSON(data []byte) (*ontology.Store, error) {
	snap, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}

	return BuildStore(snap)
}

func validate(snap Snapshot) error {
	bookNames := make(map[string]struct{}, len(snap.Books))
	for _, record := range snap.Books {
		if record.Name == "" {
			return ErrMissingBookName
		}

		bookNames[record.Name] = struct{}{}
	}

	customerNames := make(map[string]struct{}, len(snap.Customers))
	for _, record := range snap.Customers {
		if record.Name == "" {
			return ErrMissingCustomerName
		}

		customerNames[record.Name] = struct{}{}

		for _, bookName := range record.Purchases {
			if _, known := bookNames[bookName]; !known {
				return fmt.Errorf("%w: %q", ErrUnknownPurchasedBook, bookName)
			}
		}
	}

	for _, record := range snap.Employees {
		if record.Name == "" {
			return ErrMissingEmployeeName
		}
	}

	for _, record := range snap.Orders {
		if _, known := bookNames[record.Book]; !known {
			return fmt.Errorf("%w: %q", ErrUnknownOrderBook, record.Book)
		}

		if _, known := customerNames[record.Customer]; !known {
			return fmt.Errorf("%w: %q", ErrUnknownOrderCustomer, record.Customer)
		}
	}

	return nil
}

func optionalPtr[T any](value ontology.Optional[T]) *T {
	if v, set := value.Get(); set {
		return &v
	}

	return nil
}

func optionalOf[T any](ptr *T) ontology.Optional[T] {
	if ptr == nil {
		return ontology.None[T]()
	}

	return ontology.Some(*ptr)
}
