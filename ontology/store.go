package ontology

import (
	"errors"

	"github.com/google/uuid"
)

var ErrBookNameRequired = errors.New("book name is required")
var ErrNegativePrice = errors.New("book price must not be negative")
var ErrNegativeQuantity = errors.New("book quantity must not be negative")
var ErrNegativeThreshold = errors.New("book restock threshold must not be negative")
var ErrDuplicateEntityName = errors.New("an entity with this name already exists")
var ErrUnknownBook = errors.New("no book with this ID exists")
var ErrInventoryAlreadyAttached = errors.New("book already has an inventory ledger")
var ErrInvalidOrderQuantity = errors.New("order quantity must be at least 1")

// Store is the knowledge base holding all entities of one simulated world.
//
// Enumeration methods return entities in insertion order. The store carries
// no locking: the simulation is single-threaded and agent turns never
// overlap, so the sequential scheduler sweep is the concurrency discipline.
type Store struct {
	books       map[uuid.UUID]*Book
	bookIDs     []uuid.UUID
	customers   map[uuid.UUID]*Customer
	customerIDs []uuid.UUID
	employees   map[uuid.UUID]*Employee
	employeeIDs []uuid.UUID
	orders      []Order
	inventories map[uuid.UUID]*Inventory
	names       map[string]struct{}
}

// NewStore creates an empty knowledge-base store.
func NewStore() *Store {
	return &Store{
		books:       make(map[uuid.UUID]*Book),
		customers:   make(map[uuid.UUID]*Customer),
		employees:   make(map[uuid.UUID]*Employee),
		inventories: make(map[uuid.UUID]*Inventory),
		names:       make(map[string]struct{}),
	}
}

// BookParams carries the input for adding a book. Title, Author, Genre and
// RestockThreshold are optional; absent values resolve to defaults when read.
type BookParams struct {
	Name             string
	Title            Optional[string]
	Author           Optional[string]
	Genre            Optional[string]
	Price            float64
	Quantity         int
	RestockThreshold Optional[int]
}

// AddBook validates the params and adds a new book to the store.
func (s *Store) AddBook(params BookParams) (*Book, error) {
	if params.Name == "" {
		return nil, ErrBookNameRequired
	}

	if params.Price < 0 {
		return nil, ErrNegativePrice
	}

	if params.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	if threshold, set := params.RestockThreshold.Get(); set && threshold < 0 {
		return nil, ErrNegativeThreshold
	}

	if err := s.claimName(params.Name); err != nil {
		return nil, err
	}

	book := &Book{
		ID:                uuid.New(),
		Name:              params.Name,
		Title:             params.Title,
		Author:            params.Author,
		Genre:             params.Genre,
		Price:             params.Price,
		AvailableQuantity: params.Quantity,
		RestockThreshold:  params.RestockThreshold,
	}

	s.books[book.ID] = book
	s.bookIDs = append(s.bookIDs, book.ID)

	return book, nil
}

// AddCustomer adds a new customer to the store.
func (s *Store) AddCustomer(name string, displayName Optional[string]) (*Customer, error) {
	if err := s.claimName(name); err != nil {
		return nil, err
	}

	customer := &Customer{
		ID:          uuid.New(),
		Name:        name,
		DisplayName: displayName,
	}

	s.customers[customer.ID] = customer
	s.customerIDs = append(s.customerIDs, customer.ID)

	return customer, nil
}

// AddEmployee adds a new employee to the store.
func (s *Store) AddEmployee(name string, displayName Optional[string], restockAmount Optional[int]) (*Employee, error) {
	if err := s.claimName(name); err != nil {
		return nil, err
	}

	employee := &Employee{
		ID:            uuid.New(),
		Name:          name,
		DisplayName:   displayName,
		RestockAmount: restockAmount,
	}

	s.employees[employee.ID] = employee
	s.employeeIDs = append(s.employeeIDs, employee.ID)

	return employee, nil
}

// AttachInventory creates the secondary stock ledger for a book, initialized
// to the book's current quantity. Exactly one ledger per book.
func (s *Store) AttachInventory(bookID uuid.UUID) (*Inventory, error) {
	book, exists := s.books[bookID]
	if !exists {
		return nil, ErrUnknownBook
	}

	if _, attached := s.inventories[bookID]; attached {
		return nil, ErrInventoryAlreadyAttached
	}

	inventory := &Inventory{
		BookID:          bookID,
		CurrentQuantity: book.AvailableQuantity,
	}

	s.inventories[bookID] = inventory

	return inventory, nil
}

// RecordOrder appends an immutable order record.
func (s *Store) RecordOrder(order Order) error {
	if order.Quantity < 1 {
		return ErrInvalidOrderQuantity
	}

	s.orders = append(s.orders, order)

	return nil
}

// Books returns all books in insertion order.
func (s *Store) Books() []*Book {
	books := make([]*Book, 0, len(s.bookIDs))
	for _, id := range s.bookIDs {
		books = append(books, s.books[id])
	}

	return books
}

// Customers returns all customers in insertion order.
func (s *Store) Customers() []*Customer {
	customers := make([]*Customer, 0, len(s.customerIDs))
	for _, id := range s.customerIDs {
		customers = append(customers, s.customers[id])
	}

	return customers
}

// Employees returns all employees in insertion order.
func (s *Store) Employees() []*Employee {
	employees := make([]*Employee, 0, len(s.employeeIDs))
	for _, id := range s.employeeIDs {
		employees = append(employees, s.employees[id])
	}

	return employees
}

// Orders returns a copy of all order records in creation order.
func (s *Store) Orders() []Order {
	orders := make([]Order, len(s.orders))
	copy(orders, s.orders)

	return orders
}

// BookByID returns the book with the given ID, if it exists.
func (s *Store) BookByID(id uuid.UUID) (*Book, bool) {
	book, exists := s.books[id]
	return book, exists
}

// BookByName returns the book with the given stable name, if it exists.
func (s *Store) BookByName(name string) (*Book, bool) {
	for _, id := range s.bookIDs {
		if s.books[id].Name == name {
			return s.books[id], true
		}
	}

	return nil, false
}

// CustomerByID returns the customer with the given ID, if it exists.
func (s *Store) CustomerByID(id uuid.UUID) (*Customer, bool) {
	customer, exists := s.customers[id]
	return customer, exists
}

// InventoryFor returns the secondary stock ledger for a book, if attached.
func (s *Store) InventoryFor(bookID uuid.UUID) (*Inventory, bool) {
	inventory, attached := s.inventories[bookID]
	return inventory, attached
}

func (s *Store) claimName(name string) error {
	if _, taken := s.names[name]; taken {
		return ErrDuplicateEntityName
	}

	s.names[name] = struct{}{}

	return nil
}
