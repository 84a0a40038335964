package ontology

// CreateSampleData seeds the store with the demo world: two books, two
// customers and one employee.
func CreateSampleData(store *Store) error {
	if _, err := store.AddBook(BookParams{
		Name:     "book_python",
		Title:    Some("Python Basics"),
		Genre:    Some("Programming"),
		Price:    10.0,
		Quantity: 2,
	}); err != nil {
		return err
	}

	if _, err := store.AddBook(BookParams{
		Name:     "book_hp",
		Title:    Some("Harry Potter"),
		Genre:    Some("Fantasy"),
		Price:    12.5,
		Quantity: 1,
	}); err != nil {
		return err
	}

	if _, err := store.AddCustomer("customer_alice", Some("Alice")); err != nil {
		return err
	}

	if _, err := store.AddCustomer("customer_bob", Some("Bob")); err != nil {
		return err
	}

	if _, err := store.AddEmployee("employee_emma", Some("Emma"), None[int]()); err != nil {
		return err
	}

	return nil
}
