package ontology_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwerk/bookstore-mas/ontology"
)

func Test_Store_AddBook_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		params      ontology.BookParams
		expectedErr error
	}{
		{
			name:        "missing name",
			params:      ontology.BookParams{Price: 10, Quantity: 1},
			expectedErr: ontology.ErrBookNameRequired,
		},
		{
			name:        "negative price",
			params:      ontology.BookParams{Name: "book_x", Price: -1, Quantity: 1},
			expectedErr: ontology.ErrNegativePrice,
		},
		{
			name:        "negative quantity",
			params:      ontology.BookParams{Name: "book_x", Price: 10, Quantity: -1},
			expectedErr: ontology.ErrNegativeQuantity,
		},
		{
			name: "negative restock threshold",
			params: ontology.BookParams{
				Name:             "book_x",
				Price:            10,
				Quantity:         1,
				RestockThreshold: ontology.Some(-1),
			},
			expectedErr: ontology.ErrNegativeThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := ontology.NewStore()

			_, err := store.AddBook(tt.params)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, store.Books())
		})
	}
}

func Test_Store_EntityNamesAreUniqueAcrossKinds(t *testing.T) {
	// arrange
	store := ontology.NewStore()

	_, err := store.AddBook(ontology.BookParams{Name: "shared_name", Price: 10})
	require.NoError(t, err)

	// act + assert
	_, err = store.AddBook(ontology.BookParams{Name: "shared_name", Price: 10})
	assert.ErrorIs(t, err, ontology.ErrDuplicateEntityName)

	_, err = store.AddCustomer("shared_name", ontology.None[string]())
	assert.ErrorIs(t, err, ontology.ErrDuplicateEntityName)

	_, err = store.AddEmployee("shared_name", ontology.None[string](), ontology.None[int]())
	assert.ErrorIs(t, err, ontology.ErrDuplicateEntityName)
}

func Test_Store_Enumerations_PreserveInsertionOrder(t *testing.T) {
	// arrange
	store := ontology.NewStore()
	names := []string{"book_c", "book_a", "book_b"}

	for _, name := range names {
		_, err := store.AddBook(ontology.BookParams{Name: name, Price: 10})
		require.NoError(t, err)
	}

	// act
	books := store.Books()

	// assert
	require.Len(t, books, 3)
	for i, name := range names {
		assert.Equal(t, name, books[i].Name)
	}
}

func Test_Store_Lookups(t *testing.T) {
	// arrange
	store := ontology.NewStore()

	book, err := store.AddBook(ontology.BookParams{Name: "book_go", Price: 10})
	require.NoError(t, err)

	customer, err := store.AddCustomer("customer_carol", ontology.None[string]())
	require.NoError(t, err)

	// act + assert
	byID, found := store.BookByID(book.ID)
	require.True(t, found)
	assert.Same(t, book, byID)

	byName, found := store.BookByName("book_go")
	require.True(t, found)
	assert.Same(t, book, byName)

	_, found = store.BookByName("book_unknown")
	assert.False(t, found)

	customerByID, found := store.CustomerByID(customer.ID)
	require.True(t, found)
	assert.Same(t, customer, customerByID)

	_, found = store.BookByID(uuid.New())
	assert.False(t, found)
}

func Test_Store_AttachInventory(t *testing.T) {
	// arrange
	store := ontology.NewStore()

	book, err := store.AddBook(ontology.BookParams{Name: "book_go", Price: 10, Quantity: 4})
	require.NoError(t, err)

	// act
	inventory, err := store.AttachInventory(book.ID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 4, inventory.CurrentQuantity)

	attached, found := store.InventoryFor(book.ID)
	require.True(t, found)
	assert.Same(t, inventory, attached)

	// exactly one ledger per book
	_, err = store.AttachInventory(book.ID)
	assert.ErrorIs(t, err, ontology.ErrInventoryAlreadyAttached)

	_, err = store.AttachInventory(uuid.New())
	assert.ErrorIs(t, err, ontology.ErrUnknownBook)
}

func Test_Store_RecordOrder(t *testing.T) {
	// arrange
	store := ontology.NewStore()
	placedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	valid := ontology.BuildOrder(uuid.New(), uuid.New(), 1, 12.5, placedAt)
	invalid := ontology.BuildOrder(uuid.New(), uuid.New(), 0, 12.5, placedAt)

	// act + assert
	require.NoError(t, store.RecordOrder(valid))
	assert.ErrorIs(t, store.RecordOrder(invalid), ontology.ErrInvalidOrderQuantity)

	orders := store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, valid.ID, orders[0].ID)
}

func Test_Store_Orders_ReturnsACopy(t *testing.T) {
	store := ontology.NewStore()
	order := ontology.BuildOrder(uuid.New(), uuid.New(), 1, 10, time.Now())
	require.NoError(t, store.RecordOrder(order))

	copied := store.Orders()
	copied[0].Quantity = 99

	assert.Equal(t, 1, store.Orders()[0].Quantity)
}
