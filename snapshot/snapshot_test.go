package snapshot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwerk/bookstore-mas/ontology"
	"github.com/bookwerk/bookstore-mas/snapshot"
)

// givenPopulatedStore builds a world with purchases and orders already made.
func givenPopulatedStore(t *testing.T) *ontology.Store {
	t.Helper()

	store := ontology.NewStore()
	require.NoError(t, ontology.CreateSampleData(store))

	book, found := store.BookByName("book_python")
	require.True(t, found)

	customer := store.Customers()[0]
	customer.RecordPurchase(book.ID)

	order := ontology.BuildOrder(customer.ID, book.ID, 1, book.Price, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.RecordOrder(order))

	return store
}

func Test_Snapshot_JSONRoundTrip_PreservesTheWorld(t *testing.T) {
	// arrange
	original := givenPopulatedStore(t)

	// act
	encoded, err := snapshot.EncodeJSON(snapshot.Export(original))
	require.NoError(t, err)

	restored, err := snapshot.LoadJSON(encoded)
	require.NoError(t, err)

	// assert
	require.Len(t, restored.Books(), len(original.Books()))
	for i, book := range original.Books() {
		restoredBook := restored.Books()[i]
		assert.Equal(t, book.Name, restoredBook.Name)
		assert.Equal(t, book.Title, restoredBook.Title)
		assert.Equal(t, book.Genre, restoredBook.Genre)
		assert.InDelta(t, book.Price, restoredBook.Price, 0.0001)
		assert.Equal(t, book.AvailableQuantity, restoredBook.AvailableQuantity)
	}

	require.Len(t, restored.Customers(), len(original.Customers()))
	restoredCustomer := restored.Customers()[0]
	require.Len(t, restoredCustomer.Purchases, 1)

	purchasedBook, found := restored.BookByID(restoredCustomer.Purchases[0])
	require.True(t, found)
	assert.Equal(t, "book_python", purchasedBook.Name)

	require.Len(t, restored.Orders(), 1)
	restoredOrder := restored.Orders()[0]
	assert.Equal(t, 1, restoredOrder.Quantity)
	assert.InDelta(t, 10.0, restoredOrder.UnitPrice, 0.0001)

	require.Len(t, restored.Employees(), len(original.Employees()))
	assert.Equal(t, "employee_emma", restored.Employees()[0].Name)
}

func Test_Snapshot_Export_ResolvesReferencesToStableNames(t *testing.T) {
	store := givenPopulatedStore(t)

	snap := snapshot.Export(store)

	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "book_python", snap.Orders[0].Book)
	assert.Equal(t, "customer_alice", snap.Orders[0].Customer)
	assert.Equal(t, []string{"book_python"}, snap.Customers[0].Purchases)
}

func Test_Snapshot_BuildStore_ValidationAbortsBeforeMutation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(snap *snapshot.Snapshot)
		expectedErr error
	}{
		{
			name: "book without name",
			mutate: func(snap *snapshot.Snapshot) {
				snap.Books = append(snap.Books, snapshot.BookRecord{Price: 10})
			},
			expectedErr: snapshot.ErrMissingBookName,
		},
		{
			name: "customer without name",
			mutate: func(snap *snapshot.Snapshot) {
				snap.Customers = append(snap.Customers, snapshot.CustomerRecord{})
			},
			expectedErr: snapshot.ErrMissingCustomerName,
		},
		{
			name: "employee without name",
			mutate: func(snap *snapshot.Snapshot) {
				snap.Employees = append(snap.Employees, snapshot.EmployeeRecord{})
			},
			expectedErr: snapshot.ErrMissingEmployeeName,
		},
		{
			name: "order referencing unknown book",
			mutate: func(snap *snapshot.Snapshot) {
				snap.Orders = append(snap.Orders, snapshot.OrderRecord{
					Customer: "customer_alice",
					Book:     "book_unknown",
					Quantity: 1,
				})
			},
			expectedErr: snapshot.ErrUnknownOrderBook,
		},
		{
			name: "order referencing unknown customer",
			mutate: func(snap *snapshot.Snapshot) {
				snap.Orders = append(snap.Orders, snapshot.OrderRecord{
					Customer: "customer_unknown",
					Book:     "book_python",
					Quantity: 1,
				})
			},
			expectedErr: snapshot.ErrUnknownOrderCustomer,
		},
		{
			name: "purchase history referencing unknown book",
			mutate: func(snap *snapshot.Snapshot) {
				snap.Customers[0].Purchases = append(snap.Customers[0].Purchases, "book_unknown")
			},
			expectedErr: snapshot.ErrUnknownPurchasedBook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshot.Export(givenPopulatedStore(t))
			tt.mutate(&snap)

			store, err := snapshot.BuildStore(snap)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, store)
		})
	}
}

func Test_Snapshot_LoadJSON_RejectsMalformedInput(t *testing.T) {
	_, err := snapshot.LoadJSON([]byte(`{"books": not-json}`))

	assert.ErrorContains(t, err, "decoding snapshot json failed")
}

func Test_Snapshot_AbsentOptionalsStayAbsentAfterRoundTrip(t *testing.T) {
	// arrange
	store := ontology.NewStore()
	_, err := store.AddBook(ontology.BookParams{Name: "book_plain", Price: 5})
	require.NoError(t, err)

	// act
	encoded, err := snapshot.EncodeJSON(snapshot.Export(store))
	require.NoError(t, err)

	restored, err := snapshot.LoadJSON(encoded)
	require.NoError(t, err)

	// assert
	book := restored.Books()[0]
	assert.False(t, book.Title.IsSet())
	assert.False(t, book.Author.IsSet())
	assert.False(t, book.Genre.IsSet())
	assert.False(t, book.RestockThreshold.IsSet())
}
