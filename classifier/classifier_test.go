package classifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwerk/bookstore-mas/classifier"
	"github.com/bookwerk/bookstore-mas/ontology"
)

// brokenEngine fails its capability probe.
type brokenEngine struct{}

func (brokenEngine) Probe(_ context.Context) error {
	return classifier.ErrEngineUnavailable
}

func (brokenEngine) InferLowStock(_ context.Context, _ []*ontology.Book, _ int) ([]uuid.UUID, error) {
	panic("must not be called when the probe fails")
}

// flakyEngine probes fine but fails during inference.
type flakyEngine struct{}

func (flakyEngine) Probe(_ context.Context) error {
	return nil
}

func (flakyEngine) InferLowStock(_ context.Context, _ []*ontology.Book, _ int) ([]uuid.UUID, error) {
	return nil, errors.New("inference crashed")
}

// reversingEngine classifies correctly but reports IDs in reverse order.
type reversingEngine struct{}

func (reversingEngine) Probe(_ context.Context) error {
	return nil
}

func (reversingEngine) InferLowStock(_ context.Context, books []*ontology.Book, defaultThreshold int) ([]uuid.UUID, error) {
	var classified []uuid.UUID

	for i := len(books) - 1; i >= 0; i-- {
		if books[i].AvailableQuantity < books[i].EffectiveThreshold(defaultThreshold) {
			classified = append(classified, books[i].ID)
		}
	}

	return classified, nil
}

// givenMixedStore builds a store with books on both sides of the threshold.
// With default threshold 2, book_low (qty 0) and book_edge (qty 1) are
// low-stock while book_high (qty 5) and book_custom (qty 1, own threshold 1)
// are not.
func givenMixedStore(t *testing.T) *ontology.Store {
	t.Helper()

	store := ontology.NewStore()

	books := []ontology.BookParams{
		{Name: "book_low", Price: 10, Quantity: 0},
		{Name: "book_high", Price: 10, Quantity: 5},
		{Name: "book_edge", Price: 10, Quantity: 1},
		{Name: "book_custom", Price: 10, Quantity: 1, RestockThreshold: ontology.Some(1)},
	}

	for _, params := range books {
		_, err := store.AddBook(params)
		require.NoError(t, err)
	}

	return store
}

func bookNames(books []*ontology.Book) []string {
	names := make([]string, 0, len(books))
	for _, book := range books {
		names = append(names, book.Name)
	}

	return names
}

func Test_Classifier_LowStock_NumericFallbackWithoutEngine(t *testing.T) {
	// arrange
	store := givenMixedStore(t)
	subject := classifier.New(store, 2)

	// act
	lowStock, err := subject.LowStock(t.Context())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"book_low", "book_edge"}, bookNames(lowStock))
}

func Test_Classifier_LowStock_EngineAndFallbackAgree(t *testing.T) {
	// arrange
	store := givenMixedStore(t)
	withEngine := classifier.New(store, 2, classifier.WithEngine(classifier.NewThresholdRuleEngine()))
	withoutEngine := classifier.New(store, 2)

	// act
	engineResult, engineErr := withEngine.LowStock(t.Context())
	fallbackResult, fallbackErr := withoutEngine.LowStock(t.Context())

	// assert
	require.NoError(t, engineErr)
	require.NoError(t, fallbackErr)
	assert.Equal(t, bookNames(fallbackResult), bookNames(engineResult))
}

func Test_Classifier_LowStock_FallsBackWhenProbeFails(t *testing.T) {
	// arrange
	store := givenMixedStore(t)
	subject := classifier.New(store, 2, classifier.WithEngine(brokenEngine{}))

	// act
	lowStock, err := subject.LowStock(t.Context())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"book_low", "book_edge"}, bookNames(lowStock))
}

func Test_Classifier_LowStock_FallsBackWhenInferenceFails(t *testing.T) {
	// arrange
	store := givenMixedStore(t)
	subject := classifier.New(store, 2, classifier.WithEngine(flakyEngine{}))

	// act
	lowStock, err := subject.LowStock(t.Context())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"book_low", "book_edge"}, bookNames(lowStock))
}

func Test_Classifier_LowStock_PreservesStoreOrder(t *testing.T) {
	// arrange
	store := givenMixedStore(t)
	subject := classifier.New(store, 2, classifier.WithEngine(reversingEngine{}))

	// act
	lowStock, err := subject.LowStock(t.Context())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"book_low", "book_edge"}, bookNames(lowStock))
}

func Test_Classifier_LowStock_EmptyStoreClassifiesNothing(t *testing.T) {
	subject := classifier.New(ontology.NewStore(), 2)

	lowStock, err := subject.LowStock(t.Context())

	require.NoError(t, err)
	assert.Empty(t, lowStock)
}

func Test_ThresholdRuleEngine_Probe_ReflectsContextState(t *testing.T) {
	engine := classifier.NewThresholdRuleEngine()

	assert.NoError(t, engine.Probe(t.Context()))

	canceled, cancel := context.WithCancel(t.Context())
	cancel()

	assert.Error(t, engine.Probe(canceled))
}
