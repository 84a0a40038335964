// Package classifier derives the set of books currently below their
// effective restock threshold, either through a pluggable rule-inference
// engine or through a local numeric fallback that is always available.
package classifier

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookwerk/bookstore-mas/ontology"
)

var ErrEngineUnavailable = errors.New("inference engine is unavailable")

// Logger interface for fallback notices. Kept dependency-free so any
// structured logging backend can be plugged in.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// InferenceEngine is the optional preferred classification path. Probe is
// an explicit capability check: the fallback decision is an ordinary
// branch, not exception-driven control flow.
type InferenceEngine interface {
	// Probe reports whether the engine can be used right now.
	Probe(ctx context.Context) error
	// InferLowStock returns the IDs of books classified as low-stock.
	InferLowStock(ctx context.Context, books []*ontology.Book, defaultThreshold int) ([]uuid.UUID, error)
}

// Option defines a functional option for configuring a Classifier.
type Option func(*Classifier)

// WithEngine attaches the preferred rule-inference engine.
func WithEngine(engine InferenceEngine) Option {
	return func(c *Classifier) {
		c.engine = engine
	}
}

// WithLogger sets the logger used for fallback notices.
func WithLogger(logger Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// Classifier reports the books needing attention. Engine absence or failure
// is non-fatal: classification always succeeds via the numeric fallback.
type Classifier struct {
	store            *ontology.Store
	defaultThreshold int
	engine           InferenceEngine
	logger           Logger
}

// New creates a classifier over the given store.
func New(store *ontology.Store, defaultThreshold int, options ...Option) *Classifier {
	c := &Classifier{
		store:            store,
		defaultThreshold: defaultThreshold,
		logger:           nopLogger{},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// LowStock returns all books below their effective threshold, in store
// order. The engine is consulted when its probe succeeds; any engine
// failure falls back to the numeric comparison and never propagates.
func (c *Classifier) LowStock(ctx context.Context) ([]*ontology.Book, error) {
	books := c.store.Books()

	if c.engine != nil {
		if probeErr := c.engine.Probe(ctx); probeErr == nil {
			classified, err := c.engine.InferLowStock(ctx, books, c.defaultThreshold)
			if err == nil {
				return c.resolve(books, classified), nil
			}

			c.logger.Warn("inference engine failed, using numeric fallback", "error", err.Error())
		} else {
			c.logger.Debug("inference engine unavailable, using numeric fallback")
		}
	}

	return c.fallback(books), nil
}

// fallback is the always-available numeric path: a book is low-stock iff
// its available quantity is strictly below its effective threshold.
func (c *Classifier) fallback(books []*ontology.Book) []*ontology.Book {
	var lowStock []*ontology.Book

	for _, book := range books {
		if book.AvailableQuantity < book.EffectiveThreshold(c.defaultThreshold) {
			lowStock = append(lowStock, book)
		}
	}

	return lowStock
}

// resolve maps classified IDs back to books, preserving store order.
func (c *Classifier) resolve(books []*ontology.Book, classified []uuid.UUID) []*ontology.Book {
	classifiedSet := make(map[uuid.UUID]struct{}, len(classified))
	for _, id := range classified {
		classifiedSet[id] = struct{}{}
	}

	var lowStock []*ontology.Book

	for _, book := range books {
		if _, isLow := classifiedSet[book.ID]; isLow {
			lowStock = append(lowStock, book)
		}
	}

	return lowStock
}
