package simulation

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/bookwerk/bookstore-mas/events"
	"github.com/bookwerk/bookstore-mas/ontology"
)

var ErrNilStore = errors.New("nil ontology store supplied")
var ErrNegativeRestockThreshold = errors.New("restock threshold must not be negative")
var ErrNegativeRestockAmount = errors.New("restock amount must not be negative")

// EventSink receives every event appended to the model's log, e.g. for a
// durable journal. Sink failures are logged and never abort a turn.
type EventSink interface {
	Record(ctx context.Context, event events.DomainEvent) error
}

// LowStockReporter derives the set of books currently below their effective
// threshold; used for the optional end-of-run classification.
type LowStockReporter interface {
	LowStock(ctx context.Context) ([]*ontology.Book, error)
}

// Option defines a functional option for configuring a Model.
type Option func(*Model) error

// WithRestockThreshold sets the model-wide low-stock cutoff.
func WithRestockThreshold(threshold int) Option {
	return func(m *Model) error {
		if threshold < 0 {
			return ErrNegativeRestockThreshold
		}

		m.restockThreshold = threshold

		return nil
	}
}

// WithRestockAmount sets the default per-restock increment for employees
// without an own configured amount.
func WithRestockAmount(amount int) Option {
	return func(m *Model) error {
		if amount < 0 {
			return ErrNegativeRestockAmount
		}

		m.restockAmount = amount

		return nil
	}
}

// WithRandSource injects the random source used for scheduler shuffles and
// customer book selection. Inject a seeded source for deterministic tests.
func WithRandSource(rng *rand.Rand) Option {
	return func(m *Model) error {
		m.rng = rng
		return nil
	}
}

// WithLogger sets the logger for the model and its scheduler.
func WithLogger(logger Logger) Option {
	return func(m *Model) error {
		m.logger = logger
		return nil
	}
}

// WithClock injects the time source used for order and event timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Model) error {
		m.now = now
		return nil
	}
}

// WithEventSink attaches an external sink receiving every appended event.
func WithEventSink(sink EventSink) Option {
	return func(m *Model) error {
		m.sinks = append(m.sinks, sink)
		return nil
	}
}

// WithLowStockReporter attaches the classifier consulted at the end of Run.
func WithLowStockReporter(reporter LowStockReporter) Option {
	return func(m *Model) error {
		m.reporter = reporter
		return nil
	}
}

// Model orchestrates the simulation: it owns the shared store, the message
// bus, the scheduler, the restock configuration, the clock, and the
// append-only event log consumed by presentation layers.
//
// One Step is one full scheduler sweep followed by a clock increment. All
// mutations are permanent; there is no rollback.
type Model struct {
	store            *ontology.Store
	bus              *MessageBus
	scheduler        *Scheduler
	rng              *rand.Rand
	now              func() time.Time
	logger           Logger
	restockThreshold int
	restockAmount    int
	currentStep      uint64
	eventLog         events.DomainEvents
	sinks            []EventSink
	reporter         LowStockReporter
}

// NewModel creates a model over the given store and registers one item
// agent per book, one customer agent per customer, and one employee agent
// per employee.
func NewModel(store *ontology.Store, options ...Option) (*Model, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	m := &Model{
		store:            store,
		bus:              NewMessageBus(),
		now:              time.Now,
		logger:           NopLogger{},
		restockThreshold: DefaultRestockThreshold,
		restockAmount:    DefaultRestockAmount,
	}

	for _, option := range options {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // weak random OK for simulation
	}

	m.scheduler = NewScheduler(m.rng, m.logger)

	for _, book := range store.Books() {
		m.scheduler.Register(NewItemAgent(book))
	}

	for _, customer := range store.Customers() {
		m.scheduler.Register(NewCustomerAgent(customer, m.rng))
	}

	for _, employee := range store.Employees() {
		m.scheduler.Register(NewEmployeeAgent(employee, m.restockAmount))
	}

	return m, nil
}

// Store returns the shared knowledge-base store.
func (m *Model) Store() *ontology.Store {
	return m.store
}

// Bus returns the shared message bus.
func (m *Model) Bus() *MessageBus {
	return m.bus
}

// Scheduler returns the agent scheduler.
func (m *Model) Scheduler() *Scheduler {
	return m.scheduler
}

// Logger returns the model's logger.
func (m *Model) Logger() Logger {
	return m.logger
}

// RestockThreshold returns the model-wide low-stock cutoff.
func (m *Model) RestockThreshold() int {
	return m.restockThreshold
}

// RestockAmount returns the default per-restock increment.
func (m *Model) RestockAmount() int {
	return m.restockAmount
}

// CurrentStep returns the monotonically increasing step counter.
func (m *Model) CurrentStep() uint64 {
	return m.currentStep
}

// AddBook adds a book to the store mid-run and schedules it for selection
// from the next tick on.
func (m *Model) AddBook(params ontology.BookParams) (*ontology.Book, error) {
	book, err := m.store.AddBook(params)
	if err != nil {
		return nil, err
	}

	m.scheduler.Register(NewItemAgent(book))

	return book, nil
}

// ScheduledBooks returns the books carried by currently scheduled item
// agents, in registration order.
func (m *Model) ScheduledBooks() []*ontology.Book {
	var books []*ontology.Book

	for _, agent := range m.scheduler.Agents() {
		if item, ok := agent.(*ItemAgent); ok {
			books = append(books, item.Book())
		}
	}

	return books
}

// Step runs one tick: a full scheduler sweep, then a clock increment.
// The tick as a whole always completes; per-agent failures are contained.
func (m *Model) Step(ctx context.Context) {
	m.scheduler.Step(ctx, m)
	m.currentStep++
}

// Run executes Step n times with before/after inventory reporting and,
// when a reporter is attached, an end-of-run low-stock classification.
func (m *Model) Run(ctx context.Context, steps int) error {
	m.logInventory("initial inventory")

	for i := 0; i < steps; i++ {
		m.logger.Info("simulation step", "step", m.currentStep+1)
		m.Step(ctx)
	}

	m.logInventory("final inventory")

	if m.reporter != nil {
		lowStock, err := m.reporter.LowStock(ctx)
		if err != nil {
			return err
		}

		for _, book := range lowStock {
			m.logger.Info("book needs attention",
				"book", book.DisplayTitle(),
				"quantity", book.AvailableQuantity,
				"threshold", book.EffectiveThreshold(m.restockThreshold))
		}
	}

	return nil
}

// Events returns the full event log in append order.
func (m *Model) Events() events.DomainEvents {
	log := make(events.DomainEvents, len(m.eventLog))
	copy(log, m.eventLog)

	return log
}

// EventsSince returns the events appended after the first n, supporting
// incremental polling by consumers that remember their offset.
func (m *Model) EventsSince(n int) events.DomainEvents {
	if n >= len(m.eventLog) {
		return nil
	}

	if n < 0 {
		n = 0
	}

	tail := make(events.DomainEvents, len(m.eventLog)-n)
	copy(tail, m.eventLog[n:])

	return tail
}

// appendEvent appends to the log and forwards to the attached sinks.
func (m *Model) appendEvent(ctx context.Context, event events.DomainEvent) {
	m.eventLog = append(m.eventLog, event)

	for _, sink := range m.sinks {
		if err := sink.Record(ctx, event); err != nil {
			m.logger.Warn("event sink failed", "event_type", event.IsEventType(), "error", err.Error())
		}
	}
}

func (m *Model) logInventory(msg string) {
	for _, book := range m.store.Books() {
		m.logger.Info(msg, "book", book.DisplayTitle(), "quantity", book.AvailableQuantity)
	}
}
