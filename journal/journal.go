package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/bookwerk/bookstore-mas/journal/internal/adapters"
)

// Supported SQL dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

const (
	defaultTableName  = "simulation_events"
	colSequenceNumber = "sequence_number"
	colEventType      = "event_type"
	colStep           = "step"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
)

var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyTableName = errors.New("empty journal table name supplied")
var ErrUnsupportedDialect = errors.New("unsupported journal dialect")
var ErrBuildingQueryFailed = errors.New("building query failed")

// Logger interface for SQL logging and error reporting. Kept dependency-free
// so any structured logging backend can be plugged in.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging, enabling automatic
// trace correlation when the backing logger is wired to an OpenTelemetry
// slog bridge. Follows the same dependency-free pattern as Logger.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithTableName sets the journal table name.
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the journal.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithContextualLogger sets the context-aware logger for the journal. When
// both loggers are configured, the contextual one takes precedence.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(j *Journal) error {
		j.contextualLogger = logger
		return nil
	}
}

// Journal is the SQL-backed append-only event journal.
type Journal struct {
	db               adapters.DBAdapter
	dialect          string
	tableName        string
	logger           Logger
	contextualLogger ContextualLogger
}

// NewFromPGXPool creates a Journal on a pgx pool (PostgreSQL dialect).
func NewFromPGXPool(pool *pgxpool.Pool, options ...Option) (Journal, error) {
	if pool == nil {
		return Journal{}, ErrNilDatabaseConnection
	}

	return build(adapters.NewPGXAdapter(pool), DialectPostgres, options...)
}

// NewFromSQLX creates a Journal on an sqlx DB (PostgreSQL dialect).
func NewFromSQLX(db *sqlx.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, ErrNilDatabaseConnection
	}

	return build(adapters.NewSQLXAdapter(db), DialectPostgres, options...)
}

// NewFromSQLDB creates a Journal on a database/sql DB with the given
// dialect: DialectPostgres for lib/pq, DialectSQLite for modernc sqlite.
func NewFromSQLDB(db *sql.DB, dialect string, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, ErrNilDatabaseConnection
	}

	if dialect != DialectPostgres && dialect != DialectSQLite {
		return Journal{}, ErrUnsupportedDialect
	}

	return build(adapters.NewSQLAdapter(db), dialect, options...)
}

func build(db adapters.DBAdapter, dialect string, options ...Option) (Journal, error) {
	j := Journal{
		db:        db,
		dialect:   dialect,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&j); err != nil {
			return Journal{}, err
		}
	}

	return j, nil
}

// EnsureSchema creates the journal table if it does not exist yet.
func (j Journal) EnsureSchema(ctx context.Context) error {
	var ddl string

	switch j.dialect {
	case DialectSQLite:
		ddl = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s INTEGER PRIMARY KEY AUTOINCREMENT,
			%s TEXT NOT NULL,
			%s INTEGER NOT NULL,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL
		)`, j.tableName, colSequenceNumber, colEventType, colStep, colOccurredAt, colPayload)
	default:
		ddl = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s BIGSERIAL PRIMARY KEY,
			%s TEXT NOT NULL,
			%s BIGINT NOT NULL,
			%s TEXT NOT NULL,
			%s TEXT NOT NULL
		)`, j.tableName, colSequenceNumber, colEventType, colStep, colOccurredAt, colPayload)
	}

	if _, err := j.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating journal table failed: %w", err)
	}

	return nil
}

// Append writes one event to the journal.
func (j Journal) Append(ctx context.Context, event StorableEvent) error {
	insertStmt := goqu.Dialect(j.dialect).
		Insert(j.tableName).
		Cols(colEventType, colStep, colOccurredAt, colPayload).
		Vals(goqu.Vals{
			event.EventType,
			int64(event.Step), //nolint:gosec // step counts stay far below int64 range
			event.OccurredAt.Format(time.RFC3339Nano),
			string(event.PayloadJSON),
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		j.logError(ctx, "failed to build insert query", "error", toSQLErr.Error(), "event_type", event.EventType)
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := j.db.Exec(ctx, sqlQuery); execErr != nil {
		return fmt.Errorf("appending event to journal failed: %w", execErr)
	}

	j.logDebug(ctx, "event appended to journal", "event_type", event.EventType, "step", event.Step)

	return nil
}

// ReadAll returns every journaled event in append order.
func (j Journal) ReadAll(ctx context.Context) (StorableEvents, error) {
	selectStmt := goqu.Dialect(j.dialect).
		From(j.tableName).
		Select(colEventType, colStep, colOccurredAt, colPayload).
		Order(goqu.I(colSequenceNumber).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := j.db.Query(ctx, sqlQuery)
	if queryErr != nil {
		return nil, fmt.Errorf("querying journal failed: %w", queryErr)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			j.logWarn(ctx, "failed to close journal rows", "error", closeErr.Error())
		}
	}()

	var journaled StorableEvents

	for rows.Next() {
		var (
			eventType  string
			step       int64
			occurredAt string
			payload    string
		)

		if scanErr := rows.Scan(&eventType, &step, &occurredAt, &payload); scanErr != nil {
			return nil, fmt.Errorf("scanning journal row failed: %w", scanErr)
		}

		timestamp, parseErr := time.Parse(time.RFC3339Nano, occurredAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing journal timestamp failed: %w", parseErr)
		}

		journaled = append(journaled, StorableEvent{
			EventType:   eventType,
			Step:        uint64(step), //nolint:gosec // step column is never negative
			OccurredAt:  timestamp,
			PayloadJSON: []byte(payload),
		})
	}

	return journaled, nil
}

func (j Journal) logDebug(ctx context.Context, msg string, args ...any) {
	if j.contextualLogger != nil {
		j.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if j.logger != nil {
		j.logger.Debug(msg, args...)
	}
}

func (j Journal) logWarn(ctx context.Context, msg string, args ...any) {
	if j.contextualLogger != nil {
		j.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if j.logger != nil {
		j.logger.Warn(msg, args...)
	}
}

func (j Journal) logError(ctx context.Context, msg string, args ...any) {
	if j.contextualLogger != nil {
		j.contextualLogger.ErrorContext(ctx, msg, args...)
		return
	}

	if j.logger != nil {
		j.logger.Error(msg, args...)
	}
}
