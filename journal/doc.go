// Package journal provides a durable, SQL-backed append-only journal for
// simulation events. It is an optional event sink: the simulation is fully
// functional without it, and journal failures never abort a tick.
//
// The journal speaks three database flavors through a small adapter layer:
// pgxpool, sqlx, and database/sql. The database/sql path serves both
// lib/pq (PostgreSQL) and modernc sqlite, which also makes the journal
// testable without a running server.
package journal
