// Package sqlite persists the answer history in SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, accessed through jmoiron/sqlx for struct scanning.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files and
// is applied once, inside a transaction that also records its version.
//
// # Data Location
//
// By default, the database is stored at ~/.reportqa/data/history.db.
// Only questions, answers and outcomes are stored; caller-supplied report
// text never is.
package sqlite
