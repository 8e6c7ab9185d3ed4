// Package database opens the recipe store and owns its schema.
//
// Two drivers are supported behind one *DB:
//
//	sqlite    mattn/go-sqlite3, WAL journal, foreign keys on, single writer
//	postgres  jackc/pgx through database/sql
//
// Repositories write queries with '?' placeholders; DB and Tx rewrite them to
// $n for PostgreSQL. Multi-statement changes go through WithTx so a failure
// leaves nothing half-written.
//
// Migrations are embedded SQL files applied with goose; each dialect has its
// own directory under migrations/.
package database
