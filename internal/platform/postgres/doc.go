// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It also embeds the goose migrations that
// create the users, decks and cards tables.
//
// Every store accepts a store.DBTX, so the same code runs against a pool or
// inside a transaction obtained from store.RunInTransaction.
package postgres
