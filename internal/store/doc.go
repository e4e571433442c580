// Package store defines the persistence contracts for users, decks and cards.
// Implementations live in internal/platform/postgres; services depend only on
// the interfaces here and on RunInTransaction for atomic multi-row writes.
package store
