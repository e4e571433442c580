// Package service contains the application use cases: generating a deck from
// a language-learning request, reading and deleting a user's decks, and
// resolving identity-provider subjects to local users.
//
// Services depend on the store interfaces and on generation.Completer, never
// on concrete infrastructure. Expected failures are returned as the sentinel
// errors in errors.go so the API layer can map them with errors.Is; anything
// unexpected is wrapped in a *DeckServiceError that keeps the operation name.
package service
