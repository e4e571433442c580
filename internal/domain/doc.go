// Package domain contains the core business entities of the flashcard
// generator: the generation options a user can pick, the validated request
// built from them, and the decks and cards that generation produces.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
