// Package generation turns a deck request into flashcard drafts. It builds the
// prompt for a deck type, defines the Completer boundary that hosted language
// models (Groq, Gemini) are adapted to, and parses the model's free-text reply
// into validated, sanitized drafts.
//
// Nothing in this package performs I/O except through a Completer.
package generation
