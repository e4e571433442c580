// Package groq implements generation.Completer on top of Groq's
// OpenAI-compatible chat completions API.
package groq
