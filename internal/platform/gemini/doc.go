// Package gemini adapts Google's Gemini API (google.golang.org/genai) to the
// generation.Completer interface.
package gemini
