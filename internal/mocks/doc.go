// Package mocks provides shared mock implementations for testing.
//
// Mocks come in two styles. Function-field mocks (MockCompleter,
// MockTokenService) expose an Fn field per method and fall back to simple
// default values when the field is nil. TestifyMockUserStore embeds
// testify's mock.Mock for tests that want call expectations.
//
// Usage:
//
//	import "github.com/phrazzld/lingodeck/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    completer := mocks.NewMockCompleterWithDefaultCards()
//	    tokens := mocks.NewMockTokenServiceForSubject("good-token", "user_123")
//
//	    // Use the mocks in your test...
//	}
//
// Mocks of interfaces declared in internal/service live in that package's
// tests instead, since importing service here would create a cycle.
package mocks
