// Package api exposes the deck operations over HTTP. Handlers decode and
// validate JSON requests, call service.DeckService for the authenticated user,
// and translate service and domain errors into status codes and safe messages
// (see errors.go). Routing and middleware are assembled in cmd/server.
package api
