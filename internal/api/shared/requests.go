package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds JSON request bodies.
const MaxRequestBodyBytes = 64 << 10

// ErrInvalidJSON is returned by DecodeJSON for bodies that are not a single JSON value.
var ErrInvalidJSON = errors.New("invalid JSON request body")

// DecodeJSON decodes the request body into the given struct.
// Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON value", ErrInvalidJSON)
	}
	return nil
}
