package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Response members read by the client. The registry also echoes instanceId and key, which are
// ignored. Member names are matched exactly.
const (
	fieldValue  = "value"
	fieldValues = "values"
)

// envelope is a registry response object keyed by exact member name.
type envelope map[string]json.RawMessage

// field decodes the named member into into, leaving into untouched when the member is absent.
func (e envelope) field(name string, into any) error {
	raw, ok := e[name]
	if !ok {
		return nil
	}
	if err := decodeJSON(raw, into); err != nil {
		return fmt.Errorf("invalid %q field: %w", name, err)
	}
	return nil
}

// setValueRequest is the body of PUT {endpoint}/{key}.
type setValueRequest struct {
	Value string `json:"value"`
}

// decodeJSON decodes exactly one JSON value from data. Numbers are kept as json.Number so large
// integers survive the round trip.
func decodeJSON(data []byte, into any) error {
	if !utf8.Valid(data) {
		return errors.New("response is not valid UTF-8")
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(into); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("failed to parse JSON response: unexpected data after JSON value")
	}
	return nil
}
