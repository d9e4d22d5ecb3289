package alere

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a key-value pair to the JSON object.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	k, err := json.Marshal(key)
	if err != nil {
		w.err = fmt.Errorf("invalid key %q: %w", key, err)
		return w
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal %q: %w", key, err)
		return w
	}
	w.Write(k)
	w.WriteString(":")
	w.Write(v)
	w.WriteString(",")
	return w
}

// Optional adds a key-value pair only if the value is not its zero value.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if value == nil || reflect.ValueOf(value).IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON closes the object and returns it.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	b := bytes.TrimSuffix(w.Bytes(), []byte(","))
	out := make([]byte, 0, len(b)+2)
	out = append(out, '{')
	out = append(out, b...)
	out = append(out, '}')
	return out, nil
}
