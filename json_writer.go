package costbasis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// jsonObjectWriter builds a JSON object with a fixed field order, so that the
// same figures always marshal to the same bytes. Its zero value is ready to
// use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a key and its value marshaled with json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	fmt.Fprintf(w, "%q:", key)
	w.Write(valBytes)
	w.WriteByte(',')
	return w
}

// Optional appends the key only if value is not its type's zero value.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// Time appends t as a UTC RFC 3339 timestamp, or nothing if t is zero.
func (w *jsonObjectWriter) Time(key string, t time.Time) *jsonObjectWriter {
	if t.IsZero() {
		return w
	}
	return w.Append(key, t.UTC().Format(time.RFC3339))
}

// MarshalJSON wraps the fields in braces.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	return append(final, '}'), nil
}

// nonNil makes empty lists marshal as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
