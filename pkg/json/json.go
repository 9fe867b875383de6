// Package json provides JSON serialization backed by pooled buffers.
// Encoding goes through bytes.Buffer instances rented from the process-wide
// pool, so steady-state marshalling does not allocate fresh buffers.
package json

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/repool/repool/pkg/errors"
	"github.com/repool/repool/pkg/pool"
)

// Marshal encodes v, staging the output in a pooled buffer. The returned
// slice is owned by the caller.
func Marshal(v interface{}) ([]byte, error) {
	r := pool.SharedRent[bytes.Buffer]()
	defer r.Release()

	enc := gojson.NewEncoder(r.Value())
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeSerialization, "json encode failed")
	}

	// Encode appends a trailing newline; drop it.
	out := r.Value().Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	owned := make([]byte, len(out))
	copy(owned, out)
	return owned, nil
}

// MarshalIndent encodes v with indentation for human-facing output.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	out, err := gojson.MarshalIndent(v, prefix, indent)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeSerialization, "json encode failed")
	}
	return out, nil
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v interface{}) error {
	if err := gojson.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeSerialization, "json decode failed")
	}
	return nil
}

// Encode writes v to w through a pooled staging buffer, so a slow writer
// never blocks mid-encode.
func Encode(w io.Writer, v interface{}) error {
	r := pool.SharedRent[bytes.Buffer]()
	defer r.Release()

	enc := gojson.NewEncoder(r.Value())
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeSerialization, "json encode failed")
	}
	if _, err := w.Write(r.Value().Bytes()); err != nil {
		return errors.Wrap(err, errors.ErrorTypeSerialization, "json write failed")
	}
	return nil
}

// Decode reads one value from r into v.
func Decode(r io.Reader, v interface{}) error {
	if err := gojson.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrap(err, errors.ErrorTypeSerialization, "json decode failed")
	}
	return nil
}
