// Package export provides the deterministic JSON codec and the
// diagnostic SVG renderer pkg/persist and developer tooling use to write
// a GameState or Level to disk.
package export

import (
	"bytes"
	"encoding/json"
)

// MarshalDeterministic encodes v as JSON with two-space indentation.
// encoding/json already sorts any string- or TextMarshaler-keyed map's
// keys before encoding, so this wrapper's only job is to fix the
// indentation and escaping policy consistently across every save site.
func MarshalDeterministic(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unmarshal decodes data into v. Malformed JSON surfaces as a decode
// error rather than a partially-populated value.
func Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	return dec.Decode(v)
}
