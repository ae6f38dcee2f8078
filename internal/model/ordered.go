package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// marshalOrdered encodes keys and values as a JSON object preserving key order.
// HTML characters are not escaped so that values read the same as in the catalog.
func marshalOrdered(keys []string, values []any) ([]byte, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("ordered object: %d keys for %d values", len(keys), len(values))
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encodeNoEscape(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := encodeNoEscape(values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unmarshalOrdered walks a JSON object in document order, calling fn per member.
func unmarshalOrdered(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("ordered object: expected '{'")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ordered object: unexpected key token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// encodeNoEscape marshals v without HTML escaping and without a trailing newline.
func encodeNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
