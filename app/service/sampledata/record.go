package sampledata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single named value inside a Record.
type Field struct {
	Key   string
	Value any
}

// Record is one per-period entry of a dataset. Unlike a plain map it keeps
// its field order through JSON round trips, which chart series derivation
// relies on.
type Record struct {
	fields []Field
}

func NewRecord(fields ...Field) Record {
	return Record{fields: fields}
}

func (r Record) Fields() []Field {
	return r.fields
}

func (r Record) Get(key string) (any, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", f.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value for %q: %w", f.Key, err)
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record is not a JSON object")
	}

	r.fields = nil

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read record key: %w", err)
		}
		key := keyTok.(string)

		value, err := decodeValue(dec)
		if err != nil {
			return fmt.Errorf("read record value for %q: %w", key, err)
		}

		r.fields = append(r.fields, Field{Key: key, Value: value})
	}

	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read record end: %w", err)
	}

	return nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '[':
		var items []any
		for dec.More() {
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		items := make(map[string]any)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			items[keyTok.(string)] = value
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// NumericValue reports whether a record value is chartable and returns it as
// a float64.
func NumericValue(v any) (float64, bool) {
	switch value := v.(type) {
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case float64:
		return value, true
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
