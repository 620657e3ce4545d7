package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Attributes is an open, ordered mapping from metric names to values.
// Every ruleset exposes its own key set, so the rest of the tool never
// assumes any key beyond "star_rating" being present first.
type Attributes struct {
	keys   []string
	values map[string]float64
}

func NewAttributes() Attributes {
	return Attributes{values: make(map[string]float64)}
}

// Set appends the key on first use and overwrites the value otherwise,
// keeping insertion order stable.
func (attr *Attributes) Set(key string, value float64) {
	if attr.values == nil {
		attr.values = make(map[string]float64)
	}

	if _, ok := attr.values[key]; !ok {
		attr.keys = append(attr.keys, key)
	}

	attr.values[key] = value
}

func (attr Attributes) Get(key string) (float64, bool) {
	value, ok := attr.values[key]
	return value, ok
}

// Keys returns the metric names in insertion order.
func (attr Attributes) Keys() []string {
	keys := make([]string, len(attr.keys))
	copy(keys, attr.keys)

	return keys
}

func (attr Attributes) Len() int {
	return len(attr.keys)
}

// MarshalJSON emits a JSON object preserving insertion order.
func (attr Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range attr.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		buf.Write(name)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(attr.values[key], 'g', -1, 64))
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON restores the map including the original key order, which
// encoding/json alone would throw away.
func (attr *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}

	attr.keys = nil
	attr.values = make(map[string]float64)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attributes: expected string key, got %v", keyTok)
		}

		valueTok, err := dec.Token()
		if err != nil {
			return err
		}

		number, ok := valueTok.(json.Number)
		if !ok {
			return fmt.Errorf("attributes: expected numeric value for %q", key)
		}

		value, err := number.Float64()
		if err != nil {
			return err
		}

		attr.Set(key, value)
	}

	_, err = dec.Token()

	return err
}
