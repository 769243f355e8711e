package portguide

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fact is a single labelled value.
type Fact struct {
	Key   string
	Value string
}

// Facts is a string mapping that keeps keys in first-insertion order. It
// encodes as a JSON object.
type Facts []Fact

// Set assigns value to key. An existing key keeps its position.
func (f *Facts) Set(key, value string) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Fact{Key: key, Value: value})
}

// Get returns the value stored for key.
func (f Facts) Get(key string) (string, bool) {
	for _, e := range f {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the facts as an object in insertion order.
func (f Facts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, preserving the order keys appear in.
func (f *Facts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = Facts{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("facts: expected object, got %v", tok)
	}
	out := Facts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("facts: expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("facts: value for %q: %w", key, err)
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}
