package record

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is a JSON object that preserves the key order of the input. The
// rendering contracts make key order observable, so a plain map is not
// enough.
//
// Values are stored as nil, bool, json.Number, string, []any or *Fields.
// Numbers stay json.Number so they display exactly as they appeared in the
// input.
type Fields struct {
	om *orderedmap.OrderedMap[string, any]
}

func NewFields() *Fields {
	return &Fields{om: orderedmap.New[string, any]()}
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return f.om.Len()
}

// Keys returns the field names in first-appearance order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, 0, f.om.Len())
	for pair := f.om.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func (f *Fields) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	return f.om.Get(key)
}

func (f *Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Set appends the key on first use and overwrites the value on repeats, so a
// duplicate key in the input keeps its original position.
func (f *Fields) Set(key string, v any) {
	if f.om == nil {
		f.om = orderedmap.New[string, any]()
	}
	f.om.Set(key, v)
}

func (f *Fields) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return errors.New("not a JSON object")
	}

	parsed, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// MarshalJSON re-serializes the object compactly, in insertion order,
// without HTML escaping.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := f.om.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := marshalCompact(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := marshalCompact(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject reads the members of an object whose '{' token has already
// been consumed.
func decodeObject(dec *json.Decoder) (*Fields, error) {
	out := NewFields()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("object key is not a string: %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}
	// consume '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	out := []any{}
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	// consume ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, errors.Errorf("unexpected delimiter %q", t.String())
		}
	default:
		// string, json.Number, bool or nil
		return tok, nil
	}
}

// ParseValue decodes arbitrary JSON text into the value shapes used by the
// renderers, objects becoming *Fields.
func ParseValue(raw string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	return decodeValue(dec)
}

// CompactJSON is the canonical single-line JSON text of a value. Strings
// come back quoted; use it where the display contract asks for the JSON
// form.
func CompactJSON(v any) string {
	b, err := marshalCompact(v)
	if err != nil {
		return "undefined"
	}
	return string(b)
}

func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
