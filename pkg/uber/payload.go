package uber

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Payload is a parsed response body. The client does not validate its shape:
// Value holds whatever encoding/json produced (map[string]any, []any, string,
// float64, bool or nil) and Decode maps the raw bytes onto a typed struct.
type Payload struct {
	raw   []byte
	value any
}

// parsePayload never fails. A body that is empty or not valid JSON yields a
// nil value; the raw bytes are kept either way.
func parsePayload(body []byte) *Payload {
	p := &Payload{raw: body}
	if len(bytes.TrimSpace(body)) == 0 {
		return p
	}
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		p.value = v
	}
	return p
}

// Value returns the generic parsed body.
func (p *Payload) Value() any {
	if p == nil {
		return nil
	}
	return p.value
}

// Raw returns the body exactly as received.
func (p *Payload) Raw() []byte {
	if p == nil {
		return nil
	}
	return p.raw
}

// IsNull reports whether the body parsed to JSON null (or did not parse).
func (p *Payload) IsNull() bool {
	return p.Value() == nil
}

// Object returns the body as a JSON object, if it is one.
func (p *Payload) Object() (map[string]any, bool) {
	m, ok := p.Value().(map[string]any)
	return m, ok
}

// Decode unmarshals the raw body into v.
func (p *Payload) Decode(v any) error {
	if p == nil || len(bytes.TrimSpace(p.raw)) == 0 {
		return errors.New("decode payload: empty body")
	}
	return json.Unmarshal(p.raw, v)
}

// MarshalJSON re-emits the parsed value so payloads can be embedded in other documents.
func (p *Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value())
}
