package uber

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value any
}

// Query is an ordered list of query parameters. Encode keeps insertion order.
type Query []Param

// Add appends key=value, even if key is already present.
func (q Query) Add(key string, value any) Query {
	return append(q, Param{Key: key, Value: value})
}

// Set replaces the value of an existing key in place, or appends it.
func (q Query) Set(key string, value any) Query {
	for i := range q {
		if q[i].Key == key {
			q[i].Value = value
			return q
		}
	}
	return q.Add(key, value)
}

// Get returns the first value stored under key.
func (q Query) Get(key string) (any, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Keys returns the parameter keys in order.
func (q Query) Keys() []string {
	keys := make([]string, len(q))
	for i, p := range q {
		keys[i] = p.Key
	}
	return keys
}

// Encode renders the query as application/x-www-form-urlencoded (space as '+').
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(formatValue(p.Value)))
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return cast.ToString(val)
	}
}
