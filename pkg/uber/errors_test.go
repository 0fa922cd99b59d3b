package uber

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewAPIErrorWithoutBody(t *testing.T) {
	for _, parsed := range []any{nil, []any{"x"}, "oops", float64(1), true} {
		e := NewAPIError(503, parsed)
		if e.HTTPCode() != 503 {
			t.Fatalf("%#v: HTTPCode = %d", parsed, e.HTTPCode())
		}
		if _, ok := e.ErrorCode(); ok {
			t.Fatalf("%#v: ErrorCode should be unset", parsed)
		}
		if _, ok := e.ErrorMessage(); ok {
			t.Fatalf("%#v: ErrorMessage should be unset", parsed)
		}
		if _, ok := e.Fields(); ok {
			t.Fatalf("%#v: Fields should be unset", parsed)
		}
	}
}

func TestNewAPIErrorPartialBody(t *testing.T) {
	e := NewAPIError(422, map[string]any{"message": "Invalid request"})

	if msg, ok := e.ErrorMessage(); !ok || msg != "Invalid request" {
		t.Fatalf("ErrorMessage = %q, %v", msg, ok)
	}
	if _, ok := e.ErrorCode(); ok {
		t.Fatalf("ErrorCode should be unset")
	}
	if _, ok := e.Fields(); ok {
		t.Fatalf("Fields should be unset")
	}
}

func TestNewAPIErrorDistinguishesNullFieldsFromAbsent(t *testing.T) {
	e := NewAPIError(422, map[string]any{"code": "validation_failed", "fields": nil})

	fields, ok := e.Fields()
	if !ok {
		t.Fatalf("Fields should be set when the key is present")
	}
	if fields != nil {
		t.Fatalf("Fields = %#v, want nil", fields)
	}
}

func TestNewAPIErrorIgnoresNullAndNestedCodes(t *testing.T) {
	e := NewAPIError(400, map[string]any{"code": nil, "message": map[string]any{"nested": true}})

	if _, ok := e.ErrorCode(); ok {
		t.Fatalf("null code should leave ErrorCode unset")
	}
	if _, ok := e.ErrorMessage(); ok {
		t.Fatalf("object message should leave ErrorMessage unset")
	}
}

func TestNewAPIErrorStringifiesScalarCodes(t *testing.T) {
	e := NewAPIError(400, map[string]any{"code": float64(42)})

	if code, ok := e.ErrorCode(); !ok || code != "42" {
		t.Fatalf("ErrorCode = %q, %v", code, ok)
	}
}

func TestAPIErrorMessageAndWrapping(t *testing.T) {
	e := NewAPIError(401, map[string]any{"code": "unauthorized", "message": "Invalid OAuth 2.0 credentials provided."})

	if got := e.Error(); got != "uber api error: http 401 unauthorized: Invalid OAuth 2.0 credentials provided." {
		t.Fatalf("Error() = %q", got)
	}
	if got := NewAPIError(500, nil).Error(); got != "uber api error: http 500" {
		t.Fatalf("Error() = %q", got)
	}

	wrapped := fmt.Errorf("fetch target: %w", e)
	if !errors.Is(wrapped, ErrAPI) {
		t.Fatalf("wrapped error should match ErrAPI")
	}
	got, ok := AsAPIError(wrapped)
	if !ok || got != e {
		t.Fatalf("AsAPIError did not unwrap")
	}
	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Fatalf("plain error should not be an APIError")
	}
	if !strings.Contains(wrapped.Error(), "unauthorized") {
		t.Fatalf("wrapped message lost code: %s", wrapped)
	}
}
