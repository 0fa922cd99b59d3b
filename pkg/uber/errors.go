package uber

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// ErrAPI matches every *APIError with errors.Is.
var ErrAPI = errors.New("uber api error")

// APIError is returned when the API answers with a status other than 200.
// See https://developer.uber.com/docs/api-reference#section-errors.
type APIError struct {
	httpCode int

	code    string
	hasCode bool

	message    string
	hasMessage bool

	fields    any
	hasFields bool
}

// NewAPIError maps an HTTP status and a parsed error body to an *APIError.
// It accepts any parsed value: keys that are missing, null or of an
// unusable type simply leave the corresponding field unset.
func NewAPIError(httpCode int, parsed any) *APIError {
	e := &APIError{httpCode: httpCode}

	body, ok := parsed.(map[string]any)
	if !ok {
		return e
	}
	e.code, e.hasCode = scalarString(body["code"])
	e.message, e.hasMessage = scalarString(body["message"])
	if fields, ok := body["fields"]; ok {
		e.fields = fields
		e.hasFields = true
	}
	return e
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case map[string]any, []any:
		return "", false
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			return "", false
		}
		return s, true
	}
}

// HTTPCode is the status that triggered the error.
func (e *APIError) HTTPCode() int { return e.httpCode }

// ErrorCode is the provider error code, e.g. "unauthorized".
func (e *APIError) ErrorCode() (string, bool) { return e.code, e.hasCode }

// ErrorMessage is the human readable provider message.
func (e *APIError) ErrorMessage() (string, bool) { return e.message, e.hasMessage }

// Fields holds field-level validation detail. ok is false when the provider
// sent no "fields" key at all; a present null yields (nil, true).
func (e *APIError) Fields() (any, bool) { return e.fields, e.hasFields }

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "uber api error: http %d", e.httpCode)
	if e.hasCode {
		fmt.Fprintf(&b, " %s", e.code)
	}
	if e.hasMessage {
		fmt.Fprintf(&b, ": %s", e.message)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrAPI) true for any *APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI
}

// AsAPIError unwraps err to an *APIError, if it carries one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
