package uber

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Adda-Baaj/simple-uber/pkg/httpclient"
)

// fakeResponse lets us stub the httpclient.Response interface.
type fakeResponse struct {
	body       []byte
	statusCode int
}

func (f fakeResponse) Body() []byte    { return f.body }
func (f fakeResponse) StatusCode() int { return f.statusCode }

// fakeHTTPClient returns a single canned response and records every call.
type fakeHTTPClient struct {
	resp    fakeResponse
	err     error
	urls    []string
	headers []map[string]string
}

func (f *fakeHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	f.urls = append(f.urls, url)
	f.headers = append(f.headers, headers)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeHTTPClient) lastURL(t *testing.T) string {
	t.Helper()
	if len(f.urls) == 0 {
		t.Fatalf("transport was not called")
	}
	return f.urls[len(f.urls)-1]
}

func newTestClient(status int, body string) (*Client, *fakeHTTPClient) {
	http := &fakeHTTPClient{resp: fakeResponse{statusCode: status, body: []byte(body)}}
	return New(Config{Token: "my_token", HTTPClient: http}), http
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{Token: "t", HTTPClient: &fakeHTTPClient{}})
	if c.URL() != "https://api.uber.com/v1" {
		t.Fatalf("URL = %s", c.URL())
	}

	c = New(Config{Token: "t", Version: "v1.2", BaseURL: SandboxAPI + "/", HTTPClient: &fakeHTTPClient{}})
	if c.URL() != "https://sandbox-api.uber.com/v1.2" {
		t.Fatalf("URL = %s", c.URL())
	}
}

func TestGetWithQuery(t *testing.T) {
	c, http := newTestClient(200, `{"foo": "bar"}`)

	payload, err := c.Get(context.Background(), "/foo", Query{{Key: "a", Value: "b"}})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := http.lastURL(t); got != "https://api.uber.com/v1/foo?a=b" {
		t.Fatalf("url = %s", got)
	}
	if want := map[string]any{"foo": "bar"}; !reflect.DeepEqual(payload.Value(), want) {
		t.Fatalf("payload = %#v", payload.Value())
	}
}

func TestGetWithNoQueryHasNoQuestionMark(t *testing.T) {
	c, http := newTestClient(200, `{"foo": "bar"}`)

	if _, err := c.Get(context.Background(), "/foo", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := c.Get(context.Background(), "/foo", Query{}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	for _, u := range http.urls {
		if u != "https://api.uber.com/v1/foo" {
			t.Fatalf("url = %s", u)
		}
	}
}

func TestGetSendsOnlyAuthorizationHeader(t *testing.T) {
	c, http := newTestClient(200, `{}`)

	if _, err := c.Get(context.Background(), "/foo", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := map[string]string{"Authorization": "Token my_token"}
	if !reflect.DeepEqual(http.headers[0], want) {
		t.Fatalf("headers = %#v", http.headers[0])
	}
}

func TestGetReturnsNonObjectBodiesUnchanged(t *testing.T) {
	cases := map[string]any{
		`null`:     nil,
		`[1,"a"]`:  []any{float64(1), "a"},
		`"text"`:   "text",
		`42`:       float64(42),
		`not json`: nil,
		``:         nil,
	}
	for body, want := range cases {
		c, _ := newTestClient(200, body)
		payload, err := c.Get(context.Background(), "/foo", nil)
		if err != nil {
			t.Fatalf("body %q: unexpected error %v", body, err)
		}
		if payload == nil {
			t.Fatalf("body %q: nil payload", body)
		}
		if !reflect.DeepEqual(payload.Value(), want) {
			t.Fatalf("body %q: value = %#v, want %#v", body, payload.Value(), want)
		}
		if string(payload.Raw()) != body {
			t.Fatalf("body %q: raw = %q", body, payload.Raw())
		}
	}
}

func TestGetWithAPIError(t *testing.T) {
	c, _ := newTestClient(555, `{"message":"Test message","code":"test_code","fields":{"field1":"error1"}}`)

	payload, err := c.Get(context.Background(), "/foo", nil)
	if payload != nil {
		t.Fatalf("expected nil payload, got %#v", payload)
	}
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if msg, ok := apiErr.ErrorMessage(); !ok || msg != "Test message" {
		t.Fatalf("ErrorMessage = %q, %v", msg, ok)
	}
	if code, ok := apiErr.ErrorCode(); !ok || code != "test_code" {
		t.Fatalf("ErrorCode = %q, %v", code, ok)
	}
	fields, ok := apiErr.Fields()
	if !ok || !reflect.DeepEqual(fields, map[string]any{"field1": "error1"}) {
		t.Fatalf("Fields = %#v, %v", fields, ok)
	}
	if apiErr.HTTPCode() != 555 {
		t.Fatalf("HTTPCode = %d", apiErr.HTTPCode())
	}
	if !errors.Is(err, ErrAPI) {
		t.Fatalf("expected errors.Is(err, ErrAPI)")
	}
}

func TestGetWithEmptyErrorBody(t *testing.T) {
	c, _ := newTestClient(500, ``)

	_, err := c.Get(context.Background(), "/foo", nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.HTTPCode() != 500 {
		t.Fatalf("HTTPCode = %d", apiErr.HTTPCode())
	}
	if _, ok := apiErr.ErrorCode(); ok {
		t.Fatalf("ErrorCode should be unset")
	}
	if _, ok := apiErr.ErrorMessage(); ok {
		t.Fatalf("ErrorMessage should be unset")
	}
	if _, ok := apiErr.Fields(); ok {
		t.Fatalf("Fields should be unset")
	}
}

func TestGetTreatsOnlyExactly200AsSuccess(t *testing.T) {
	for _, status := range []int{201, 204, 301, 404} {
		c, _ := newTestClient(status, `{"foo":"bar"}`)
		_, err := c.Get(context.Background(), "/foo", nil)
		apiErr, ok := AsAPIError(err)
		if !ok || apiErr.HTTPCode() != status {
			t.Fatalf("status %d: expected *APIError, got %v", status, err)
		}
	}
}

func TestGetPropagatesTransportErrorsUnmapped(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	http := &fakeHTTPClient{err: boom}
	c := New(Config{Token: "my_token", HTTPClient: http})

	_, err := c.Get(context.Background(), "/foo", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if _, ok := AsAPIError(err); ok {
		t.Fatalf("transport error must not become an APIError")
	}
}

func TestGetIsIdempotent(t *testing.T) {
	c, http := newTestClient(200, `{"times":[{"estimate":120}]}`)

	first, err := c.GetTimeEstimates(context.Background(), 1.5, 2.5, WithProductID("x"))
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := c.GetTimeEstimates(context.Background(), 1.5, 2.5, WithProductID("x"))
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if http.urls[0] != http.urls[1] {
		t.Fatalf("urls differ: %s vs %s", http.urls[0], http.urls[1])
	}
	if !reflect.DeepEqual(first.Value(), second.Value()) {
		t.Fatalf("payloads differ")
	}
}

type recordingLogger struct {
	msgs []string
	objs []interface{}
}

func (r *recordingLogger) DebugObj(msg, _ string, obj interface{}) {
	r.msgs = append(r.msgs, msg)
	r.objs = append(r.objs, obj)
}

func TestGetLogsWithoutToken(t *testing.T) {
	log := &recordingLogger{}
	http := &fakeHTTPClient{resp: fakeResponse{statusCode: 200, body: []byte(`{}`)}}
	c := New(Config{Token: "secret", HTTPClient: http, Logger: log})

	if _, err := c.Get(context.Background(), "/foo", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(log.msgs) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(log.msgs))
	}
	fields := log.objs[0].(map[string]any)
	if fields["status"] != 200 || fields["url"] != "https://api.uber.com/v1/foo" {
		t.Fatalf("unexpected log fields %#v", fields)
	}
	for _, v := range fields {
		if s, ok := v.(string); ok && s == "secret" {
			t.Fatalf("token leaked into logs")
		}
	}
}
