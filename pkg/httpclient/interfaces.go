package httpclient

import "context"

// Response is the status and raw body of a completed request.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs GET requests. Implementations own connection handling, TLS,
// redirects and timeouts; callers only see a status and a body.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
