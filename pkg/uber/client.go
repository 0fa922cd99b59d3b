// Package uber is a small client for the Uber ride-hailing REST API. Each
// endpoint method is a thin projection onto Client.Get, which builds the
// request URL, performs the call through an injected httpclient.Client and
// maps non-200 responses to *APIError.
package uber

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Adda-Baaj/simple-uber/pkg/httpclient"
)

const (
	ProductionAPI  = "https://api.uber.com"
	SandboxAPI     = "https://sandbox-api.uber.com"
	DefaultVersion = "v1"
)

// Config holds the settings for a Client.
type Config struct {
	Token      string
	Version    string            // Optional; DefaultVersion when empty
	BaseURL    string            // Optional; ProductionAPI when empty
	HTTPClient httpclient.Client // Optional; resty transport with default timeout when nil
	Logger     Logger            // Optional; no-op when nil
}

// Client talks to one API endpoint with one token. It holds no mutable state
// and is safe for concurrent use if its transport is.
type Client struct {
	url   string
	token string
	http  httpclient.Client
	log   Logger
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = ProductionAPI
	}
	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}
	transport := cfg.HTTPClient
	if transport == nil {
		transport = httpclient.NewRestyClient(httpclient.Options{})
	}
	return &Client{
		url:   fmt.Sprintf("%s/%s", baseURL, version),
		token: cfg.Token,
		http:  transport,
		log:   ensureLogger(cfg.Logger),
	}
}

// URL returns the versioned base URL every request path is appended to.
func (c *Client) URL() string { return c.url }

// Get issues GET {base}/{version}{path}[?query]. A 200 response returns the
// parsed body as-is; any other status returns an *APIError. Transport errors
// are wrapped and returned unmapped.
func (c *Client) Get(ctx context.Context, path string, query Query) (*Payload, error) {
	fullURL := c.url + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	start := time.Now()
	resp, err := c.http.Get(ctx, fullURL, map[string]string{
		"Authorization": "Token " + c.token,
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}

	payload := parsePayload(resp.Body())
	c.log.DebugObj("uber api response", "uber_request", map[string]any{
		"url":        fullURL,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode() != http.StatusOK {
		return nil, NewAPIError(resp.StatusCode(), payload.Value())
	}
	return payload, nil
}
