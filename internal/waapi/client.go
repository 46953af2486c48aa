// Package waapi is a minimal client for the Wwise Authoring API's HTTP
// endpoint. It performs single, synchronous JSON exchanges; WAMP/WebSocket
// transport and subscriptions are out of scope.
package waapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/valyala/fastjson"
)

const (
	// DefaultURL is where a local Wwise authoring instance serves WAAPI
	// over HTTP.
	DefaultURL = "http://127.0.0.1:8090/waapi"

	// DefaultTimeout bounds the single blocking request.
	DefaultTimeout = 30 * time.Second

	// URIObjectGet runs a WAQL query.
	URIObjectGet = "ak.wwise.core.object.get"

	// URIGetInfo returns session and version info; useful as a
	// connectivity check.
	URIGetInfo = "ak.wwise.core.getInfo"
)

// Classifiable response failures. Send failures (connection refused,
// timeout, DNS) are wrapped transport errors and carry no sentinel.
var (
	ErrInvalidResponseBody = errors.New("response body is not valid JSON")
	ErrNotAnObject         = errors.New("response is not a JSON object")
)

// envelope is the WAAPI HTTP request body.
type envelope struct {
	URI     string         `json:"uri"`
	Args    map[string]any `json:"args"`
	Options map[string]any `json:"options"`
}

// Client issues WAAPI calls against a fixed endpoint. The zero value is not
// usable; construct with New.
type Client struct {
	http   *resty.Client
	url    string
	logger *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithLogger sets the logger for request-level debug output. A nil logger
// keeps the default discard handler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the given endpoint URL. An empty url selects
// DefaultURL.
func New(url string, opts ...Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	c := &Client{
		http:   resty.New().SetTimeout(DefaultTimeout),
		url:    url,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient exposes the underlying http.Client, primarily for tests.
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// Call performs one WAAPI exchange: POST the {uri, args, options} envelope,
// parse the response. Nil args/options are sent as empty objects. The
// returned value is the top-level response object, unmodified; anything
// that is not a JSON object is rejected here, schema handling is the
// caller's job.
func (c *Client) Call(ctx context.Context, uri string, args, options map[string]any) (*fastjson.Value, error) {
	if args == nil {
		args = map[string]any{}
	}
	if options == nil {
		options = map[string]any{}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(envelope{URI: uri, Args: args, Options: options}).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("send request to %s: %w", c.url, err)
	}

	c.logger.Debug("waapi call",
		"uri", uri,
		"status", resp.StatusCode(),
		"elapsed", resp.Time())

	if resp.IsError() {
		return nil, fmt.Errorf("request failed: HTTP %d: %s", resp.StatusCode(), firstLine(resp.Body()))
	}

	var p fastjson.Parser
	v, err := p.ParseBytes(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidResponseBody, err)
	}
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: got %s", ErrNotAnObject, v.Type())
	}
	return v, nil
}

// Query runs a WAQL clause through ak.wwise.core.object.get. When a
// projection is given it is passed as the "return" option, in user order.
func (c *Client) Query(ctx context.Context, clause string, projection []string) (*fastjson.Value, error) {
	args := map[string]any{"waql": clause}
	var options map[string]any
	if len(projection) > 0 {
		options = map[string]any{"return": projection}
	}
	return c.Call(ctx, URIObjectGet, args, options)
}

// GetInfo fetches session/version info from the authoring instance.
func (c *Client) GetInfo(ctx context.Context) (*fastjson.Value, error) {
	return c.Call(ctx, URIGetInfo, nil, nil)
}

// firstLine truncates an error body for inclusion in an error message.
func firstLine(body []byte) string {
	const limit = 200
	for i, b := range body {
		if b == '\n' || i == limit {
			return string(body[:i])
		}
	}
	return string(body)
}
