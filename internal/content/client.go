// Package content talks to the Content API, the external CMS backend that
// owns every page's copy, images and lists.
//
// Every response is wrapped in the same JSON envelope:
//
//	{"success": true, "data": {...}}
//	{"success": false, "message": "Introduction page not found"}
//
// Get and Post unwrap it, returning the data or an *Error that says which
// part of the call failed. Nothing is retried and nothing is cached.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"impractical.co/lantern"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// DefaultTimeout bounds each request when no *http.Client is supplied.
const DefaultTimeout = 10 * time.Second

var tracer = otel.Tracer("impractical.co/lantern/internal/content")

// Envelope is the wrapper around every Content API response body.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Client calls the Content API. It's safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client

	// inflight collapses concurrent GETs of the same endpoint into one
	// request. It holds nothing once the request returns.
	inflight singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient makes the Client send requests through hc. A nil hc is
// ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout of the Client's *http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = timeout
		c.http = &hc
	}
}

// NewClient returns a Client for the Content API at baseURL. Endpoints are
// joined onto the base URL's path.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing content API URL %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("content API URL %q must be http or https", baseURL)
	}
	c := &Client{
		base: base,
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type response struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (response, error) {
	ctx, span := tracer.Start(ctx, method+" "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("lantern.content.endpoint", endpoint),
		),
	)
	defer span.End()

	fail := func(err error) (response, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return response{}, &Error{Kind: KindTransport, Method: method, Endpoint: endpoint, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(endpoint).String(), reqBody)
	if err != nil {
		return fail(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fail(fmt.Errorf("error reading response body: %w", err))
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	lantern.Logger(ctx).DebugContext(ctx, "content API call", "method", method, "endpoint", endpoint, "status", resp.StatusCode)
	return response{status: resp.StatusCode, body: data}, nil
}

func decode[T any](method, endpoint string, res response) (T, error) {
	var zero T
	// a POST answered with an empty 2xx, like a 204, was still accepted
	if method == http.MethodPost && res.status >= 200 && res.status <= 299 && len(bytes.TrimSpace(res.body)) == 0 {
		return zero, nil
	}
	var env Envelope[T]
	decodeErr := json.Unmarshal(res.body, &env)
	if res.status < 200 || res.status > 299 {
		apiErr := &Error{Kind: KindStatus, Method: method, Endpoint: endpoint, Status: res.status}
		if decodeErr == nil {
			apiErr.Message = env.Message
		}
		return zero, apiErr
	}
	if decodeErr != nil {
		return zero, &Error{Kind: KindDecode, Method: method, Endpoint: endpoint, Status: res.status, Err: decodeErr}
	}
	if !env.Success {
		return zero, &Error{Kind: KindRejected, Method: method, Endpoint: endpoint, Status: res.status, Message: env.Message}
	}
	if env.Data == nil {
		return zero, nil
	}
	return *env.Data, nil
}

// Get fetches endpoint and returns the envelope's data. A successful
// envelope without data returns the zero value of T; callers fill in their
// defaults from there.
//
// Concurrent calls for the same endpoint share one request, but each caller
// decodes its own copy of the result.
func Get[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, &Error{Kind: KindTransport, Method: http.MethodGet, Endpoint: endpoint, Err: err}
	}
	// the shared request must outlive any one caller giving up
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(endpoint, func() (any, error) {
		return c.do(shared, http.MethodGet, endpoint, nil)
	})
	select {
	case <-ctx.Done():
		return zero, &Error{Kind: KindTransport, Method: http.MethodGet, Endpoint: endpoint, Err: ctx.Err()}
	case result := <-ch:
		if result.Err != nil {
			return zero, result.Err
		}
		return decode[T](http.MethodGet, endpoint, result.Val.(response))
	}
}

// Post sends body as JSON to endpoint and returns the envelope's data.
func Post[Req, Resp any](ctx context.Context, c *Client, endpoint string, body Req) (Resp, error) {
	var zero Resp
	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("error encoding request for %s: %w", endpoint, err)
	}
	res, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return zero, err
	}
	return decode[Resp](http.MethodPost, endpoint, res)
}

// loginEnvelope accepts the login result either inside data or alongside
// success at the top level.
type loginEnvelope struct {
	Envelope[LoginResult]
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login posts creds to one of the auth endpoints. The API may return the
// token and user inside data or at the top level of the envelope; both are
// accepted.
func Login(ctx context.Context, c *Client, endpoint string, creds Credentials) (LoginResult, error) {
	payload, err := json.Marshal(creds)
	if err != nil {
		return LoginResult{}, fmt.Errorf("error encoding credentials: %w", err)
	}
	res, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return LoginResult{}, err
	}
	var env loginEnvelope
	decodeErr := json.Unmarshal(res.body, &env)
	if res.status < 200 || res.status > 299 {
		apiErr := &Error{Kind: KindStatus, Method: http.MethodPost, Endpoint: endpoint, Status: res.status}
		if decodeErr == nil {
			apiErr.Message = env.Message
		}
		return LoginResult{}, apiErr
	}
	if decodeErr != nil {
		return LoginResult{}, &Error{Kind: KindDecode, Method: http.MethodPost, Endpoint: endpoint, Status: res.status, Err: decodeErr}
	}
	if !env.Success {
		return LoginResult{}, &Error{Kind: KindRejected, Method: http.MethodPost, Endpoint: endpoint, Status: res.status, Message: env.Message}
	}
	result := LoginResult{Token: env.Token}
	if env.User != nil {
		result.User = *env.User
	}
	if env.Data != nil {
		if env.Data.Token != "" {
			result.Token = env.Data.Token
		}
		if env.Data.User != (User{}) {
			result.User = env.Data.User
		}
	}
	if result.Token == "" {
		return LoginResult{}, &Error{Kind: KindRejected, Method: http.MethodPost, Endpoint: endpoint, Status: res.status, Message: env.Message}
	}
	return result, nil
}
