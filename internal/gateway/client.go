package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/scent-storefront/pkg/errors"
	"github.com/angelmondragon/scent-storefront/pkg/metrics"
	"github.com/angelmondragon/scent-storefront/pkg/tracing"
	"github.com/angelmondragon/scent-storefront/pkg/types"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultTimeout             = 10 * time.Second
	errorBodyReadLimit   int64 = 4096
	forbiddenMarker            = "forbidden"
	defaultAPIKeyHeader        = "X-API-Key"
)

var errBaseURLRequired = errors.New("backend base url is required")

// Client issues authenticated REST calls against the commerce backend. It holds no state
// besides configuration and is safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	apiKeyHeader string
	metrics      *metrics.GatewayMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default traced HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 && c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithAPIKey sends a static service key on every call.
func WithAPIKey(header, key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
		if h := strings.TrimSpace(header); h != "" {
			c.apiKeyHeader = h
		}
	}
}

// WithMetrics records per-operation latency and outcomes.
func WithMetrics(m *metrics.GatewayMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the backend client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:      trimmed,
		apiKeyHeader: defaultAPIKeyHeader,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Error describes a non-2xx backend response.
type Error struct {
	Status  int
	Message string
	Method  string
	Route   string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Route, e.Status)
	}
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Route, e.Status, e.Message)
}

func (e *Error) StatusCode() int        { return e.Status }
func (e *Error) BackendMessage() string { return e.Message }
func (e *Error) Path() string           { return e.Route }

// classify maps a backend failure onto the storefront error codes. A body that names
// the failure "forbidden" is treated like a 403 whatever the status.
func classify(status int, message string) pkgerrors.Code {
	if strings.EqualFold(strings.TrimSpace(message), forbiddenMarker) {
		return pkgerrors.CodeForbidden
	}
	return pkgerrors.FromStatus(status)
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

// do executes the call and decodes the envelope's result into out when out is non-nil.
func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "backend client not configured")
	}

	ctx, span := tracing.Start(ctx, "backend."+cl.op)
	span.SetAttributes(attribute.String("http.route", cl.path))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	started := time.Now()
	status := 0
	defer func() {
		c.metrics.Observe(cl.op, status, time.Since(started))
	}()

	var reader io.Reader
	if cl.body != nil {
		payload, mErr := json.Marshal(cl.body)
		if mErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, mErr, "marshal "+cl.op+" request")
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, cl.method, c.buildURL(cl.path, cl.query), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build "+cl.op+" request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if cl.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if c.apiKey != "" {
		httpReq.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+cl.op+" request")
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		message := extractMessage(raw)
		backendErr := &Error{Status: resp.StatusCode, Message: message, Method: cl.method, Route: cl.path}
		public := message
		if public == "" {
			public = cl.op + " request failed"
		}
		return pkgerrors.Wrap(classify(resp.StatusCode, message), backendErr, public)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope types.BackendEnvelope[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+cl.op+" response")
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+cl.op+" result")
	}
	return nil
}

// extractMessage pulls the envelope message out of an error body, falling back to the raw text.
func extractMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
		return ""
	}
	return string(trimmed)
}

func (c *Client) buildURL(path string, query url.Values) string {
	path = strings.TrimLeft(path, "/")
	full := fmt.Sprintf("%s/%s", c.baseURL, path)
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

func escape(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

func requireID(id, what string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, what+" is required")
	}
	return nil
}
