package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/justinp/fsclient/logger"
	"github.com/justinp/fsclient/signer"
)

// Doer is the injected HTTP execution capability. *http.Client satisfies it;
// tests and callers with custom transports supply their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client binds an auth mode, a User-Agent, and an HTTP transport. It is
// immutable after construction and safe for unlimited concurrent use; each
// call's request/response lifecycle is fully isolated.
type Client struct {
	doer   Doer
	config Config
	signer signer.Signer
	log    *logger.Logger
}

// Option configures a Client at construction.
type Option func(*Client)

// WithSigner binds the client's auth mode. Defaults to signer.NoAuth().
// A new client must be constructed to change credentials.
func WithSigner(s signer.Signer) Option {
	return func(c *Client) { c.signer = s }
}

// WithDoer injects the HTTP transport. The injected Doer owns timeout
// enforcement; Config.Timeout applies only to the default transport.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithLogger injects the logging collaborator. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		doer:   &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		signer: signer.NoAuth(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// RawResponse is the undecoded result of an HTTP request.
type RawResponse struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *RawResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the response content type, without parameters.
func (r *RawResponse) ContentType() string {
	ct := r.Headers["Content-Type"]
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}

// Do renders the descriptor into a wire request, signs it, executes it, and
// reads the body. Transport failures return a *TransportError; everything
// else, including non-2xx statuses, is reported through the RawResponse and
// left to the decode pipeline.
func (c *Client) Do(ctx context.Context, req Request) (*RawResponse, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	c.log.Debug("request sent", logger.Fields(
		logger.FieldEvent, "request-sent",
		logger.FieldMethod, httpReq.Method,
		logger.FieldURL, httpReq.URL.String(),
	))

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, fmt.Errorf("read response body: %w", err))
	}

	c.log.Debug("response received", logger.Fields(
		logger.FieldEvent, "response-received",
		logger.FieldStatus, resp.StatusCode,
		logger.FieldBodySize, len(body),
	))

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// buildRequest constructs the transport-level request: method, resolved URL,
// User-Agent, body, default and per-request headers, then the signature.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.path, "http://") && !strings.HasPrefix(req.path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.path, "/")
	}

	body, contentType, err := encodeBody(req.body)
	if err != nil {
		return nil, fmt.Errorf("client: encode body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, url, body)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}

	if len(req.query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	// Sign last so the signature covers the final URL and parameters.
	// Request-level signer overrides the client-level auth mode.
	sgn := c.signer
	if req.signer != nil {
		sgn = req.signer
	}
	if err := sgn.Sign(httpReq); err != nil {
		return nil, fmt.Errorf("client: sign request: %w", err)
	}

	return httpReq, nil
}

// classifyTransportError wraps a transport failure, marking it as a timeout
// when the context expired or the underlying error reports one.
func classifyTransportError(ctx context.Context, err error) *TransportError {
	if ctx.Err() != nil {
		return &TransportError{Timeout: true, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Timeout: true, Err: err}
	}
	return &TransportError{Err: err}
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
