package client

import (
	"net/http"

	"github.com/justinp/fsclient/signer"
)

// RawKind is the wire-level payload shape of a response before typed
// decoding.
type RawKind int

const (
	// RawJSON expects the response body to be a JSON value.
	RawJSON RawKind = iota
	// RawText treats the response body as a plain string.
	RawText
)

// String returns the raw kind name.
func (k RawKind) String() string {
	switch k {
	case RawJSON:
		return "json"
	case RawText:
		return "text"
	default:
		return "unknown"
	}
}

// Request is an immutable declaration of one endpoint call: method, path,
// optional body, and the expected raw payload kind. Build one with Get,
// Post, Put, Patch, or Delete; the constructors enforce body presence, so a
// GET can never carry an entity body.
type Request struct {
	method  string
	path    string
	body    any
	raw     RawKind
	headers map[string]string
	query   map[string]string
	signer  signer.Signer
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.headers == nil {
			r.headers = make(map[string]string)
		}
		r.headers[key] = value
	}
}

// WithQueryParam adds a query parameter to the request.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.query == nil {
			r.query = make(map[string]string)
		}
		r.query[key] = value
	}
}

// WithRawKind declares the expected raw payload kind of the response.
// Defaults to RawJSON.
func WithRawKind(kind RawKind) RequestOption {
	return func(r *Request) { r.raw = kind }
}

// WithRequestSigner overrides the client-level auth mode for this request.
func WithRequestSigner(s signer.Signer) RequestOption {
	return func(r *Request) { r.signer = s }
}

// Get builds a GET descriptor. GET requests carry no body by construction.
func Get(path string, opts ...RequestOption) Request {
	return build(http.MethodGet, path, nil, opts)
}

// Post builds a POST descriptor with exactly one body value. The body is
// encoded by content kind: string as text/plain, []byte and io.Reader as-is,
// anything else as JSON.
func Post(path string, body any, opts ...RequestOption) Request {
	return build(http.MethodPost, path, body, opts)
}

// Put builds a PUT descriptor with a body.
func Put(path string, body any, opts ...RequestOption) Request {
	return build(http.MethodPut, path, body, opts)
}

// Patch builds a PATCH descriptor with a body.
func Patch(path string, body any, opts ...RequestOption) Request {
	return build(http.MethodPatch, path, body, opts)
}

// Delete builds a DELETE descriptor. Like GET, it carries no body.
func Delete(path string, opts ...RequestOption) Request {
	return build(http.MethodDelete, path, nil, opts)
}

func build(method, path string, body any, opts []RequestOption) Request {
	r := Request{
		method: method,
		path:   path,
		body:   body,
		raw:    RawJSON,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Method returns the HTTP method.
func (r Request) Method() string { return r.method }

// Path returns the target path.
func (r Request) Path() string { return r.path }

// Raw returns the declared raw payload kind.
func (r Request) Raw() RawKind { return r.raw }
