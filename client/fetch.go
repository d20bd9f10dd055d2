package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/justinp/fsclient/logger"
)

// Unit is the target type for endpoints that return no content. A Unit fetch
// skips the emptiness check and never decodes the body.
type Unit struct{}

// Raw is the wire-level payload handed to decode functions: a JSON value or
// a plain string, selected by the declared raw kind.
type Raw struct {
	Kind RawKind
	JSON json.RawMessage
	Text string
}

// DecodeFunc transforms a raw payload into T. Returning an error resolves
// the fetch to a decode-classified ResponseError.
type DecodeFunc[T any] func(raw Raw) (T, error)

// Response is the typed result of a fetch. Exactly one of Value and Err is
// meaningful: Err == nil means Value holds the decoded payload.
type Response[T any] struct {
	// StatusCode is the original wire status, preserved even when decoding
	// failed.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Value is the decoded payload when Err is nil.
	Value T
	// Err is the API-level failure, if any.
	Err *ResponseError
}

// Ok returns true when the fetch decoded successfully.
func (r *Response[T]) Ok() bool { return r.Err == nil }

// Fetch executes the descriptor and decodes the response with the default
// decoder for T: JSON unmarshalling for RawJSON, the identity for string
// targets under RawText. Transport failures are returned as Go errors; all
// API-level failures land in Response.Err.
func Fetch[T any](ctx context.Context, c *Client, req Request) (*Response[T], error) {
	return FetchAs[T](ctx, c, req, nil)
}

// FetchAs executes the descriptor and decodes the response with a
// caller-supplied decode function.
func FetchAs[T any](ctx context.Context, c *Client, req Request, dec DecodeFunc[T]) (*Response[T], error) {
	raw, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &Response[T]{
		StatusCode: raw.StatusCode,
		Headers:    raw.Headers,
	}
	resp.Err = decodePipeline(req.raw, raw, dec, &resp.Value)
	if resp.Err != nil && resp.Err.Code == CodeDecode {
		c.log.Warn("decode error", logger.ErrorFields("decode-error", resp.Err))
	}
	return resp, nil
}

// decodePipeline runs the response state machine: status check, emptiness
// check, raw dispatch, typed decode.
func decodePipeline[T any](kind RawKind, raw *RawResponse, dec DecodeFunc[T], out *T) *ResponseError {
	if !raw.IsSuccess() {
		return NewStatusError(raw.StatusCode, raw.Body)
	}

	// No-content targets succeed regardless of body.
	if _, isUnit := any(*out).(Unit); isUnit {
		return nil
	}

	// An empty JSON body on a success status is a failure; an empty text
	// body is a valid empty string.
	if len(raw.Body) == 0 && kind == RawJSON {
		return NewEmptyBodyError()
	}

	value, rerr := dispatchRaw(kind, raw.Body)
	if rerr != nil {
		return rerr
	}

	if dec != nil {
		v, err := dec(value)
		if err != nil {
			return NewDecodeError(err, raw.Body)
		}
		*out = v
		return nil
	}

	return defaultDecode(value, raw.Body, out)
}

// dispatchRaw parses the body into the declared raw kind. The declared kind
// wins over the actual content-type: when JSON is expected, parsing is
// attempted no matter what the server labelled the body, and a parse
// failure reports the raw string instead of crashing.
func dispatchRaw(kind RawKind, body []byte) (Raw, *ResponseError) {
	switch kind {
	case RawText:
		return Raw{Kind: RawText, Text: string(body)}, nil
	default:
		var probe any
		if err := json.Unmarshal(body, &probe); err != nil {
			return Raw{}, NewDecodeError(fmt.Errorf("invalid JSON %q: %w", string(body), err), body)
		}
		return Raw{Kind: RawJSON, JSON: json.RawMessage(body)}, nil
	}
}

// defaultDecode decodes the raw value into T without a caller-supplied
// transform.
func defaultDecode[T any](raw Raw, body []byte, out *T) *ResponseError {
	switch raw.Kind {
	case RawText:
		if v, ok := any(raw.Text).(T); ok {
			*out = v
			return nil
		}
		return NewDecodeError(fmt.Errorf("plain-text payload needs a string target or a DecodeFunc, have %T", *out), body)
	default:
		if err := json.Unmarshal(raw.JSON, out); err != nil {
			return NewDecodeError(err, body)
		}
		return nil
	}
}
