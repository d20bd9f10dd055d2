// Package client provides a typed HTTP client for JSON and plain-text APIs
// with pluggable request signing.
//
// A Client binds an auth mode (a signer.Signer), a User-Agent string, and an
// HTTP transport once at construction and is safe for unlimited concurrent
// use. Requests are declared as immutable descriptors and executed with the
// generic Fetch functions, which decode the raw response into a typed value:
//
//	c, err := client.New(client.Config{
//	    BaseURL:   "https://api.example.com",
//	    UserAgent: "myapp/1.0",
//	}, client.WithSigner(signer.BearerAuth("token")))
//
//	resp, err := client.Fetch[User](ctx, c, client.Get("/users/123"))
//	if err != nil {
//	    // transport failure (connection refused, timeout)
//	}
//	if resp.Err != nil {
//	    // API-level failure: non-2xx status, empty body, decode error
//	}
//	user := resp.Value
//
// API-level failures are data, not errors: a non-2xx status, an empty body
// where content was expected, or a failed decode all resolve to a
// *ResponseError inside the returned Response. Only transport faults
// (connection, timeout, cancellation) are returned as Go errors.
package client
