package signer

import (
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Signer injects authentication material into an outgoing request.
// Implementations must not mutate shared state; a single Signer is reused
// across concurrent requests.
type Signer interface {
	Sign(req *http.Request) error
}

// NoAuth returns a signer for the disabled auth mode. Sign never fails and
// leaves the request untouched.
func NoAuth() Signer {
	return noAuth{}
}

type noAuth struct{}

func (noAuth) Sign(*http.Request) error { return nil }

// BearerAuth returns an OAuth 2 signer presenting a static bearer token.
// Sign never fails.
func BearerAuth(token string) Signer {
	return bearerAuth{token: token}
}

type bearerAuth struct {
	token string
}

func (b bearerAuth) Sign(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.token)
	return nil
}

// TokenSourceAuth returns an OAuth 2 signer that obtains the current access
// token from src on every call. Use this with refreshable sources such as
// those produced by the golang.org/x/oauth2 config types; token refresh
// errors surface as signing errors.
func TokenSourceAuth(src oauth2.TokenSource) Signer {
	return tokenSourceAuth{src: src}
}

type tokenSourceAuth struct {
	src oauth2.TokenSource
}

func (t tokenSourceAuth) Sign(req *http.Request) error {
	tok, err := t.src.Token()
	if err != nil {
		return fmt.Errorf("signer: obtain access token: %w", err)
	}
	tok.SetAuthHeader(req)
	return nil
}
