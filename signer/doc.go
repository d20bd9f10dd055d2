// Package signer computes authentication material for outgoing HTTP
// requests and injects it before transport send.
//
// Three modes are provided, one per supported protocol:
//
//   - NoAuth: requests pass through untouched.
//   - BearerAuth / TokenSourceAuth: OAuth 2 bearer tokens, either a static
//     string or a refreshable golang.org/x/oauth2 token source.
//   - OAuth1: RFC 5849 HMAC-SHA1 request signing with consumer credentials
//     and an optional token pair.
//
// Signers hold no mutable state and are safe for concurrent use. The OAuth1
// signer generates a fresh nonce and timestamp on every call; both generators
// can be injected for deterministic tests:
//
//	s := signer.OAuth1(signer.Consumer{Key: "k", Secret: "s"},
//	    signer.WithToken(signer.TokenPair{Token: "t", Secret: "ts"}),
//	)
//	err := s.Sign(req)
package signer
