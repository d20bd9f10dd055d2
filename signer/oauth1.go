package signer

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	oauthVersion         = "1.0"
	oauthSignatureMethod = "HMAC-SHA1"

	paramConsumerKey     = "oauth_consumer_key"
	paramNonce           = "oauth_nonce"
	paramSignature       = "oauth_signature"
	paramSignatureMethod = "oauth_signature_method"
	paramTimestamp       = "oauth_timestamp"
	paramToken           = "oauth_token"
	paramVersion         = "oauth_version"
)

// Consumer holds the OAuth 1 consumer credentials issued by the server.
type Consumer struct {
	Key    string
	Secret string
}

// TokenPair holds an OAuth 1 request or access token and its secret.
type TokenPair struct {
	Token  string
	Secret string
}

// OAuth1Signer signs requests per RFC 5849 using HMAC-SHA1. Construct with
// OAuth1; the zero value is not usable.
type OAuth1Signer struct {
	consumer Consumer
	token    *TokenPair
	nonce    func() string
	now      func() time.Time
}

// OAuth1Option configures an OAuth1Signer.
type OAuth1Option func(*OAuth1Signer)

// WithToken binds a request/access token pair to the signer. The token is
// included as oauth_token and its secret contributes to the signing key.
func WithToken(tp TokenPair) OAuth1Option {
	return func(s *OAuth1Signer) { s.token = &tp }
}

// WithNonce overrides the nonce generator. The generator must return a fresh
// value on every call and be safe for concurrent use.
func WithNonce(fn func() string) OAuth1Option {
	return func(s *OAuth1Signer) { s.nonce = fn }
}

// WithClock overrides the timestamp source.
func WithClock(fn func() time.Time) OAuth1Option {
	return func(s *OAuth1Signer) { s.now = fn }
}

// OAuth1 creates an RFC 5849 HMAC-SHA1 signer bound to the given consumer
// credentials. By default nonces are uuid-derived and timestamps come from
// the wall clock.
func OAuth1(consumer Consumer, opts ...OAuth1Option) *OAuth1Signer {
	s := &OAuth1Signer{
		consumer: consumer,
		nonce:    defaultNonce,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign computes the OAuth 1 signature for req and sets the Authorization
// header. The request body is only consulted when it is form-encoded, as
// required by the parameter normalization rules.
func (s *OAuth1Signer) Sign(req *http.Request) error {
	oauthParams := map[string]string{
		paramConsumerKey:     s.consumer.Key,
		paramNonce:           s.nonce(),
		paramSignatureMethod: oauthSignatureMethod,
		paramTimestamp:       strconv.FormatInt(s.now().Unix(), 10),
		paramVersion:         oauthVersion,
	}
	if s.token != nil {
		oauthParams[paramToken] = s.token.Token
	}

	base, err := signatureBase(req, oauthParams)
	if err != nil {
		return err
	}

	tokenSecret := ""
	if s.token != nil {
		tokenSecret = s.token.Secret
	}
	oauthParams[paramSignature] = hmacSHA1(signingKey(s.consumer.Secret, tokenSecret), base)

	req.Header.Set("Authorization", authorizationHeader(oauthParams))
	return nil
}

// signingKey is enc(consumerSecret) & enc(tokenSecret); the ampersand is kept
// even when the token secret is empty.
func signingKey(consumerSecret, tokenSecret string) string {
	return percentEncode(consumerSecret) + "&" + percentEncode(tokenSecret)
}

func hmacSHA1(key, base string) string {
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// signatureBase builds the RFC 5849 §3.4.1 signature base string:
// METHOD & enc(base URI) & enc(normalized parameters).
func signatureBase(req *http.Request, oauthParams map[string]string) (string, error) {
	params, err := collectParameters(req, oauthParams)
	if err != nil {
		return "", err
	}
	parts := []string{
		strings.ToUpper(req.Method),
		percentEncode(baseURI(req.URL)),
		percentEncode(normalizeParameters(params)),
	}
	return strings.Join(parts, "&"), nil
}

// baseURI is the scheme and authority lowercased with default ports dropped,
// followed by the path. The query string is excluded.
func baseURI(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

type parameter struct {
	key, value string
}

// collectParameters gathers the query parameters, the oauth protocol
// parameters, and, for form-encoded requests only, the entity-body
// parameters. oauth_signature is never part of the base string.
func collectParameters(req *http.Request, oauthParams map[string]string) ([]parameter, error) {
	var params []parameter

	query, err := url.ParseQuery(req.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("signer: parse query: %w", err)
	}
	for k, vs := range query {
		for _, v := range vs {
			params = append(params, parameter{k, v})
		}
	}

	for k, v := range oauthParams {
		params = append(params, parameter{k, v})
	}

	if isFormEncoded(req) && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("signer: read form body: %w", err)
		}
		raw, err := io.ReadAll(body)
		_ = body.Close()
		if err != nil {
			return nil, fmt.Errorf("signer: read form body: %w", err)
		}
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, fmt.Errorf("signer: parse form body: %w", err)
		}
		for k, vs := range form {
			for _, v := range vs {
				params = append(params, parameter{k, v})
			}
		}
	}

	return params, nil
}

func isFormEncoded(req *http.Request) bool {
	ct := req.Header.Get("Content-Type")
	return strings.HasPrefix(strings.ToLower(ct), "application/x-www-form-urlencoded")
}

// normalizeParameters percent-encodes every name and value, sorts by encoded
// name with encoded value as a tiebreak, and joins k=v pairs with ampersands.
func normalizeParameters(params []parameter) string {
	encoded := make([]parameter, len(params))
	for i, p := range params {
		encoded[i] = parameter{percentEncode(p.key), percentEncode(p.value)}
	}
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i].key != encoded[j].key {
			return encoded[i].key < encoded[j].key
		}
		return encoded[i].value < encoded[j].value
	})
	pairs := make([]string, len(encoded))
	for i, p := range encoded {
		pairs[i] = p.key + "=" + p.value
	}
	return strings.Join(pairs, "&")
}

// authorizationHeader renders the OAuth Authorization header with
// percent-encoded, double-quoted values. Parameters are emitted in sorted
// order so the header is deterministic.
func authorizationHeader(oauthParams map[string]string) string {
	keys := make([]string, 0, len(oauthParams))
	for k := range oauthParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = percentEncode(k) + "=\"" + percentEncode(oauthParams[k]) + "\""
	}
	return "OAuth " + strings.Join(pairs, ", ")
}

// percentEncode implements RFC 5849 §3.6: unreserved characters pass
// through, everything else becomes %XX with uppercase hex. Space encodes as
// %20, never +.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// defaultNonce returns a fresh uuid-derived nonce. uuid generation reads
// from crypto/rand, so concurrent calls never collide.
func defaultNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
