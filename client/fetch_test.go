package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

type message struct {
	Message string `json:"message"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestFetch_JSON_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"hi"}`))
	})

	resp, err := Fetch[message](context.Background(), c, Get("/ok"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Ok() {
		t.Fatalf("expected success, got %v", resp.Err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Value.Message != "hi" {
		t.Errorf("expected message hi, got %q", resp.Value.Message)
	}
}

func TestFetch_JSON_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})

	resp, err := Fetch[message](context.Background(), c, Get("/empty"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Ok() {
		t.Fatal("expected empty-body failure")
	}
	if resp.Err.Status != 400 {
		t.Errorf("expected status 400, got %d", resp.Err.Status)
	}
	if !IsEmptyBody(resp.Err) {
		t.Errorf("expected empty-body classification, got %v", resp.Err)
	}
	// The wire status is still visible on the response itself.
	if resp.StatusCode != 200 {
		t.Errorf("expected wire status 200, got %d", resp.StatusCode)
	}
}

func TestFetch_404_JSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(404)
		w.Write([]byte(`{"error":"msg"}`))
	})

	resp, err := Fetch[message](context.Background(), c, Get("/missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Ok() {
		t.Fatal("expected status failure")
	}
	if resp.Err.Status != 404 {
		t.Errorf("expected status 404, got %d", resp.Err.Status)
	}
	if resp.Err.Message != "msg" {
		t.Errorf("expected message derived from body, got %q", resp.Err.Message)
	}
	if !IsStatusError(resp.Err) {
		t.Errorf("expected status classification, got %v", resp.Err)
	}
}

func TestFetch_404_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	})

	resp, err := Fetch[message](context.Background(), c, Get("/missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Err == nil || resp.Err.Status != 404 {
		t.Fatalf("expected 404 failure, got %v", resp.Err)
	}
	if !strings.Contains(resp.Err.Message, "Response was empty") {
		t.Errorf("expected empty-response message, got %q", resp.Err.Message)
	}
}

func TestFetch_404_TextBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte("not here"))
	})

	resp, err := Fetch[string](context.Background(), c, Get("/missing", WithRawKind(RawText)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Err == nil || resp.Err.Message != "not here" {
		t.Errorf("expected raw text message, got %v", resp.Err)
	}
}

func TestFetch_DecodeFailure_SchemaMismatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":12345}`))
	})

	resp, err := Fetch[message](context.Background(), c, Get("/bad"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Ok() {
		t.Fatal("expected decode failure")
	}
	if resp.Err.Status != 500 {
		t.Errorf("decode failures report 500, got %d", resp.Err.Status)
	}
	if resp.Err.Cause == nil {
		t.Error("decode failure must preserve its cause")
	}
	if !IsDecodeFailure(resp.Err) {
		t.Errorf("expected decode classification, got %v", resp.Err)
	}
	// Wire status stays on the response.
	if resp.StatusCode != 200 {
		t.Errorf("expected wire status 200, got %d", resp.StatusCode)
	}
}

func TestFetch_DecodeFailure_InvalidJSON(t *testing.T) {
	// Server labels the body text/plain, descriptor expects JSON: decoding
	// is attempted anyway and the failure reports the raw string.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("not json at all"))
	})

	resp, err := Fetch[message](context.Background(), c, Get("/mismatch"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Ok() {
		t.Fatal("expected decode failure")
	}
	if resp.Err.Status != 500 || !IsDecodeFailure(resp.Err) {
		t.Errorf("expected 500 decode failure, got %v", resp.Err)
	}
	if !strings.Contains(resp.Err.Message, "not json at all") {
		t.Errorf("decode failure should carry the raw string, got %q", resp.Err.Message)
	}
}

func TestFetch_Text_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("plain result"))
	})

	resp, err := Fetch[string](context.Background(), c, Get("/text", WithRawKind(RawText)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Ok() {
		t.Fatalf("expected success, got %v", resp.Err)
	}
	if resp.Value != "plain result" {
		t.Errorf("expected plain result, got %q", resp.Value)
	}
}

func TestFetch_Text_EmptyBodyIsEmptyString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})

	req := Post("/ok", map[string]any{"a": "A", "b": []int{1, 2, 3}}, WithRawKind(RawText))
	resp, err := Fetch[string](context.Background(), c, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Ok() {
		t.Fatalf("empty plain-text body is a valid empty string, got %v", resp.Err)
	}
	if resp.Value != "" {
		t.Errorf("expected empty string, got %q", resp.Value)
	}
}

func TestFetch_Unit_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(204)
	})

	resp, err := Fetch[Unit](context.Background(), c, Delete("/resource/1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Ok() {
		t.Fatalf("unit fetch must accept empty bodies, got %v", resp.Err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}

func TestFetchAs_CustomDecoder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("41"))
	})

	dec := func(raw Raw) (int, error) {
		n := 0
		for _, ch := range raw.Text {
			n = n*10 + int(ch-'0')
		}
		return n + 1, nil
	}
	resp, err := FetchAs(context.Background(), c, Get("/n", WithRawKind(RawText)), dec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Ok() || resp.Value != 42 {
		t.Errorf("expected 42, got %v (%v)", resp.Value, resp.Err)
	}
}

func TestFetchAs_DecoderRejects(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"hi"}`))
	})

	dec := func(raw Raw) (message, error) {
		return message{}, &ResponseError{Message: "rejected"}
	}
	resp, err := FetchAs(context.Background(), c, Get("/ok"), dec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Ok() || !IsDecodeFailure(resp.Err) || resp.Err.Status != 500 {
		t.Errorf("expected 500 decode failure, got %v", resp.Err)
	}
}

func TestFetch_TextIntoNonString_NeedsDecoder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	})

	resp, err := Fetch[message](context.Background(), c, Get("/", WithRawKind(RawText)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Ok() || !IsDecodeFailure(resp.Err) {
		t.Errorf("expected decode failure, got %v", resp.Err)
	}
}

func TestFetch_Idempotent_GET(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"stable"}`))
	})

	first, err := Fetch[message](context.Background(), c, Get("/stable"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Fetch[message](context.Background(), c, Get("/stable"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Headers, second.Headers = nil, nil // Date differs between calls
	if !reflect.DeepEqual(first, second) {
		t.Errorf("idempotent GETs should be structurally equal: %+v vs %+v", first, second)
	}
}

func TestFetch_RawMessageTarget(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"hi"}`))
	})

	resp, err := Fetch[map[string]any](context.Background(), c, Get("/ok"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Ok() {
		t.Fatalf("expected success, got %v", resp.Err)
	}
	if resp.Value["message"] != "hi" {
		t.Errorf("expected message hi, got %v", resp.Value)
	}
}
