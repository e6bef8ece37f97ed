package hfinference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(server *httptest.Server) *Client {
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "facebook/blenderbot-3B",
	})
}

func TestGenerateSingleObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/facebook/blenderbot-3B" {
			t.Errorf("path = %q", r.URL.Path)
		}

		var req inferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Inputs != "I am stressed" {
			t.Errorf("inputs = %q", req.Inputs)
		}

		w.Write([]byte(`{"generated_text":"That sounds hard."}`))
	}))
	defer server.Close()

	text, err := newTestClient(server).Generate(context.Background(), "I am stressed")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "That sounds hard." {
		t.Errorf("text = %q", text)
	}
}

func TestGenerateArrayResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"generated_text":"Hang in there."}]`))
	}))
	defer server.Close()

	text, err := newTestClient(server).Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Hang in there." {
		t.Errorf("text = %q", text)
	}
}

func TestGenerateStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The inference API answers 503 while a model is loading.
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model facebook/blenderbot-3B is currently loading"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).Generate(context.Background(), "hello")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", statusErr.StatusCode)
	}
}

func TestGenerateMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"just a string"`))
	}))
	defer server.Close()

	_, err := newTestClient(server).Generate(context.Background(), "hello")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}
