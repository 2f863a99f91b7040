package transport

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/valory-xyz/bumper/pkg/errors"
	"github.com/valory-xyz/bumper/pkg/logging"
)

// TestClientGet tests that Get applies authentication and common headers.
func TestClientGet(t *testing.T) {
	var gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"ok":true}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := New(&BearerAuth{}, "ghp_testtoken")
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if gotAuth != "Bearer ghp_testtoken" {
		t.Errorf("Expected bearer token to be applied, got %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Expected default Accept header, got %q", gotAccept)
	}
}

// TestClientGetNoToken tests that an empty token leaves requests unauthenticated.
func TestClientGetNoToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(&BearerAuth{}, "")
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if gotAuth != "" {
		t.Errorf("Expected no Authorization header without a token, got %q", gotAuth)
	}
}

// TestClientPreservesAccept tests that a caller-provided Accept header is not overridden.
func TestClientPreservesAccept(t *testing.T) {
	var gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(&NoAuth{}, "")
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if gotAccept != "application/vnd.github+json" {
		t.Errorf("Expected caller Accept header to be preserved, got %q", gotAccept)
	}
}

// TestDecodeResponse tests decoding of success and error responses.
func TestDecodeResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte(`{"name":"packages.json","encoding":"base64"}`)); err != nil {
				t.Errorf("write response: %v", err)
			}
		}))
		defer server.Close()

		client := New(&NoAuth{}, "")
		resp, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		var target struct {
			Name     string `json:"name"`
			Encoding string `json:"encoding"`
		}
		if err := DecodeResponse(resp, &target); err != nil {
			t.Fatalf("DecodeResponse failed: %v", err)
		}
		if target.Name != "packages.json" {
			t.Errorf("Expected name 'packages.json', got %q", target.Name)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			if _, err := w.Write([]byte(`{"message":"Not Found"}`)); err != nil {
				t.Errorf("write response: %v", err)
			}
		}))
		defer server.Close()

		client := New(&NoAuth{}, "")
		resp, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		var target map[string]any
		err = DecodeResponse(resp, &target)
		if err == nil {
			t.Fatal("Expected error for 404 response")
		}

		apiErr, ok := err.(*errors.APIError)
		if !ok {
			t.Fatalf("Expected APIError, got %T", err)
		}
		if apiErr.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", apiErr.StatusCode)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte(`{not json`)); err != nil {
				t.Errorf("write response: %v", err)
			}
		}))
		defer server.Close()

		client := New(&NoAuth{}, "")
		resp, err := client.Get(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		var target map[string]any
		err = DecodeResponse(resp, &target)
		if err == nil {
			t.Fatal("Expected error for malformed body")
		}
		if _, ok := err.(*errors.ParseError); !ok {
			t.Fatalf("Expected ParseError, got %T", err)
		}
	})

	t.Run("close failure is logged", func(t *testing.T) {
		logs := logging.CaptureLoggingForTest(t)

		resp := &http.Response{
			StatusCode: http.StatusOK,
			Body:       failingBody{strings.NewReader(`{"ok":true}`)},
		}

		var target map[string]bool
		if err := DecodeResponse(resp, &target); err != nil {
			t.Fatalf("DecodeResponse failed: %v", err)
		}

		logs.AssertContains(t, "failed to close response body")
	})
}

// failingBody reads normally but refuses to close.
type failingBody struct {
	io.Reader
}

func (failingBody) Close() error { return stderrors.New("already closed") }
