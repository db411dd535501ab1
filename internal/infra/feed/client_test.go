package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vietddude/loresmith/internal/core/domain"
)

func TestPublishPostsStatus(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/statuses" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, AccessToken: "token123"})
	book := domain.Book{"First paragraph.", "Second paragraph."}

	if err := client.Publish(context.Background(), book); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if received["status"] != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("unexpected status %q", received["status"])
	}
	if received["visibility"] != "public" {
		t.Errorf("unexpected visibility %q", received["visibility"])
	}
}

func TestPublishClassifiesFailures(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusUnprocessableEntity, false},
		{http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		}))

		client := NewClient(Config{URL: server.URL})
		err := client.Publish(context.Background(), domain.Book{"x"})
		if err == nil {
			t.Errorf("status %d: expected error", tt.status)
		} else if domain.ShouldRetry(err) != tt.retryable {
			t.Errorf("status %d: ShouldRetry = %v, want %v", tt.status, domain.ShouldRetry(err), tt.retryable)
		}
		server.Close()
	}
}

func TestPublishNetworkFailureIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from now on

	client := NewClient(Config{URL: server.URL})
	err := client.Publish(context.Background(), domain.Book{"x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.ShouldRetry(err) {
		t.Errorf("network failure should be retryable: %v", err)
	}
}
