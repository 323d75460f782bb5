package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientForTimeoutReusesClients(t *testing.T) {
	factory := NewHTTPClientFactory(5 * time.Second)

	first := factory.ClientForTimeout(3 * time.Second)
	second := factory.ClientForTimeout(3 * time.Second)
	if first != second {
		t.Error("same timeout class should return the same client")
	}

	other := factory.ClientForTimeout(8 * time.Second)
	if first == other {
		t.Error("different timeout classes should not share a client")
	}

	fallback := factory.ClientForTimeout(0)
	if fallback.Timeout != 5*time.Second {
		t.Errorf("zero timeout should use the default, got %v", fallback.Timeout)
	}
}

func TestExecuteRequestSetsBrowserHeaders(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	factory := NewHTTPClientFactory(5 * time.Second)
	response, err := ExecuteRequest(context.Background(), factory.ClientForTimeout(0), "GET", server.URL, "agent-under-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	response.Body.Close()

	if gotUserAgent != "agent-under-test" {
		t.Errorf("user agent not applied, got %q", gotUserAgent)
	}
}

func TestExecuteRequestNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	factory := NewHTTPClientFactory(5 * time.Second)
	_, err := ExecuteRequest(context.Background(), factory.ClientForTimeout(0), "GET", server.URL, "agent")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}

	serviceErr, ok := err.(*ServiceError)
	if !ok {
		t.Fatalf("expected ServiceError, got %T", err)
	}
	if serviceErr.Code != "HTTP_403" {
		t.Errorf("unexpected code %q", serviceErr.Code)
	}
	if serviceErr.Retryable {
		t.Error("403 should not be retryable")
	}
}

func TestExecuteRequestRetryableStatuses(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusTooManyRequests} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "later", status)
		}))

		factory := NewHTTPClientFactory(5 * time.Second)
		_, err := ExecuteRequest(context.Background(), factory.ClientForTimeout(0), "GET", server.URL, "agent")
		server.Close()

		if err == nil {
			t.Fatalf("expected error for %d response", status)
		}
		if !IsRetryableError(err) {
			t.Errorf("status %d should be retryable", status)
		}
	}
}

func TestExecuteRequestHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	factory := NewHTTPClientFactory(5 * time.Second)
	if _, err := ExecuteRequest(ctx, factory.ClientForTimeout(0), "GET", server.URL, "agent"); err == nil {
		t.Fatal("expected error when the context deadline expires")
	}
}
