package shared

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPClientFactory creates pooled HTTP clients with standardized transport
// configuration, one per timeout class.
type HTTPClientFactory struct {
	defaultTimeout time.Duration
	mutex          sync.RWMutex
	clients        map[string]*http.Client
}

// NewHTTPClientFactory creates a new HTTP client factory
func NewHTTPClientFactory(defaultTimeout time.Duration) *HTTPClientFactory {
	return &HTTPClientFactory{
		defaultTimeout: defaultTimeout,
		clients:        make(map[string]*http.Client),
	}
}

// ClientForTimeout returns a cached HTTP client configured with connection
// pooling for the given timeout class.
func (f *HTTPClientFactory) ClientForTimeout(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = f.defaultTimeout
	}

	clientKey := fmt.Sprintf("timeout_%d", timeout.Milliseconds())

	f.mutex.RLock()
	if client, exists := f.clients[clientKey]; exists {
		f.mutex.RUnlock()
		return client
	}
	f.mutex.RUnlock()

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,

			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	f.mutex.Lock()
	f.clients[clientKey] = client
	f.mutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"component":  "HTTPClientFactory",
		"timeout":    timeout,
		"client_key": clientKey,
	}).Debug("Created new pooled HTTP client")

	return client
}

// SetBrowserLikeHeaders configures HTTP request headers to mimic browser
// behavior. The upstream site blocks requests without a desktop User-Agent.
func SetBrowserLikeHeaders(request *http.Request, userAgent string) {
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	request.Header.Set("Cache-Control", "no-cache")
	request.Header.Set("Connection", "keep-alive")
}

// ExecuteRequest performs a single HTTP request bound to ctx, so a caller
// disconnect or deadline aborts the upstream fetch instead of holding a
// socket open. Non-2xx responses are returned as errors with the body closed.
func ExecuteRequest(ctx context.Context, client *http.Client, method, url, userAgent string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, WrapError(err, ErrorCategoryValidation, "INVALID_REQUEST", "HTTPClient", "ExecuteRequest", false)
	}
	SetBrowserLikeHeaders(request, userAgent)

	response, err := client.Do(request)
	if err != nil {
		return nil, WrapError(err, ErrorCategoryNetwork, "REQUEST_FAILED", "HTTPClient", "ExecuteRequest", true)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		response.Body.Close()
		return nil, NewServiceError(
			ErrorCategoryUpstream,
			fmt.Sprintf("HTTP_%d", response.StatusCode),
			fmt.Sprintf("upstream returned %d %s for %s", response.StatusCode, http.StatusText(response.StatusCode), url),
			"HTTPClient",
			"ExecuteRequest",
			response.StatusCode >= 500 || response.StatusCode == http.StatusTooManyRequests,
			nil,
		)
	}

	return response, nil
}

// CleanupAllClients closes idle connections on all cached clients.
func (f *HTTPClientFactory) CleanupAllClients() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	for key, client := range f.clients {
		if transport, ok := client.Transport.(*http.Transport); ok {
			transport.CloseIdleConnections()
		}
		delete(f.clients, key)
	}

	logrus.WithField("component", "HTTPClientFactory").Debug("Cleaned up all cached HTTP clients")
}
