package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// Page bundles a parsed document with the raw HTML it came from. The team
// resolver's last-resort pass regexes the raw markup directly, so both forms
// travel together.
type Page struct {
	Document *goquery.Document
	RawHTML  string
}

// PageFetcher fetches upstream HTML pages with browser-like headers and
// per-request timeouts. Every fetch is bound to the caller's context so a
// client disconnect aborts the upstream request.
type PageFetcher struct {
	BaseURL     string
	UserAgent   string
	clients     *shared.HTTPClientFactory
	RateLimiter *shared.HTTPRequestRateLimiter
}

// NewPageFetcher creates a fetcher for the given upstream base URL.
func NewPageFetcher(baseURL, userAgent string) *PageFetcher {
	return &PageFetcher{
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		UserAgent:   userAgent,
		clients:     shared.NewHTTPClientFactory(15 * time.Second),
		RateLimiter: shared.NewHTTPRequestRateLimiter(1 * time.Second),
	}
}

// ResolveURL joins a site-relative path onto the upstream base URL. Absolute
// URLs pass through unchanged.
func (f *PageFetcher) ResolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return f.BaseURL + "/" + strings.TrimPrefix(path, "/")
}

// FetchDocument fetches and parses one page. Non-2xx statuses and network
// failures come back as ServiceErrors; callers decide whether that is fatal
// (primary page) or merely degrades the result (everything else).
func (f *PageFetcher) FetchDocument(ctx context.Context, url string, timeout time.Duration) (*Page, error) {
	client := f.clients.ClientForTimeout(timeout)

	response, err := shared.ExecuteRequest(ctx, client, "GET", f.ResolveURL(url), f.UserAgent)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "BODY_READ_FAILED", "PageFetcher", "FetchDocument", true)
	}

	return ParsePage(string(body))
}

// FetchDocumentPolite is FetchDocument behind the shared rate limiter. The
// squad extractor's candidate-URL loop runs through here so sequential
// probing never turns into a burst against the upstream site.
func (f *PageFetcher) FetchDocumentPolite(ctx context.Context, url string, timeout time.Duration) (*Page, error) {
	f.RateLimiter.EnforceRateLimit()
	return f.FetchDocument(ctx, url, timeout)
}

// ParsePage builds a Page from raw HTML.
func ParsePage(html string) (*Page, error) {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"component": "PageFetcher",
			"method":    "ParsePage",
		}).WithError(err).Error("Failed to parse HTML document")
		return nil, shared.WrapError(err, shared.ErrorCategoryParsing, "HTML_PARSE_FAILED", "PageFetcher", "ParsePage", false)
	}

	return &Page{Document: document, RawHTML: html}, nil
}
