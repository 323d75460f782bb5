package services

import (
	"context"
	"time"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// RenderFetcher fetches a page through a headless browser. It exists purely
// as a fallback for when the upstream site rejects plain HTTP clients; it is
// disabled unless ENABLE_HEADLESS_FALLBACK is set because a browser launch
// per request is far too heavy for the normal path.
type RenderFetcher struct {
	userAgent string
	timeout   time.Duration
	logger    *logrus.Entry
}

// NewRenderFetcher creates a headless page fetcher
func NewRenderFetcher(userAgent string, timeout time.Duration) *RenderFetcher {
	return &RenderFetcher{
		userAgent: userAgent,
		timeout:   timeout,
		logger:    logrus.WithField("component", "render_fetcher"),
	}
}

// FetchRenderedPage loads the URL in a headless browser and returns the
// rendered page once the body is present.
func (r *RenderFetcher) FetchRenderedPage(ctx context.Context, url string) (*Page, error) {
	options := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(r.userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, options...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, r.timeout)
	defer cancelTimeout()

	var renderedHTML string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &renderedHTML),
	)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"url":   url,
			"error": err.Error(),
		}).Warn("headless fetch failed")
		return nil, shared.WrapError(err, shared.ErrorCategoryNetwork, "HEADLESS_FETCH_FAILED", "RenderFetcher", "FetchRenderedPage", false)
	}

	return ParsePage(renderedHTML)
}
