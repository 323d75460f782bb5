package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
)

func newTestFetcher(baseURL string) *PageFetcher {
	fetcher := NewPageFetcher(baseURL, "test-agent")
	fetcher.RateLimiter = shared.NewHTTPRequestRateLimiter(0)
	return fetcher
}

func testTimeouts() config.ScraperTimeouts {
	return config.ScraperTimeouts{
		PrimaryPage:   5 * time.Second,
		SecondaryPage: 5 * time.Second,
		SquadPage:     5 * time.Second,
	}
}

func TestExtractCommentaryInline(t *testing.T) {
	html := `<html><body>
		<div><span class="cb-ovr-num">19.6</span><p class="cb-com-ln">SIX! Over long on, that is the match.</p></div>
		<div><span class="cb-ovr-num"></span><p class="cb-com-ln">ADVERTISEMENT text here</p></div>
		<div><span class="cb-ovr-num">19.5</span><p class="cb-com-ln">Single to deep cover.</p></div>
	</body></html>`

	extractor := NewCommentaryExtractor(newTestFetcher("http://unused.invalid"), testTimeouts())
	matchInfo := models.NewMatchInfo()
	extractor.ExtractCommentary(context.Background(), parseTestDocument(t, html), matchInfo, "live-cricket-scores/1/x")

	if len(matchInfo.Commentary) != 2 {
		t.Fatalf("expected 2 commentary entries, got %d", len(matchInfo.Commentary))
	}
	if matchInfo.Commentary[0].Over != "19.6" || matchInfo.Commentary[0].Text != "SIX! Over long on, that is the match." {
		t.Errorf("unexpected first entry %+v", matchInfo.Commentary[0])
	}
}

func TestExtractCommentaryFallsBackToCommentaryEndpoint(t *testing.T) {
	commentaryHTML := `<html><body>
		<div class="cb-col cb-col-100">
			<span class="cb-ovr-num">12.3</span>
			<p class="cb-com-ln">Driven through the covers for four.</p>
		</div>
		<div class="cb-col cb-col-100">
			<p class="cb-com-ln">ADVERTISEMENT</p>
		</div>
	</body></html>`

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(commentaryHTML))
	}))
	defer server.Close()

	// The match page itself has no inline commentary but links to the
	// commentary tab.
	matchPageHTML := `<html><body>
		<a href="/cricket-commentary/114960/match">Commentary</a>
	</body></html>`

	extractor := NewCommentaryExtractor(newTestFetcher(server.URL), testTimeouts())
	matchInfo := models.NewMatchInfo()
	extractor.ExtractCommentary(context.Background(), parseTestDocument(t, matchPageHTML), matchInfo, "live-cricket-scores/114960/match")

	if requestedPath != "/api/html/cricket-commentary/live-cricket-scores/114960/match" {
		t.Errorf("unexpected fallback path %q", requestedPath)
	}
	if len(matchInfo.Commentary) != 1 {
		t.Fatalf("expected 1 commentary entry, got %d", len(matchInfo.Commentary))
	}
	if matchInfo.Commentary[0].Over != "12.3" {
		t.Errorf("unexpected over %q", matchInfo.Commentary[0].Over)
	}
}

func TestExtractCommentarySecondFallback(t *testing.T) {
	fullCommentaryHTML := `<html><body>
		<div class="cb-col cb-col-100">
			<span class="cb-ovr-num">8.1</span>
			<p class="cb-com-ln">Beaten outside off.</p>
		</div>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/live-cricket-full-commentary/some-match" {
			w.Write([]byte(fullCommentaryHTML))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	matchPageHTML := `<html><body>
		<a href="/cricket-commentary/1/x">Commentary</a>
	</body></html>`

	extractor := NewCommentaryExtractor(newTestFetcher(server.URL), testTimeouts())
	matchInfo := models.NewMatchInfo()
	extractor.ExtractCommentary(context.Background(), parseTestDocument(t, matchPageHTML), matchInfo, "live-cricket-scores/1/some-match")

	if len(matchInfo.Commentary) != 1 {
		t.Fatalf("expected 1 commentary entry from second fallback, got %d", len(matchInfo.Commentary))
	}
	if matchInfo.Commentary[0].Text != "Beaten outside off." {
		t.Errorf("unexpected text %q", matchInfo.Commentary[0].Text)
	}
}

func TestExtractCommentarySkippedWithoutLink(t *testing.T) {
	// No inline commentary and no commentary link anywhere: the network
	// fallbacks must not fire.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the upstream")
	}))
	defer server.Close()

	extractor := NewCommentaryExtractor(newTestFetcher(server.URL), testTimeouts())
	matchInfo := models.NewMatchInfo()
	extractor.ExtractCommentary(context.Background(), parseTestDocument(t, "<html><body><p>static</p></body></html>"), matchInfo, "live-cricket-scores/1/x")

	if len(matchInfo.Commentary) != 0 {
		t.Errorf("expected no commentary, got %v", matchInfo.Commentary)
	}
}
