package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
)

const schedulePageHTML = `<html><body>
	<div class="cb-sch-lst-itm">
		<div class="cb-lv-scr-mtch-hdr">Sat, May 31</div>
		<div class="cb-sch-tm-nm">Royal Challengers Bengaluru</div>
		<div class="cb-sch-tm-nm">Punjab Kings</div>
		<div class="cb-sch-dt-vnu">Ahmedabad, 7:30 PM</div>
		<div class="cb-col-60 cb-col cb-lst-itm-sm">Qualifier 1, T20</div>
		<div class="cb-text-complete">RCB won by 8 wickets</div>
		<div class="cb-col-50 cb-ovr-flo">101/2 (10)</div>
		<div class="cb-col-50 cb-ovr-flo">101/10 (14.1)</div>
		<a href="/live-cricket-scores/115016/rcb-vs-pbks-qualifier-1">view</a>
	</div>
	<div class="cb-sch-lst-itm">
		<div class="cb-lv-scr-mtch-hdr">Sun, Jun 01</div>
		<div class="cb-sch-tm-nm">Gujarat Titans</div>
		<div class="cb-sch-tm-nm">Mumbai Indians</div>
		<div class="cb-sch-dt-vnu">Mullanpur, 7:30 PM</div>
	</div>
</body></html>`

const fixturesPageHTML = `<html><body>
	<div class="cb-lst-mtch-sm">
		<div class="cb-lv-scr-mtch-hdr">Tue, Jun 03</div>
		<div class="cb-mtch-lst-itm-tm">Royal Challengers Bengaluru</div>
		<div class="cb-mtch-lst-itm-tm">Chennai Super Kings</div>
		<div class="cb-venue-dt-cal">Ahmedabad, 7:30 PM</div>
		<div class="cb-text-gray">Final</div>
		<a href="/live-cricket-scores/115030/rcb-vs-csk-final">view</a>
	</div>
</body></html>`

func newTestSeriesService(baseURL string) *SeriesService {
	cfg := &config.Config{
		CricbuzzBaseURL: baseURL,
		UserAgent:       "test-agent",
	}
	return NewSeriesService(cfg, shared.NewHTTPRequestRateLimiter(0))
}

func TestGetIPLMatchesFromSchedulePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/matches") {
			t.Error("fixtures fallback should not fire when the schedule has rows")
			return
		}
		w.Write([]byte(schedulePageHTML))
	}))
	defer server.Close()

	matches, err := newTestSeriesService(server.URL).GetIPLMatches()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	first := matches[0]
	if first.Team1 != "Royal Challengers Bengaluru" || first.Team2 != "Punjab Kings" {
		t.Errorf("unexpected teams %q / %q", first.Team1, first.Team2)
	}
	if first.Status != "RCB won by 8 wickets" {
		t.Errorf("unexpected status %q", first.Status)
	}
	if first.Scores["Royal Challengers Bengaluru"] != "101/2 (10)" {
		t.Errorf("unexpected scores %v", first.Scores)
	}
	if first.MatchID != "115016" {
		t.Errorf("unexpected match id %q", first.MatchID)
	}

	second := matches[1]
	if second.Status != "Upcoming" {
		t.Errorf("match without status text should default to Upcoming, got %q", second.Status)
	}
	if len(second.Scores) != 0 {
		t.Errorf("upcoming match should carry no scores, got %v", second.Scores)
	}
}

func TestGetIPLMatchesFallsBackToFixtures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/matches") {
			w.Write([]byte(fixturesPageHTML))
			return
		}
		w.Write([]byte("<html><body><p>no rows</p></body></html>"))
	}))
	defer server.Close()

	matches, err := newTestSeriesService(server.URL).GetIPLMatches()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(matches))
	}
	if matches[0].Team2 != "Chennai Super Kings" || matches[0].Status != "Upcoming" {
		t.Errorf("unexpected fixture %+v", matches[0])
	}
	if matches[0].MatchID != "115030" {
		t.Errorf("unexpected match id %q", matches[0].MatchID)
	}
}

func TestGetIPLMatchesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := newTestSeriesService(server.URL).GetIPLMatches(); err == nil {
		t.Fatal("expected error when the series page cannot be fetched")
	}
}
