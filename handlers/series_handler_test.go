package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/services"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
	"github.com/gofiber/fiber/v2"
)

const schedulePageHTML = `<html><body>
	<div class="cb-sch-lst-itm">
		<div class="cb-lv-scr-mtch-hdr">Tue, Jun 03</div>
		<div class="cb-sch-tm-nm">Royal Challengers Bengaluru</div>
		<div class="cb-sch-tm-nm">Chennai Super Kings</div>
		<div class="cb-sch-dt-vnu">Ahmedabad, 7:30 PM</div>
		<div class="cb-text-live">Live</div>
		<a href="/live-cricket-scores/115030/rcb-vs-csk-final">view</a>
	</div>
</body></html>`

func newSeriesTestApp(upstreamURL string) *fiber.App {
	cfg := &config.Config{
		CricbuzzBaseURL: upstreamURL,
		UserAgent:       "test-agent",
	}
	seriesService := services.NewSeriesService(cfg, shared.NewHTTPRequestRateLimiter(0))

	app := fiber.New()
	handler := NewSeriesHandler(seriesService)
	app.Get("/api/cricbuzz/ipl", handler.GetIPLMatches)
	return app
}

func TestGetIPLMatchesEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(schedulePageHTML))
	}))
	defer server.Close()

	app := newSeriesTestApp(server.URL)

	req := httptest.NewRequest("GET", "/api/cricbuzz/ipl", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope["success"] != true {
		t.Errorf("expected success envelope, got %v", envelope)
	}
	matches, ok := envelope["matches"].([]interface{})
	if !ok || len(matches) != 1 {
		t.Fatalf("expected one match row, got %v", envelope["matches"])
	}
	row := matches[0].(map[string]interface{})
	if row["team1"] != "Royal Challengers Bengaluru" || row["status"] != "Live" {
		t.Errorf("unexpected row %v", row)
	}
	if row["matchId"] != "115030" {
		t.Errorf("unexpected match id %v", row["matchId"])
	}
}

func TestGetIPLMatchesEndpointUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	app := newSeriesTestApp(server.URL)

	req := httptest.NewRequest("GET", "/api/cricbuzz/ipl", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope["message"] != "Failed to fetch IPL matches data" {
		t.Errorf("unexpected message %v", envelope["message"])
	}
}
