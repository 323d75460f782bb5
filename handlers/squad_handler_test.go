package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/services"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
	"github.com/gofiber/fiber/v2"
)

func newSquadTestApp(upstreamURL string) *fiber.App {
	fetcher := services.NewPageFetcher(upstreamURL, "test-agent")
	fetcher.RateLimiter = shared.NewHTTPRequestRateLimiter(0)
	extractor := services.NewSquadExtractor(fetcher, *config.DefaultScraperTimeouts())

	app := fiber.New()
	handler := NewSquadHandler(extractor)
	app.Get("/api/cricbuzz/squads/:matchId", handler.GetSquads)
	app.Get("/api/cricbuzz/debugSquads/*", handler.DebugSquads)
	return app
}

func TestGetSquadsEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "cricket-match-squads") {
			w.Write([]byte(squadPageHTML))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	app := newSquadTestApp(server.URL)

	req := httptest.NewRequest("GET", "/api/cricbuzz/squads/114960", nil)
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
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing data object: %v", envelope)
	}
	team1, ok := data["team1"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing team1: %v", data)
	}
	if team1["name"] != "Royal Challengers Bengaluru" {
		t.Errorf("unexpected team1 name %v", team1["name"])
	}
}

func TestGetSquadsEndpointNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	app := newSquadTestApp(server.URL)

	req := httptest.NewRequest("GET", "/api/cricbuzz/squads/99999", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope["success"] != false {
		t.Errorf("expected failure envelope, got %v", envelope)
	}
}

func TestDebugSquadsEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "cricket-match-squads") {
			w.Write([]byte(squadPageHTML))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	app := newSquadTestApp(server.URL)

	req := httptest.NewRequest("GET", "/api/cricbuzz/debugSquads/live-cricket-scores/114960/rcb-vs-csk-final", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestDebugSquadsEndpointNoMatchID(t *testing.T) {
	app := newSquadTestApp("http://unused.invalid")

	req := httptest.NewRequest("GET", "/api/cricbuzz/debugSquads/some-path-without-id", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp)
	if envelope["message"] != "Could not extract match ID from path" {
		t.Errorf("unexpected message %v", envelope["message"])
	}
}
