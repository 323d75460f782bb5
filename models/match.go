package models

// Commentary represents a single ball-by-ball commentary entry.
// Entries are ordered most-recent-first as they appear on the source page.
type Commentary struct {
	Over string `json:"over"`
	Text string `json:"text"`
}

// Reserved keys inside MatchDetails that the orchestrator synthesizes in
// addition to the label/value pairs scraped from the match info table.
const (
	DetailKeyMatch  = "Match"
	DetailKeyTeams  = "teams"
	DetailKeyVenue  = "venue"
	DetailKeySeries = "series"
	DetailKeyTime   = "time"
	DetailKeyDate   = "date"
	DetailKeySquads = "squads"
	DetailKeyToss   = "Toss"
)

// MatchDetails maps info labels ("Toss", "Umpires", ...) to their values,
// plus the reserved keys above. Values are strings except for the reserved
// "teams" ([]string) and "squads" (*SquadData) entries.
type MatchDetails map[string]interface{}

// MatchInfo is the composed record produced by the match data service for a
// single scraped match page. It is built fresh per request and has no
// persistence behind it.
type MatchInfo struct {
	Title            string            `json:"title"`
	Status           string            `json:"status"`
	Scores           map[string]string `json:"scores"`
	MatchDetails     MatchDetails      `json:"matchDetails"`
	PlayerOfTheMatch string            `json:"playerOfTheMatch,omitempty"`
	RecentOvers      []string          `json:"recentOvers,omitempty"`
	Commentary       []Commentary      `json:"commentary,omitempty"`
}

// NewMatchInfo returns a MatchInfo with the map fields initialized so
// extractors can populate them without nil checks.
func NewMatchInfo() *MatchInfo {
	return &MatchInfo{
		Scores:       make(map[string]string),
		MatchDetails: make(MatchDetails),
	}
}
