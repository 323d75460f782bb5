package models

// MatchSummary is one row of a series listing (schedule or fixtures page).
type MatchSummary struct {
	Date      string            `json:"date"`
	Team1     string            `json:"team1"`
	Team2     string            `json:"team2"`
	VenueTime string            `json:"venueTime"`
	MatchInfo string            `json:"matchInfo"`
	Status    string            `json:"status"`
	Scores    map[string]string `json:"scores"`
	MatchLink string            `json:"matchLink,omitempty"`
	MatchID   string            `json:"matchId,omitempty"`
}
