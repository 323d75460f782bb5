package models

import (
	"regexp"
	"strings"
)

// Player represents one squad member with the annotations scraped from the
// squad or scorecard page already stripped from the display name.
type Player struct {
	Name      string `json:"name"`
	IsCaptain bool   `json:"isCaptain"`
	Role      string `json:"role"`
	ImageURL  string `json:"imageUrl"`
}

// TeamSquad holds the selected players for one side of a match.
type TeamSquad struct {
	Name        string   `json:"name"`
	FlagURL     string   `json:"flagUrl"`
	PlayingXI   []Player `json:"playingXI"`
	Substitutes []Player `json:"substitutes"`
	Bench       []Player `json:"bench"`
}

// SquadData is keyed positionally (team1/team2), not by team name, because
// the source pages order squads by column rather than by any stable key.
type SquadData struct {
	Team1 TeamSquad `json:"team1"`
	Team2 TeamSquad `json:"team2"`
}

// HasPlayers reports whether either side has at least one playing-XI entry.
func (s *SquadData) HasPlayers() bool {
	return len(s.Team1.PlayingXI) > 0 || len(s.Team2.PlayingXI) > 0
}

var (
	parenthesizedAnnotationRegex = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	repeatedWhitespaceRegex      = regexp.MustCompile(`\s+`)
)

// CleanPlayerName strips captain/wicketkeeper/role annotations from a raw
// scraped player name. The source occasionally concatenates the role text
// straight onto the name ("Faf du PlessisBatter"); when the remaining name
// ends with the detected role that suffix is stripped too. The transform is
// idempotent: cleaning an already-clean name returns it unchanged.
func CleanPlayerName(rawName, role string) string {
	name := parenthesizedAnnotationRegex.ReplaceAllString(rawName, " ")
	name = repeatedWhitespaceRegex.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if role != "" && role != "Player" && strings.HasSuffix(name, role) {
		name = strings.TrimSpace(strings.TrimSuffix(name, role))
	}

	return name
}

// NewPlayer constructs a Player from raw scraped text. Name cleanup is
// enforced here, at construction time, so no Player ever carries a trailing
// role token or parenthesized annotation.
func NewPlayer(rawName, role, imageURL string) Player {
	if role == "" {
		role = "Player"
	}
	return Player{
		Name:      CleanPlayerName(rawName, role),
		IsCaptain: strings.Contains(rawName, "(C)") || strings.Contains(rawName, "(c)"),
		Role:      role,
		ImageURL:  imageURL,
	}
}
