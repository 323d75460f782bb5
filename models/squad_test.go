package models

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCleanPlayerNameStripsAnnotations(t *testing.T) {
	cases := []struct {
		rawName string
		role    string
		want    string
	}{
		{"Virat Kohli (C)", "Batter", "Virat Kohli"},
		{"MS Dhoni (WK)", "WK-Batter", "MS Dhoni"},
		{"Faf du Plessis(C)Batter", "Batter", "Faf du Plessis"},
		{"Faf du PlessisBatter", "Batter", "Faf du Plessis"},
		{"Jasprit   Bumrah", "Bowler", "Jasprit Bumrah"},
		{"Rohit Sharma", "Player", "Rohit Sharma"},
		{"Rohit Sharma", "", "Rohit Sharma"},
	}

	for _, tc := range cases {
		if got := CleanPlayerName(tc.rawName, tc.role); got != tc.want {
			t.Errorf("CleanPlayerName(%q, %q) = %q, want %q", tc.rawName, tc.role, got, tc.want)
		}
	}
}

func TestCleanPlayerNameIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("cleaning an already-clean name changes nothing", prop.ForAll(
		func(rawName, role string) bool {
			once := CleanPlayerName(rawName, role)
			twice := CleanPlayerName(once, role)
			return once == twice
		},
		gen.OneConstOf(
			"Virat Kohli (C)", "MS Dhoni (WK)", "Faf du Plessis(C)Batter",
			"Ruturaj Gaikwad(C)", "Jos Buttler (WK) Batter", "  Shubman   Gill ",
			"Rashid Khan", "Pat Cummins(C)Bowler", "",
		),
		gen.OneConstOf("Batter", "Bowler", "WK-Batter", "All-Rounder", "Player", ""),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNewPlayerCaptainDetection(t *testing.T) {
	captain := NewPlayer("Ruturaj Gaikwad (C)", "Batter", "")
	if !captain.IsCaptain {
		t.Error("expected (C) annotation to mark the player as captain")
	}
	if captain.Name != "Ruturaj Gaikwad" {
		t.Errorf("unexpected cleaned name %q", captain.Name)
	}

	lowercase := NewPlayer("Sam Curran (c)", "All-Rounder", "")
	if !lowercase.IsCaptain {
		t.Error("expected lowercase (c) annotation to mark the player as captain")
	}

	regular := NewPlayer("Devon Conway", "Batter", "")
	if regular.IsCaptain {
		t.Error("regular player should not be captain")
	}
}

func TestNewPlayerDefaultsRole(t *testing.T) {
	player := NewPlayer("Moeen Ali", "", "https://example.com/p.jpg")
	if player.Role != "Player" {
		t.Errorf("expected default role Player, got %q", player.Role)
	}
	if player.ImageURL != "https://example.com/p.jpg" {
		t.Errorf("image url not preserved: %q", player.ImageURL)
	}
}

func TestSquadDataHasPlayers(t *testing.T) {
	empty := &SquadData{}
	if empty.HasPlayers() {
		t.Error("empty squad data should report no players")
	}

	oneSide := &SquadData{}
	oneSide.Team2.PlayingXI = append(oneSide.Team2.PlayingXI, NewPlayer("Tim David", "Batter", ""))
	if !oneSide.HasPlayers() {
		t.Error("squad data with one populated side should report players")
	}
}
