package services

import (
	"regexp"
	"strings"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// AbbreviationMatcher decides whether a short team token seen next to a
// score ("RCB", "MI") refers to a full team name seen elsewhere on the page.
type AbbreviationMatcher interface {
	Matches(abbreviation, fullName string) bool
}

// SubstringMatcher is the default matcher. A token matches a full name when
// either string contains the other, when they share a three-letter prefix,
// or when the token equals the initials of the full name's words.
type SubstringMatcher struct{}

func (SubstringMatcher) Matches(abbreviation, fullName string) bool {
	abbr := strings.ToLower(strings.TrimSpace(abbreviation))
	full := strings.ToLower(strings.TrimSpace(fullName))
	if abbr == "" || full == "" {
		return false
	}

	if strings.Contains(full, abbr) || strings.Contains(abbr, full) {
		return true
	}

	if len(abbr) >= 3 && len(full) >= 3 && abbr[:3] == full[:3] {
		return true
	}

	return abbr == initialsOf(full)
}

func initialsOf(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteByte(word[0])
	}
	return b.String()
}

// TeamScoreResolver identifies the two competing teams and their scores by
// working through page regions from most to least structured. Stages that
// pull from headers run unconditionally; stages that pull from scorecards
// run only while fewer than two teams are known.
type TeamScoreResolver struct {
	matcher AbbreviationMatcher
	logger  *logrus.Entry
}

// NewTeamScoreResolver creates a resolver using the default substring
// matcher.
func NewTeamScoreResolver() *TeamScoreResolver {
	return &TeamScoreResolver{
		matcher: SubstringMatcher{},
		logger:  logrus.WithField("component", "team_resolver"),
	}
}

var (
	titleVersusRegex     = regexp.MustCompile(`(.+?)\s+(?:v|vs|VS)\s+(.+?)(?:,|$)`)
	miniScoreTokenRegex  = regexp.MustCompile(`^([A-Za-z]+)\s+(\d+/\d+.*)`)
	wonByRegex           = regexp.MustCompile(`([A-Za-z\s]+)\s+won by`)
	subheaderVersusRegex = regexp.MustCompile(`([A-Za-z\s]+)\s+vs\s+([A-Za-z\s]+)`)
	headingVersusRegex   = regexp.MustCompile(`([A-Za-z\s]+)\s+(?:v|vs|VS)\s+([A-Za-z\s]+)`)
	battingBowlingRegex  = regexp.MustCompile(`(.*?)(?:Batting|Bowling)`)
)

// ResolveTeamsAndScores fills matchInfo.Scores and returns the resolved team
// names. It is total: when everything fails the teams come back as
// placeholders, never as an error.
func (r *TeamScoreResolver) ResolveTeamsAndScores(document *goquery.Document, rawHTML string, matchInfo *models.MatchInfo) []string {
	var teams []string
	teamScores := make(map[string]string)

	addTeam := func(name string) {
		name = strings.TrimSpace(name)
		if len(name) <= 1 {
			return
		}
		for _, existing := range teams {
			if existing == name {
				return
			}
		}
		teams = append(teams, name)
	}

	// Stage 1: page title.
	titleText := strings.TrimSpace(document.Find("title").Text())
	if m := titleVersusRegex.FindStringSubmatch(titleText); m != nil {
		addTeam(m[1])
		addTeam(m[2])
	}

	// Stage 2: mini-scoreboard tokens carry an abbreviated team name plus
	// its score. Each token is matched against the teams known so far and
	// also kept aside for a second application once the team list is final.
	document.Find(".cb-min-tm").Each(func(i int, token *goquery.Selection) {
		text := strings.TrimSpace(token.Text())
		m := miniScoreTokenRegex.FindStringSubmatch(text)
		if m == nil {
			return
		}
		abbreviation := strings.TrimSpace(m[1])
		score := strings.TrimSpace(m[2])
		teamScores[abbreviation] = score

		for _, team := range teams {
			if r.matcher.Matches(abbreviation, team) {
				matchInfo.Scores[team] = score
			}
		}
	})

	// Stage 3: result line names the winner.
	statusText := strings.TrimSpace(document.Find(".cb-min-stts").Text())
	if m := wonByRegex.FindStringSubmatch(statusText); m != nil {
		addTeam(m[1])
	}

	// Stages 4-8 only run while the pair is incomplete.
	if len(teams) < 2 {
		subheader := strings.TrimSpace(document.Find(".cb-nav-subhdr").Text())
		if m := subheaderVersusRegex.FindStringSubmatch(subheader); m != nil {
			addTeam(m[1])
			addTeam(m[2])
		}
	}

	if len(teams) < 2 {
		header := strings.TrimSpace(document.Find(".cb-nav-hdr").Text())
		if m := headingVersusRegex.FindStringSubmatch(header); m != nil {
			addTeam(m[1])
			addTeam(m[2])
		}
	}

	if len(teams) < 2 {
		document.Find(".cb-scrd-itms").Each(func(i int, item *goquery.Selection) {
			heading := strings.TrimSpace(item.Find(".cb-scrd-hdr-rw").Text())
			if heading == "" || strings.Contains(heading, "Extras") || strings.Contains(heading, "Total") {
				return
			}
			addTeam(heading)
		})
	}

	if len(teams) < 2 {
		document.Find(".cb-col-100.cb-scrd-sub-hdr").Each(func(i int, header *goquery.Selection) {
			subHeader := strings.TrimSpace(header.Text())
			if !strings.Contains(subHeader, "Batting") && !strings.Contains(subHeader, "Bowling") {
				return
			}
			if m := battingBowlingRegex.FindStringSubmatch(subHeader); m != nil {
				addTeam(m[1])
			}
		})
	}

	if len(teams) < 2 {
		metaDesc, _ := document.Find(`meta[name="description"]`).Attr("content")
		if m := titleVersusRegex.FindStringSubmatch(metaDesc); m != nil {
			addTeam(m[1])
			addTeam(m[2])
		}
	}

	// Stage 9: sweep the raw HTML for any "X vs Y" occurrence.
	if len(teams) < 2 {
		for _, m := range headingVersusRegex.FindAllStringSubmatch(rawHTML, -1) {
			addTeam(m[1])
			addTeam(m[2])
			if len(teams) >= 2 {
				break
			}
		}
	}

	if len(teams) == 0 {
		teams = []string{"Team 1", "Team 2"}
	} else if len(teams) == 1 {
		teams = append(teams, "Opponent")
	}

	// Mini-scoreboard scores from stage 2 get a second pass against the
	// final team list.
	for abbreviation, score := range teamScores {
		for _, team := range teams {
			if r.matcher.Matches(abbreviation, team) {
				matchInfo.Scores[team] = score
			}
		}
	}

	if len(matchInfo.Scores) == 0 {
		r.extractScorecardScores(document, matchInfo)
	}

	r.logger.WithFields(logrus.Fields{
		"teams":  teams,
		"scores": len(matchInfo.Scores),
	}).Debug("resolved teams and scores")

	return teams
}

// extractScorecardScores is the legacy score path used when the
// mini-scoreboard yielded nothing. Scores are keyed by whatever team text
// the page shows; the orchestrator reconciles those keys with the resolved
// team names afterwards.
func (r *TeamScoreResolver) extractScorecardScores(document *goquery.Document, matchInfo *models.MatchInfo) {
	document.Find(".cb-min-bat-rw").Each(func(i int, row *goquery.Selection) {
		teamText := strings.TrimSpace(row.Find(".cb-min-itm-rw").First().Text())
		scoreText := strings.TrimSpace(row.Find(".cb-min-itm-rw").First().Next().Text())
		if teamText == "" || scoreText == "" {
			return
		}
		if _, present := matchInfo.Scores[teamText]; !present {
			matchInfo.Scores[teamText] = scoreText
		}
	})

	if len(matchInfo.Scores) > 0 {
		return
	}

	document.Find(".cb-lv-scrs-col").Each(func(i int, column *goquery.Selection) {
		liveWell := column.Find(".cb-lv-scrs-well-live").First()
		teamText := strings.TrimSpace(liveWell.Text())
		scoreText := strings.TrimSpace(liveWell.Siblings().Text())
		if teamText == "" || scoreText == "" {
			return
		}
		if _, present := matchInfo.Scores[teamText]; !present {
			matchInfo.Scores[teamText] = scoreText
		}
	})

	if len(matchInfo.Scores) > 0 {
		return
	}

	// Full scorecard: pair each innings header with its Total row.
	document.Find(".cb-scrd-hdr-rw").Each(func(i int, header *goquery.Selection) {
		inningsText := strings.TrimSpace(header.Text())
		if inningsText == "" || strings.Contains(inningsText, "Extras") || strings.Contains(inningsText, "Total") {
			return
		}
		teamName := strings.TrimSpace(strings.Split(inningsText, "Innings")[0])

		scoreText := ""
		header.Parent().Find(".cb-scrd-itms").EachWithBreak(func(j int, item *goquery.Selection) bool {
			if !strings.Contains(item.Text(), "Total") {
				return true
			}
			scoreText = strings.TrimSpace(item.Find(".cb-scrd-itms-rgt").First().Text())
			return false
		})
		if teamName == "" || scoreText == "" {
			return
		}
		if _, present := matchInfo.Scores[teamName]; !present {
			matchInfo.Scores[teamName] = scoreText
		}
	})
}
