package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// SquadExtractor fetches and parses the playing squads for a match. Squad
// markup lives behind several different URL shapes depending on match state,
// so the extractor probes a fixed candidate list in order and then applies
// one of three parse strategies to whichever page answered.
type SquadExtractor struct {
	fetcher  *PageFetcher
	timeouts config.ScraperTimeouts
	logger   *logrus.Entry
}

// NewSquadExtractor creates a new squad extraction service
func NewSquadExtractor(fetcher *PageFetcher, timeouts config.ScraperTimeouts) *SquadExtractor {
	return &SquadExtractor{
		fetcher:  fetcher,
		timeouts: timeouts,
		logger:   logrus.WithField("component", "squad_extractor"),
	}
}

var (
	pathTeamsRegex  = regexp.MustCompile(`(?i)/(\w+)-vs-(\w+)`)
	versusNameRegex = regexp.MustCompile(`(?i)(.+?)\s+(?:v|vs|VS)\s+(.+?)(?:,|$)`)
)

// candidateURLs returns the squad page URLs to probe, most specific first.
func candidateURLs(matchID, originalPath string) []string {
	urls := []string{
		"/cricket-match-squads/" + matchID,
		"/live-cricket-scorecard/" + matchID,
		"/api/html/cricket-squads/" + matchID,
		"/cricket-scores/" + matchID,
		"/cricket-scorecard/" + matchID,
	}
	if originalPath != "" {
		urls = append(urls, "/"+strings.TrimPrefix(originalPath, "/"))
	}
	return urls
}

// ExtractSquadData returns the squads for both teams, or (nil, nil) when no
// candidate page yields player data. The only error returned is context
// cancellation; individual fetch and parse failures are logged and skipped.
func (s *SquadExtractor) ExtractSquadData(ctx context.Context, matchID, originalPath string) (*models.SquadData, error) {
	squadData := &models.SquadData{}

	if m := pathTeamsRegex.FindStringSubmatch(originalPath); m != nil {
		squadData.Team1.Name = strings.ToUpper(m[1])
		squadData.Team2.Name = strings.ToUpper(m[2])
	}

	var page *Page
	fetchedURL := ""
	for _, candidate := range candidateURLs(matchID, originalPath) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fetched, err := s.fetcher.FetchDocumentPolite(ctx, candidate, s.timeouts.SquadPage)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"url":   candidate,
				"error": err.Error(),
			}).Debug("squad candidate fetch failed")
			continue
		}
		page = fetched
		fetchedURL = candidate
		break
	}

	if page == nil {
		s.logger.WithField("match_id", matchID).Warn("no squad page reachable")
		return nil, nil
	}

	document := page.Document
	s.fillTeamNames(document, squadData)
	s.extractTeamFlags(document, squadData)

	// The fetched page may only link to the real squads tab. Follow the
	// link once unless we already landed on a squads URL.
	if squadsTabLink, exists := document.Find(`a.cb-nav-tab:contains("Squads")`).Attr("href"); exists && !strings.Contains(fetchedURL, "squads") {
		if squadsPage, err := s.fetcher.FetchDocumentPolite(ctx, squadsTabLink, s.timeouts.SquadPage); err == nil {
			s.fillTeamNames(squadsPage.Document, squadData)
			if s.parseSquadPage(squadsPage.Document, squadData) {
				return squadData, nil
			}
		} else {
			s.logger.WithField("error", err.Error()).Debug("squads tab fetch failed")
		}
	}

	isSquadPage := document.Find(".cb-col-50.cb-play11-lft-col").Length() > 0 ||
		document.Find(".cb-sq-lft-col").Length() > 0

	if isSquadPage {
		s.parseSquadPage(document, squadData)
	} else {
		s.parseScorecardPage(document, squadData)
	}

	if squadData.HasPlayers() {
		return squadData, nil
	}

	// Team names alone still make a useful skeleton response.
	if squadData.Team1.Name != "" && squadData.Team2.Name != "" {
		return squadData, nil
	}

	s.logger.WithField("match_id", matchID).Info("no player data found for match")
	return nil, nil
}

// fillTeamNames fills in missing team names from the navigation header or
// title, never overwriting names already known.
func (s *SquadExtractor) fillTeamNames(document *goquery.Document, squadData *models.SquadData) {
	for _, source := range []string{
		strings.TrimSpace(document.Find("h1.cb-nav-hdr").Text()),
		strings.TrimSpace(document.Find("title").Text()),
	} {
		if m := versusNameRegex.FindStringSubmatch(source); m != nil {
			if squadData.Team1.Name == "" {
				squadData.Team1.Name = strings.TrimSpace(m[1])
			}
			if squadData.Team2.Name == "" {
				squadData.Team2.Name = strings.TrimSpace(m[2])
			}
			return
		}
	}
}

// extractTeamFlags tries progressively looser image heuristics until both
// flag URLs are set or the sources run out.
func (s *SquadExtractor) extractTeamFlags(document *goquery.Document, squadData *models.SquadData) {
	if src, ok := document.Find(".cb-teams-hdr .cb-team1 img").Attr("src"); ok {
		squadData.Team1.FlagURL = src
	}
	if src, ok := document.Find(".cb-teams-hdr .cb-team2 img").Attr("src"); ok {
		squadData.Team2.FlagURL = src
	}
	if squadData.Team1.FlagURL != "" && squadData.Team2.FlagURL != "" {
		return
	}

	assign := func(imageURL string) {
		if squadData.Team1.FlagURL == "" {
			squadData.Team1.FlagURL = imageURL
		} else if squadData.Team2.FlagURL == "" && imageURL != squadData.Team1.FlagURL {
			squadData.Team2.FlagURL = imageURL
		}
	}

	// Exact CDN flag pattern, with column position deciding the side when
	// available.
	document.Find("img").Each(func(i int, img *goquery.Selection) {
		imageURL, _ := img.Attr("src")
		if imageURL == "" || !strings.Contains(imageURL, "/i1/c") || !strings.Contains(imageURL, "team_flag.jpg") {
			return
		}

		section := img.Closest(".cb-col-50")
		switch {
		case section.HasClass("cb-play11-lft-col") || img.Closest(".cb-sq-lft-col").Length() > 0:
			squadData.Team1.FlagURL = imageURL
		case section.HasClass("cb-play11-rt-col") || img.Closest(".cb-sq-rgt-col").Length() > 0:
			squadData.Team2.FlagURL = imageURL
		default:
			assign(imageURL)
		}
	})
	if squadData.Team1.FlagURL != "" && squadData.Team2.FlagURL != "" {
		return
	}

	document.Find("img").Each(func(i int, img *goquery.Selection) {
		imageURL, _ := img.Attr("src")
		if imageURL != "" && strings.Contains(imageURL, "team_flag.jpg") {
			assign(imageURL)
		}
	})
	if squadData.Team1.FlagURL != "" && squadData.Team2.FlagURL != "" {
		return
	}

	document.Find(".cb-team-flag-img img, .cb-flag-img img, .cb-sqd-hdr-img img").Each(func(i int, img *goquery.Selection) {
		imageURL, _ := img.Attr("src")
		if imageURL != "" && (strings.Contains(imageURL, "team_flag") || strings.Contains(imageURL, "/i1/c")) {
			assign(imageURL)
		}
	})
	if squadData.Team1.FlagURL != "" && squadData.Team2.FlagURL != "" {
		return
	}

	document.Find(".cb-sq-lft-col img, .cb-sq-rgt-col img").Each(func(i int, img *goquery.Selection) {
		imageURL, _ := img.Attr("src")
		if imageURL != "" && (strings.Contains(imageURL, "flags") || strings.Contains(imageURL, "team_flag") || strings.Contains(imageURL, "/i1/c")) {
			assign(imageURL)
		}
	})
	if squadData.Team1.FlagURL != "" && squadData.Team2.FlagURL != "" {
		return
	}

	// Last resort: flag-sized images.
	document.Find("img").Each(func(i int, img *goquery.Selection) {
		imageURL, _ := img.Attr("src")
		if imageURL == "" {
			return
		}
		if strings.Contains(imageURL, "72x54") || strings.Contains(imageURL, "45x30") ||
			(strings.Contains(imageURL, "/i1/c") && strings.Contains(imageURL, "flag")) {
			assign(imageURL)
		}
	})
}

// parseSquadPage handles dedicated squad pages: the two-column playing-XI
// layout first, then the tournament squad-box layout. Returns whether any
// player was found.
func (s *SquadExtractor) parseSquadPage(document *goquery.Document, squadData *models.SquadData) bool {
	foundPlayers := false

	parseColumn := func(containerSelector, nameSelector string, team *models.TeamSquad) {
		document.Find(containerSelector).Each(func(i int, card *goquery.Selection) {
			rawName := strings.TrimSpace(card.Find(nameSelector).Text())
			if rawName == "" {
				return
			}
			foundPlayers = true

			imageURL, _ := card.Find("img").Attr("src")
			role := strings.TrimSpace(card.Find(".cb-font-12").Text())
			player := models.NewPlayer(rawName, role, imageURL)

			// The first eleven cards are the XI regardless of styling;
			// past that, card classes separate substitutes from bench.
			switch {
			case i < 11:
				team.PlayingXI = append(team.PlayingXI, player)
			case card.HasClass("cb-bg-player-out") || card.HasClass("cb-sq-plyr-sub"):
				team.Substitutes = append(team.Substitutes, player)
			default:
				team.Bench = append(team.Bench, player)
			}
		})
	}

	parseColumn(
		".cb-col-50.cb-play11-lft-col .cb-player-card-left, .cb-col-50.cb-play11-lft-col .cb-sq-plyr-cn",
		".cb-player-name-left, .cb-sq-plyr-name",
		&squadData.Team1,
	)
	parseColumn(
		".cb-col-50.cb-play11-rt-col .cb-player-card-right, .cb-col-50.cb-play11-rt-col .cb-sq-plyr-cn",
		".cb-player-name-right, .cb-sq-plyr-name",
		&squadData.Team2,
	)

	if foundPlayers {
		return true
	}

	document.Find(".cb-minfo-tm-nm").Each(func(teamIndex int, teamHeader *goquery.Selection) {
		team := &squadData.Team1
		if teamIndex != 0 {
			team = &squadData.Team2
		}

		if teamName := strings.TrimSpace(teamHeader.Text()); teamName != "" && team.Name == "" {
			team.Name = teamName
		}

		teamHeader.Closest(".cb-col-67").Find(".cb-col-50 a").Each(func(i int, link *goquery.Selection) {
			rawName := strings.TrimSpace(link.Text())
			if rawName == "" {
				return
			}
			foundPlayers = true

			imageURL, _ := link.Find("img").Attr("src")
			role := strings.TrimSpace(link.Find(".cb-font-12").Text())
			team.PlayingXI = append(team.PlayingXI, models.NewPlayer(rawName, role, imageURL))
		})
	})

	return foundPlayers
}

// parseScorecardPage recovers players from a scorecard when no squad page
// exists: innings batting rows map to the batting team, bowling tables map
// to the opposite team. Returns whether any player was found.
func (s *SquadExtractor) parseScorecardPage(document *goquery.Document, squadData *models.SquadData) bool {
	foundPlayers := false
	var currentTeam *models.TeamSquad

	addUnique := func(team *models.TeamSquad, player models.Player) {
		for _, existing := range team.PlayingXI {
			if existing.Name == player.Name {
				return
			}
		}
		team.PlayingXI = append(team.PlayingXI, player)
	}

	document.Find(".cb-col-100.cb-scrd-itms").Each(func(i int, innings *goquery.Selection) {
		headerText := strings.TrimSpace(innings.Find(".cb-scrd-hdr-rw").Text())
		if strings.Contains(headerText, "Innings") {
			teamName := strings.TrimSpace(strings.ReplaceAll(headerText, "Innings", ""))
			if i == 0 {
				currentTeam = &squadData.Team1
			} else {
				currentTeam = &squadData.Team2
			}
			if currentTeam.Name == "" {
				currentTeam.Name = teamName
			}
		}
		if currentTeam == nil {
			return
		}

		innings.Find(".cb-col-27.cb-col").Each(func(j int, cell *goquery.Selection) {
			rawName := strings.TrimSpace(cell.Text())
			if rawName == "" || strings.Contains(rawName, "Did not bat") ||
				strings.Contains(rawName, "Extras") || strings.Contains(rawName, "Total") {
				return
			}
			foundPlayers = true
			addUnique(currentTeam, models.NewPlayer(rawName, "", ""))
		})
	})

	document.Find(".cb-col-100.cb-scrd-itms-bwl").Each(func(i int, table *goquery.Selection) {
		team := &squadData.Team2
		if i != 0 {
			team = &squadData.Team1
		}

		table.Find(".cb-col-40.cb-col").Each(func(j int, cell *goquery.Selection) {
			rawName := strings.TrimSpace(cell.Text())
			if rawName == "" {
				return
			}
			foundPlayers = true
			addUnique(team, models.NewPlayer(rawName, "Bowler", ""))
		})
	})

	return foundPlayers
}
