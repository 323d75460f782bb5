package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MatchService orchestrates a full match scrape: it fetches the match page,
// runs every extractor over it, reconciles scores against team names, pulls
// squads through their own page probes, and assembles the composed record.
// Only the primary page fetch is fatal; every later stage degrades to an
// absent or placeholder field.
type MatchService struct {
	fetcher    *PageFetcher
	renderer   *RenderFetcher
	extractor  *FieldExtractor
	resolver   *TeamScoreResolver
	commentary *CommentaryExtractor
	squads     *SquadExtractor
	cache      *MatchCache
	matcher    AbbreviationMatcher
	timeouts   config.ScraperTimeouts
	Metrics    *shared.ServiceMetrics
	logger     *logrus.Entry
}

// NewMatchService wires the full extraction pipeline from configuration.
func NewMatchService(cfg *config.Config) *MatchService {
	timeouts := *config.DefaultScraperTimeouts()
	fetcher := NewPageFetcher(cfg.CricbuzzBaseURL, cfg.UserAgent)
	utility := NewUtilityService()

	var renderer *RenderFetcher
	if cfg.EnableHeadlessFallback {
		renderer = NewRenderFetcher(cfg.UserAgent, timeouts.PrimaryPage)
	}

	return &MatchService{
		fetcher:    fetcher,
		renderer:   renderer,
		extractor:  NewFieldExtractor(utility),
		resolver:   NewTeamScoreResolver(),
		commentary: NewCommentaryExtractor(fetcher, timeouts),
		squads:     NewSquadExtractor(fetcher, timeouts),
		cache:      NewMatchCache(cfg.GetCacheTTL()),
		matcher:    SubstringMatcher{},
		timeouts:   timeouts,
		Metrics:    shared.NewServiceMetrics("match_service"),
		logger:     logrus.WithField("component", "match_service"),
	}
}

// SquadExtractor exposes the squad pipeline for the standalone squad
// endpoint, which shares this service's fetcher and rate limiter.
func (s *MatchService) SquadExtractor() *SquadExtractor {
	return s.squads
}

// RateLimiter exposes the shared upstream rate limiter so sibling services
// hitting the same site stay behind one delay window.
func (s *MatchService) RateLimiter() *shared.HTTPRequestRateLimiter {
	return s.fetcher.RateLimiter
}

// Close stops background workers and releases pooled connections.
func (s *MatchService) Close() {
	s.cache.Stop()
	s.fetcher.clients.CleanupAllClients()
}

var (
	miniScorePairRegex = regexp.MustCompile(`^([A-Za-z\s]+)\s+(\d+/\d+.*)`)
	titleDatePartRegex = regexp.MustCompile(`^([A-Z][a-z]{2}\s+\d{1,2})$`)
	titleFormatRegex   = regexp.MustCompile(`,\s*([^,]+?)\s*,`)

	matchIDRegexes = []*regexp.Regexp{
		regexp.MustCompile(`/(\d+)/`),
		regexp.MustCompile(`-(\d+)-`),
		regexp.MustCompile(`/cricket-scores/(\d+)/`),
		regexp.MustCompile(`/live-cricket-scores/(\d+)/`),
	}
)

// GetMatchData scrapes one match page and returns the composed record.
// Results are cached briefly per match path.
func (s *MatchService) GetMatchData(ctx context.Context, matchPath string) (*models.MatchInfo, error) {
	if cached, hit := s.cache.Get(matchPath); hit {
		return cached, nil
	}

	started := time.Now()
	requestLogger := s.logger.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"match_path": matchPath,
	})
	requestLogger.Info("scraping match data")

	page, err := s.fetchPrimaryPage(ctx, matchPath, requestLogger)
	if err != nil {
		s.Metrics.RecordRequest(false, time.Since(started))
		return nil, err
	}
	document := page.Document

	matchInfo := models.NewMatchInfo()
	matchInfo.Title = s.extractor.ExtractTitle(document)
	matchInfo.Status = s.extractor.ExtractMatchStatus(document)

	venue := s.extractor.ExtractVenue(document)
	series := s.extractor.ExtractSeries(document)
	matchTime := s.extractor.ExtractMatchTime(document)
	matchDate := s.extractor.ExtractMatchDate(document)

	teams := s.resolver.ResolveTeamsAndScores(document, page.RawHTML, matchInfo)

	s.collectMiniScoreboardScores(document, teams, matchInfo)
	if len(matchInfo.Scores) == 0 && len(teams) > 0 {
		s.collectFallbackScores(document, teams, matchInfo)
	}

	s.extractor.ExtractMatchDetails(document, matchInfo)
	s.extractor.ExtractPlayerOfTheMatch(document, matchInfo)
	s.extractor.ExtractRecentOvers(document, matchInfo)
	s.commentary.ExtractCommentary(ctx, document, matchInfo, matchPath)

	matchDate = refineDateFromTitle(matchInfo.Title, matchDate)
	matchFormat := formatFromTitle(matchInfo.Title)

	s.reconcileScoresWithTeams(teams, matchInfo)

	var squadData *models.SquadData
	if matchID := extractMatchID(matchPath); matchID != "" {
		squadData, err = s.squads.ExtractSquadData(ctx, matchID, matchPath)
		if err != nil {
			return nil, err
		}
		if squadData == nil {
			requestLogger.Info("no squad data found")
		}
	} else {
		requestLogger.Warn("no match id found in path")
	}

	matchInfo.MatchDetails[models.DetailKeyMatch] = matchFormat
	matchInfo.MatchDetails[models.DetailKeyTeams] = teams
	matchInfo.MatchDetails[models.DetailKeyVenue] = venue
	matchInfo.MatchDetails[models.DetailKeySeries] = strings.ReplaceAll(series, " | Cricbuzz.com", "")
	matchInfo.MatchDetails[models.DetailKeyTime] = matchTime
	matchInfo.MatchDetails[models.DetailKeyDate] = matchDate
	if squadData != nil {
		matchInfo.MatchDetails[models.DetailKeySquads] = squadData
	}

	s.cache.Set(matchPath, matchInfo)
	s.Metrics.RecordRequest(true, time.Since(started))
	return matchInfo, nil
}

// fetchPrimaryPage fetches the match page, optionally retrying through the
// headless browser when the plain client is bot-blocked.
func (s *MatchService) fetchPrimaryPage(ctx context.Context, matchPath string, requestLogger *logrus.Entry) (*Page, error) {
	page, err := s.fetcher.FetchDocument(ctx, matchPath, s.timeouts.PrimaryPage)
	if err == nil {
		return page, nil
	}

	var serviceErr *shared.ServiceError
	if s.renderer != nil && errors.As(err, &serviceErr) && serviceErr.Code == "HTTP_403" {
		requestLogger.Warn("primary fetch blocked, retrying through headless browser")
		if rendered, renderErr := s.renderer.FetchRenderedPage(ctx, s.fetcher.ResolveURL(matchPath)); renderErr == nil {
			return rendered, nil
		}
	}

	return nil, shared.WrapError(err, shared.ErrorCategoryUpstream, "PRIMARY_PAGE_FETCH_FAILED", "MatchService", "GetMatchData", shared.IsRetryableError(err))
}

// collectMiniScoreboardScores reads the mini-scoreboard tokens directly.
// Tokens that match a known team are keyed by the full team name; unmatched
// tokens keep their abbreviated key and are reconciled later.
func (s *MatchService) collectMiniScoreboardScores(document *goquery.Document, teams []string, matchInfo *models.MatchInfo) {
	document.Find(".cb-min-tm").Each(func(i int, token *goquery.Selection) {
		text := strings.TrimSpace(token.Text())
		m := miniScorePairRegex.FindStringSubmatch(text)
		if m == nil {
			return
		}
		shortName := strings.TrimSpace(m[1])
		score := strings.TrimSpace(m[2])

		for _, team := range teams {
			if s.matcher.Matches(shortName, team) {
				matchInfo.Scores[team] = score
				return
			}
		}
		matchInfo.Scores[shortName] = score
	})
}

// collectFallbackScores runs the secondary score sources used when the
// mini-scoreboard produced nothing: scorecard totals by innings order,
// batting rows with a trailing score cell, and as a last resort the mini
// columns when the status line announces a result.
func (s *MatchService) collectFallbackScores(document *goquery.Document, teams []string, matchInfo *models.MatchInfo) {
	document.Find(".cb-scrd-itms-main").Each(func(i int, item *goquery.Selection) {
		scoreText := strings.TrimSpace(item.Text())
		if scoreText == "" || i >= len(teams) {
			return
		}
		if _, present := matchInfo.Scores[teams[i]]; !present {
			matchInfo.Scores[teams[i]] = scoreText
		}
	})

	document.Find(".cb-min-bat-rw").Each(func(i int, row *goquery.Selection) {
		teamName := strings.TrimSpace(row.Find(".cb-min-itm-rw").Text())
		score := strings.TrimSpace(row.Find(".cb-min-itm-rw").Next().Text())
		if teamName == "" || score == "" {
			return
		}
		for _, team := range teams {
			if team == teamName {
				matchInfo.Scores[team] = score
				return
			}
		}
	})

	if len(matchInfo.Scores) == 0 && strings.Contains(matchInfo.Status, " won by ") {
		document.Find(".cb-mini-col").Each(func(i int, column *goquery.Selection) {
			teamScore := strings.TrimSpace(column.Text())
			if teamScore == "" || !strings.Contains(teamScore, "/") {
				return
			}
			teamIndex := 0
			if i < len(teams) {
				teamIndex = i
			}
			if teamIndex < len(teams) {
				matchInfo.Scores[teams[teamIndex]] = teamScore
			}
		})
	}
}

// reconcileScoresWithTeams migrates scores keyed by abbreviated names onto
// the full team names. The key list is captured once up front: when two
// teams both match the same abbreviated key, the first team takes the score
// and the key is deleted, so the second team is left without one.
func (s *MatchService) reconcileScoresWithTeams(teams []string, matchInfo *models.MatchInfo) {
	if len(matchInfo.Scores) == 0 || len(teams) < 2 {
		return
	}

	scoreKeys := make([]string, 0, len(matchInfo.Scores))
	for key := range matchInfo.Scores {
		scoreKeys = append(scoreKeys, key)
	}

	for _, team := range teams {
		if _, hasScore := matchInfo.Scores[team]; hasScore {
			continue
		}
		for _, key := range scoreKeys {
			if !s.matcher.Matches(key, team) {
				continue
			}
			if score, present := matchInfo.Scores[key]; present {
				matchInfo.Scores[team] = score
				if key != team {
					delete(matchInfo.Scores, key)
				}
			}
			break
		}
	}
}

// refineDateFromTitle prefers a "Mon DD" date found in the title over the
// date the page-level cascade produced.
func refineDateFromTitle(title, fallback string) string {
	if m := monthDayRegex.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	if strings.Contains(title, ",") {
		for _, part := range strings.Split(title, ",") {
			if m := titleDatePartRegex.FindStringSubmatch(strings.TrimSpace(part)); m != nil {
				return m[1]
			}
		}
	}
	return fallback
}

// formatFromTitle pulls the match number/format ("2nd Test", "45th Match")
// from between the first two commas of the title.
func formatFromTitle(title string) string {
	if m := titleFormatRegex.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Match"
}

// extractMatchID finds the numeric match ID inside a match path, trying
// each known URL shape in order.
func extractMatchID(matchPath string) string {
	for _, pattern := range matchIDRegexes {
		if m := pattern.FindStringSubmatch(matchPath); m != nil {
			return m[1]
		}
	}
	return ""
}
