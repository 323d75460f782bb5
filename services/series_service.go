package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

const iplSeriesPath = "/cricket-series/9237/indian-premier-league-2025"

// SeriesService scrapes the tournament schedule listing. The main series
// page is tried first; when it carries no match rows the fixtures page is
// scraped as a fallback.
type SeriesService struct {
	baseURL     string
	userAgent   string
	rateLimiter *shared.HTTPRequestRateLimiter
	Metrics     *shared.ServiceMetrics
	logger      *logrus.Entry
}

// NewSeriesService creates a new series listing service
func NewSeriesService(cfg *config.Config, rateLimiter *shared.HTTPRequestRateLimiter) *SeriesService {
	return &SeriesService{
		baseURL:     strings.TrimSuffix(cfg.CricbuzzBaseURL, "/"),
		userAgent:   cfg.UserAgent,
		rateLimiter: rateLimiter,
		Metrics:     shared.NewServiceMetrics("series_service"),
		logger:      logrus.WithField("component", "series_service"),
	}
}

var listMatchIDRegex = regexp.MustCompile(`/live-cricket-scores/(\d+)/`)

// GetIPLMatches returns every match row found on the tournament schedule.
// Individual rows that fail to parse are skipped; only a failure to load
// any page at all is an error.
func (s *SeriesService) GetIPLMatches() ([]models.MatchSummary, error) {
	started := time.Now()
	s.rateLimiter.EnforceRateLimit()

	matches, err := s.scrapeSchedulePage()
	if err != nil {
		s.Metrics.RecordRequest(false, time.Since(started))
		return nil, err
	}

	if len(matches) == 0 {
		s.logger.Info("schedule page empty, falling back to fixtures page")
		matches, err = s.scrapeFixturesPage()
		if err != nil {
			s.Metrics.RecordRequest(false, time.Since(started))
			return nil, err
		}
	}

	s.Metrics.RecordRequest(true, time.Since(started))
	return matches, nil
}

func (s *SeriesService) newCollector() *colly.Collector {
	collector := colly.NewCollector()
	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", s.userAgent)
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})
	collector.OnError(func(r *colly.Response, err error) {
		s.logger.WithFields(logrus.Fields{
			"url":   r.Request.URL.String(),
			"error": err.Error(),
		}).Error("series page request failed")
	})
	return collector
}

func (s *SeriesService) scrapeSchedulePage() ([]models.MatchSummary, error) {
	var matches []models.MatchSummary

	collector := s.newCollector()
	collector.OnHTML(".cb-sch-lst-itm", func(e *colly.HTMLElement) {
		row := e.DOM

		team1 := strings.TrimSpace(row.Find(".cb-sch-tm-nm").Eq(0).Text())
		team2 := strings.TrimSpace(row.Find(".cb-sch-tm-nm").Eq(1).Text())

		status := strings.TrimSpace(row.Find(".cb-text-complete").Text())
		if status == "" {
			status = strings.TrimSpace(row.Find(".cb-text-live").Text())
		}
		if status == "" {
			status = strings.TrimSpace(row.Find(".cb-text-upcoming").Text())
		}
		if status == "" {
			status = "Upcoming"
		}

		match := models.MatchSummary{
			Date:      strings.TrimSpace(row.Find(".cb-lv-scr-mtch-hdr").Text()),
			Team1:     team1,
			Team2:     team2,
			VenueTime: strings.TrimSpace(row.Find(".cb-sch-dt-vnu").Text()),
			MatchInfo: strings.TrimSpace(row.Find(".cb-col-60.cb-col.cb-lst-itm-sm").Text()),
			Status:    status,
			Scores:    make(map[string]string),
		}

		team1Score := strings.TrimSpace(row.Find(".cb-col-50.cb-ovr-flo").Eq(0).Text())
		team2Score := strings.TrimSpace(row.Find(".cb-col-50.cb-ovr-flo").Eq(1).Text())
		if team1Score == "" {
			team1Score = strings.TrimSpace(row.Find(".cb-scr-wll-chvrn").Eq(0).Text())
		}
		if team2Score == "" {
			team2Score = strings.TrimSpace(row.Find(".cb-scr-wll-chvrn").Eq(1).Text())
		}
		if team1Score != "" && team1 != "" {
			match.Scores[team1] = team1Score
		}
		if team2Score != "" && team2 != "" {
			match.Scores[team2] = team2Score
		}

		if matchLink, exists := row.Find("a").Attr("href"); exists {
			match.MatchLink = matchLink
			if m := listMatchIDRegex.FindStringSubmatch(matchLink); m != nil {
				match.MatchID = m[1]
			}
		}

		matches = append(matches, match)
	})

	if err := collector.Visit(s.baseURL + iplSeriesPath); err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryUpstream, "SERIES_PAGE_FETCH_FAILED", "SeriesService", "GetIPLMatches", true)
	}
	collector.Wait()

	return matches, nil
}

func (s *SeriesService) scrapeFixturesPage() ([]models.MatchSummary, error) {
	var matches []models.MatchSummary

	collector := s.newCollector()
	collector.OnHTML(".cb-sch-lst-itm, .cb-lst-mtch-sm", func(e *colly.HTMLElement) {
		row := e.DOM

		team1 := strings.TrimSpace(row.Find(".cb-mtch-lst-itm-tm").Eq(0).Text())
		team2 := strings.TrimSpace(row.Find(".cb-mtch-lst-itm-tm").Eq(1).Text())
		if team1 == "" || team2 == "" {
			team1 = strings.TrimSpace(row.Find(".cb-team-itm").Eq(0).Text())
			team2 = strings.TrimSpace(row.Find(".cb-team-itm").Eq(1).Text())
		}
		if team1 == "" || team2 == "" {
			return
		}

		venueTime := strings.TrimSpace(row.Find(".cb-venue-dt-cal").Text())
		if venueTime == "" {
			venueTime = strings.TrimSpace(row.Find(".cb-mtch-info").Text())
		}

		match := models.MatchSummary{
			Date:      strings.TrimSpace(row.Find(".cb-lv-scr-mtch-hdr").Text()),
			Team1:     team1,
			Team2:     team2,
			VenueTime: venueTime,
			MatchInfo: strings.TrimSpace(row.Find(".cb-text-gray").Text()),
			Status:    "Upcoming",
			Scores:    make(map[string]string),
		}

		if matchLink, exists := row.Find("a").Attr("href"); exists {
			match.MatchLink = matchLink
			if m := listMatchIDRegex.FindStringSubmatch(matchLink); m != nil {
				match.MatchID = m[1]
			}
		}

		matches = append(matches, match)
	})

	if err := collector.Visit(s.baseURL + iplSeriesPath + "/matches"); err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryUpstream, "FIXTURES_PAGE_FETCH_FAILED", "SeriesService", "GetIPLMatches", true)
	}
	collector.Wait()

	return matches, nil
}
