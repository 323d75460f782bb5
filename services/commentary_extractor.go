package services

import (
	"context"
	"strings"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/config"
	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// CommentaryExtractor collects ball-by-ball commentary. It reads inline
// commentary from the match page when present, and otherwise falls back to
// the HTML commentary endpoint and then the full-commentary page. Every
// failure mode degrades to "no commentary", never to an error.
type CommentaryExtractor struct {
	fetcher  *PageFetcher
	timeouts config.ScraperTimeouts
	logger   *logrus.Entry
}

// NewCommentaryExtractor creates a new commentary extraction service
func NewCommentaryExtractor(fetcher *PageFetcher, timeouts config.ScraperTimeouts) *CommentaryExtractor {
	return &CommentaryExtractor{
		fetcher:  fetcher,
		timeouts: timeouts,
		logger:   logrus.WithField("component", "commentary_extractor"),
	}
}

const advertisementMarker = "ADVERTISEMENT"

// ExtractCommentary populates matchInfo.Commentary. matchPath is the path
// of the match page the caller scraped, used to derive the fallback URLs.
func (c *CommentaryExtractor) ExtractCommentary(ctx context.Context, document *goquery.Document, matchInfo *models.MatchInfo, matchPath string) {
	inline := collectInlineCommentary(document)
	if len(inline) > 0 {
		matchInfo.Commentary = inline
		return
	}

	// The fallback pages are only worth fetching when the match page
	// links to commentary at all.
	if document.Find(`a[href*="commentary"]`).Length() == 0 {
		return
	}

	commentaryPath := "/api/html/cricket-commentary/" + strings.TrimPrefix(matchPath, "/")
	if comments := c.fetchCommentaryPage(ctx, commentaryPath); len(comments) > 0 {
		matchInfo.Commentary = comments
		return
	}

	pathSegments := strings.Split(strings.Trim(matchPath, "/"), "/")
	lastSegment := pathSegments[len(pathSegments)-1]
	fullCommentaryPath := "/live-cricket-full-commentary/" + lastSegment
	if comments := c.fetchCommentaryPage(ctx, fullCommentaryPath); len(comments) > 0 {
		matchInfo.Commentary = comments
	}
}

func (c *CommentaryExtractor) fetchCommentaryPage(ctx context.Context, path string) []models.Commentary {
	page, err := c.fetcher.FetchDocument(ctx, path, c.timeouts.SecondaryPage)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"path":  path,
			"error": err.Error(),
		}).Warn("commentary page fetch failed")
		return nil
	}

	var comments []models.Commentary
	page.Document.Find(".cb-col.cb-col-100").Each(func(i int, block *goquery.Selection) {
		overNumber := strings.TrimSpace(block.Find(".cb-ovr-num").First().Text())
		commentText := strings.TrimSpace(block.Find(".cb-com-ln").Text())

		if commentText != "" && !strings.Contains(commentText, advertisementMarker) {
			comments = append(comments, models.Commentary{
				Over: overNumber,
				Text: commentText,
			})
		}
	})
	return comments
}

// collectInlineCommentary reads commentary lines already present on the
// match page. The over number lives in a sibling of the comment line, so it
// is looked up through the parent.
func collectInlineCommentary(document *goquery.Document) []models.Commentary {
	var comments []models.Commentary
	document.Find(".cb-com-ln").Each(func(i int, line *goquery.Selection) {
		overNumber := strings.TrimSpace(line.Parent().Find(".cb-ovr-num").First().Text())
		commentText := strings.TrimSpace(line.Text())

		if commentText != "" && !strings.Contains(commentText, advertisementMarker) {
			comments = append(comments, models.Commentary{
				Over: overNumber,
				Text: commentText,
			})
		}
	})
	return comments
}
