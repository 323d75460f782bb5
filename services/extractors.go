package services

import (
	"regexp"
	"strings"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/PuerkitoBio/goquery"
)

// FieldExtractor pulls individual semantic fields out of a parsed match
// page. Every method is a pure function over the document: it tries its
// sources in a fixed priority order, stops at the first hit, and falls back
// to an empty or placeholder value instead of returning an error. The
// upstream markup changes without notice, which is why each field carries a
// cascade of selectors rather than a single one.
type FieldExtractor struct {
	utility *UtilityService
}

// NewFieldExtractor creates a new field extraction service
func NewFieldExtractor(utility *UtilityService) *FieldExtractor {
	return &FieldExtractor{utility: utility}
}

var (
	monthDayRegex      = regexp.MustCompile(`\b([A-Z][a-z]{2}\s+\d{1,2})\b`)
	ordinalDateRegex   = regexp.MustCompile(`(\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3})`)
	labelledDateRegex  = regexp.MustCompile(`(?i)Date & Time:\s*([A-Za-z]+\s+\d{1,2})`)
	scriptDateRegex    = regexp.MustCompile(`var\s+matchDate\s*=\s*["']([^"']+)["']`)
	clockTimeRegex     = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:AM|PM)(?:\s*LOCAL)?)`)
	venueLabelRegex    = regexp.MustCompile(`Venue:\s*([^,]+(?:,[^D]+)?)`)
	seriesLabelRegex   = regexp.MustCompile(`Series:\s*([^,]+)`)
	tourSeriesRegex    = regexp.MustCompile(`(.*tour of.*),\s*\d{4}`)
	matchNumberRegex   = regexp.MustCompile(`(\d+(?:st|nd|rd|th)\s+[^,]+)`)
	playerOfMatchRegex = regexp.MustCompile(`(?i)PLAYER\s+OF\s+THE\s+MATCH[\s:\-]+([^.]+)`)
	isPlayerOfMatchRe  = regexp.MustCompile(`(?i)([A-Za-z\s.]+)\s+is\s+the\s+Player\s+of\s+the\s+Match`)
)

// firstNonEmptyText returns the trimmed text of the first selector in the
// cascade whose selection is non-empty.
func firstNonEmptyText(document *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(document.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func metaContent(document *goquery.Document, selector string) string {
	content, _ := document.Find(selector).Attr("content")
	return strings.TrimSpace(content)
}

// ExtractTitle returns the human-readable match title. Priority: og:title
// meta, title tag (split before the site-name separator), legacy heading
// selectors, then a literal placeholder.
func (e *FieldExtractor) ExtractTitle(document *goquery.Document) string {
	if metaTitle := metaContent(document, `meta[property="og:title"]`); metaTitle != "" {
		return metaTitle
	}

	if pageTitle := strings.TrimSpace(document.Find("title").Text()); pageTitle != "" {
		return strings.TrimSpace(strings.Split(pageTitle, "|")[0])
	}

	if heading := firstNonEmptyText(document, "h4.cb-list-item", ".cb-nav-hdr-lg"); heading != "" {
		return heading
	}

	return "Match Information"
}

// ExtractMatchStatus returns the free-text match state. The source never
// settled on one container for this, so every known location is tried.
func (e *FieldExtractor) ExtractMatchStatus(document *goquery.Document) string {
	return firstNonEmptyText(document,
		".cbz-ui-status",
		".cb-text-live",
		".cb-text-complete",
		".cb-text-inprogress",
		".cb-text-stump",
		".cb-mini-stts .cb-font-16",
		".cb-mtch-crd-state",
	)
}

// ExtractSeries returns the series/tournament name, or "" when no source
// yields one.
func (e *FieldExtractor) ExtractSeries(document *goquery.Document) string {
	// Title format is "Team1 vs Team2, Match Type, Date, Series Name"
	titleText := document.Find("title").Text()
	if titleText != "" {
		titleParts := strings.Split(titleText, ",")
		if len(titleParts) >= 4 {
			seriesName := strings.TrimSpace(titleParts[len(titleParts)-1])
			seriesName = strings.ReplaceAll(seriesName, " | Cricbuzz.com", "")
			if seriesName != "" {
				return seriesName
			}
		}
	}

	subheader := strings.TrimSpace(document.Find(".cb-nav-subhdr").Text())
	if m := seriesLabelRegex.FindStringSubmatch(subheader); m != nil {
		return strings.TrimSpace(m[1])
	}

	venueText := document.Find(".venue-date-time").Text()
	if strings.Contains(venueText, "Series:") {
		if m := seriesLabelRegex.FindStringSubmatch(venueText); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	metaDesc := metaContent(document, `meta[name="description"]`)
	if strings.Contains(metaDesc, "tour of") {
		if m := tourSeriesRegex.FindStringSubmatch(metaDesc); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	return ""
}

// ExtractVenue returns the match venue, stripping any "Series:" fragment the
// matched text accidentally drags along.
func (e *FieldExtractor) ExtractVenue(document *goquery.Document) string {
	venueText := strings.TrimSpace(document.Find(`.cb-mtch-info-itm:contains('Venue')`).Find(".cb-col-60").Text())

	if venueText == "" {
		if venueTimeText := strings.TrimSpace(document.Find(".venue-date-time").Text()); venueTimeText != "" {
			if m := venueLabelRegex.FindStringSubmatch(venueTimeText); m != nil {
				venueText = strings.TrimSpace(m[1])
			}
		}
	}

	if venueText == "" {
		venueText = strings.TrimSpace(document.Find(".cb-nav-subhdr.cb-font-12").Text())
	}

	if venueText == "" || strings.Contains(venueText, "Series:") {
		metaDesc := metaContent(document, `meta[name="description"]`)
		if strings.Contains(metaDesc, "Venue:") {
			if m := venueLabelRegex.FindStringSubmatch(metaDesc); m != nil {
				venueText = strings.TrimSpace(m[1])
			}
		}
	}

	if strings.Contains(venueText, "Series:") {
		if m := venueLabelRegex.FindStringSubmatch(venueText); m != nil {
			venueText = strings.TrimSpace(m[1])
		}
	}

	if venueText == "" {
		return "Venue not available"
	}
	return venueText
}

// ExtractMatchDate returns the match date as it appears upstream, favoring
// the meta-title "Mon DD" pattern, then title-tag patterns, then a labelled
// date block, then an embedded script variable.
func (e *FieldExtractor) ExtractMatchDate(document *goquery.Document) string {
	if metaTitle := metaContent(document, `meta[property="og:title"]`); metaTitle != "" {
		if m := monthDayRegex.FindStringSubmatch(metaTitle); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	titleText := strings.TrimSpace(document.Find("title").Text())
	if titleText != "" {
		if m := monthDayRegex.FindStringSubmatch(titleText); m != nil {
			return strings.TrimSpace(m[1])
		}
		if m := ordinalDateRegex.FindStringSubmatch(titleText); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	if dateTimeSection := strings.TrimSpace(document.Find(".cb-nav-subhdr").Text()); dateTimeSection != "" {
		if m := labelledDateRegex.FindStringSubmatch(dateTimeSection); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	if dateElement := document.Find(`.cb-min-itm-rw:contains('Date')`); dateElement.Length() > 0 {
		if next := strings.TrimSpace(dateElement.Next().Text()); next != "" {
			return next
		}
	}

	scriptContent := document.Find(`script:contains('matchState')`).Text()
	if m := scriptDateRegex.FindStringSubmatch(scriptContent); m != nil {
		return strings.TrimSpace(m[1])
	}

	return "Date not available"
}

// ExtractMatchTime returns the start time when an explicit HH:MM AM/PM
// pattern exists anywhere; there is no synthetic fallback.
func (e *FieldExtractor) ExtractMatchTime(document *goquery.Document) string {
	if venueTimeText := strings.TrimSpace(document.Find(".venue-date-time").Text()); venueTimeText != "" {
		if m := clockTimeRegex.FindStringSubmatch(venueTimeText); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	dateTimeInfo := strings.TrimSpace(document.Find(`.cb-mtch-info-itm:contains('Date')`).Find(".cb-col-60").Text())
	if dateTimeInfo != "" {
		if m := clockTimeRegex.FindStringSubmatch(dateTimeInfo); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	if metaDesc := metaContent(document, `meta[name="description"]`); metaDesc != "" {
		if m := clockTimeRegex.FindStringSubmatch(metaDesc); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	return ""
}

// ExtractMatchDetails populates matchInfo.MatchDetails from the structured
// info-item rows, with free-text and meta-description fallbacks when the
// table is absent, plus a separately sourced Toss field and a Match field
// backfilled from the title.
func (e *FieldExtractor) ExtractMatchDetails(document *goquery.Document, matchInfo *models.MatchInfo) {
	document.Find(".cb-mtch-info-itm").Each(func(i int, row *goquery.Selection) {
		label := strings.TrimSpace(row.Find(".cb-col.cb-col-40").Text())
		value := strings.TrimSpace(row.Find(".cb-col.cb-col-60").Text())

		if label != "" && value != "" {
			matchInfo.MatchDetails[label] = e.utility.NormalizeTextContent(value)
		}
	})

	if tossInfo := strings.TrimSpace(document.Find(".cb-toss-sts").Text()); tossInfo != "" {
		matchInfo.MatchDetails[models.DetailKeyToss] = tossInfo
	}

	if len(matchInfo.MatchDetails) == 0 {
		if venueTimeText := strings.TrimSpace(document.Find(".venue-date-time").Text()); venueTimeText != "" {
			if m := seriesLabelRegex.FindStringSubmatch(venueTimeText); m != nil {
				matchInfo.MatchDetails["Series"] = strings.TrimSpace(m[1])
			}
			if m := venueLabelRegex.FindStringSubmatch(venueTimeText); m != nil {
				matchInfo.MatchDetails["Venue"] = strings.TrimSpace(m[1])
			}
		}

		if metaDesc := metaContent(document, `meta[name="description"]`); metaDesc != "" {
			if m := venueLabelRegex.FindStringSubmatch(metaDesc); m != nil {
				matchInfo.MatchDetails["Venue"] = strings.TrimSpace(m[1])
			}
		}

		titleText := document.Find("title").Text()
		if titleText != "" {
			titleParts := strings.Split(titleText, ",")
			if len(titleParts) >= 3 {
				if _, present := matchInfo.MatchDetails[models.DetailKeyMatch]; !present {
					matchInfo.MatchDetails[models.DetailKeyMatch] = strings.TrimSpace(titleParts[1])
				}
			}
		}
	}

	if _, present := matchInfo.MatchDetails[models.DetailKeyMatch]; !present {
		if m := matchNumberRegex.FindStringSubmatch(matchInfo.Title); m != nil {
			matchInfo.MatchDetails[models.DetailKeyMatch] = strings.TrimSpace(m[1])
		}
	}
}

// ExtractPlayerOfTheMatch sets matchInfo.PlayerOfTheMatch from the first
// source that matches. Candidates found via free-text patterns are prefixed
// with the literal award label for UI consistency.
func (e *FieldExtractor) ExtractPlayerOfTheMatch(document *goquery.Document, matchInfo *models.MatchInfo) {
	if momText := strings.TrimSpace(document.Find(".cb-mom-itm").Text()); momText != "" {
		matchInfo.PlayerOfTheMatch = momText
		return
	}

	pageText := document.Find("body").Text()
	if m := playerOfMatchRegex.FindStringSubmatch(pageText); m != nil {
		matchInfo.PlayerOfTheMatch = "PLAYER OF THE MATCH " + strings.TrimSpace(m[1])
		return
	}

	if m := isPlayerOfMatchRe.FindStringSubmatch(pageText); m != nil {
		matchInfo.PlayerOfTheMatch = "PLAYER OF THE MATCH " + strings.TrimSpace(m[1])
		return
	}

	if metaDesc := metaContent(document, `meta[name="description"]`); metaDesc != "" {
		if m := playerOfMatchRegex.FindStringSubmatch(metaDesc); m != nil {
			matchInfo.PlayerOfTheMatch = "PLAYER OF THE MATCH " + strings.TrimSpace(m[1])
		}
	}
}

// ExtractRecentOvers collects recent-over list items verbatim, in document
// order.
func (e *FieldExtractor) ExtractRecentOvers(document *goquery.Document, matchInfo *models.MatchInfo) {
	var recentOvers []string
	document.Find(".cb-col.cb-col-100.cb-min-itm.cb-mat-mnu").Each(func(i int, item *goquery.Selection) {
		recentOvers = append(recentOvers, strings.TrimSpace(item.Text()))
	})

	if len(recentOvers) > 0 {
		matchInfo.RecentOvers = recentOvers
	}
}
