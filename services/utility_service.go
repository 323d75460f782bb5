package services

import (
	"regexp"
	"strings"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/shared"
)

// UtilityService provides text normalization helpers shared by the
// extraction services.
type UtilityService struct {
	Metrics *shared.ServiceMetrics
}

// NewUtilityService creates a new utility service
func NewUtilityService() *UtilityService {
	return &UtilityService{
		Metrics: shared.NewServiceMetrics("utility_service"),
	}
}

var (
	nonBreakingSpaceRegex = regexp.MustCompile(`\x{00a0}`)
	whitespaceRunRegex    = regexp.MustCompile(`\s+`)
)

// NormalizeTextContent trims a scraped string, converts non-breaking spaces
// to regular spaces and collapses whitespace runs to a single space.
// Calling it twice gives the same result as calling it once.
func (u *UtilityService) NormalizeTextContent(raw string) string {
	normalized := nonBreakingSpaceRegex.ReplaceAllString(raw, " ")
	normalized = whitespaceRunRegex.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// FirstRegexMatch applies pattern to text and returns the first capture
// group, or "" when the pattern does not match.
func (u *UtilityService) FirstRegexMatch(pattern *regexp.Regexp, text string) string {
	if m := pattern.FindStringSubmatch(text); m != nil && len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}
