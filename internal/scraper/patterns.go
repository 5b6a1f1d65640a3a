package scraper

import (
	"regexp"
	"strings"
)

// URL patterns on the program site. Film metadata is classified by the
// search link each value points at, which is far more reliable than the
// surrounding markup.
const (
	FilmDetailPath     = "/program/film/"
	StrandPath         = "/program/strand/"
	directorSearch     = "/program/search?director="
	originSearch       = "/program/search?origin="
	languageSearch     = "/program/search?language="
	genreSearch        = "/program/search?genre="
	premiereSearch     = "/program/search?premiere-status="
	viewerAdviceLabel  = "Viewer Advice:"
	reviewQuoteJoiner  = " | "
	descriptionMinLen  = 50
	quoteMinLen        = 20
	quotedParaMinLen   = 30
	maxReviewQuotes    = 3
	maxContextLen      = 200
	maxAncestorLevels  = 4
)

// descriptionDenylist rejects boilerplate paragraphs from the description
// and synopsis scans. Matching is case-insensitive substring.
var descriptionDenylist = []string{
	"viewer advice",
	"presented by",
	"tickets",
	"accessibility",
}

var (
	yearPattern    = regexp.MustCompile(`/\s*(\d{4})\s*/`)
	runtimePattern = regexp.MustCompile(`/\s*(\d+\s*mins?)\s*/`)
	advicePattern  = regexp.MustCompile(`Viewer Advice:\s*([^\n\r]+)`)

	// timeTokenPattern matches session times inside free text: "7:00pm",
	// "7:00 pm" or the bare-hour form "7pm".
	timeTokenPattern = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*[ap]m|\d{1,2}\s*[ap]m`)

	// exactTimePattern matches a text node that is nothing but a time
	// token, the shape used by the schedule grid's time-slot headers.
	exactTimePattern = regexp.MustCompile(`(?i)^\d{1,2}(?::\d{2})?[ap]m$`)

	monthAbbrevPattern = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\b`)

	// meridiemPattern matches an am/pm marker either attached to a digit
	// ("7pm") or standing alone, without tripping on words like "Cameo".
	meridiemPattern = regexp.MustCompile(`(?i)(\d\s*|\b)[ap]m\b`)
)

// IsFilmDetailLink reports whether an href points at an individual film's
// canonical page.
func IsFilmDetailLink(href string) bool {
	return strings.Contains(href, FilmDetailPath)
}

// MatchYear returns the first run of exactly four digits appearing between
// two slashes in the given text, or "".
func MatchYear(text string) string {
	if m := yearPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// MatchRuntime returns the first "<digits> min/mins" run appearing between
// two slashes in the given text, or "".
func MatchRuntime(text string) string {
	if m := runtimePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// MatchViewerAdvice returns the text following the "Viewer Advice:" label up
// to the end of the line, or "".
func MatchViewerAdvice(text string) string {
	if m := advicePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// FirstTimeToken returns the first session-time token in the given text,
// or "".
func FirstTimeToken(text string) string {
	return strings.TrimSpace(timeTokenPattern.FindString(text))
}

// IsExactTimeToken reports whether the text is a bare time-slot header such
// as "9am", "6:30pm".
func IsExactTimeToken(text string) bool {
	return exactTimePattern.MatchString(strings.TrimSpace(text))
}

// LooksLikeDateTime reports whether a venue candidate actually carries a
// date or time token (month abbreviation, colon, or am/pm marker), which
// means it was the wrong span for a venue.
func LooksLikeDateTime(text string) bool {
	if strings.Contains(text, ":") || meridiemPattern.MatchString(text) {
		return true
	}
	return monthAbbrevPattern.MatchString(text)
}

// isQualifyingParagraph applies the description scan rules: visible text
// longer than descriptionMinLen and free of denylisted boilerplate.
func isQualifyingParagraph(text string) bool {
	if len(text) <= descriptionMinLen {
		return false
	}
	lower := strings.ToLower(text)
	for _, skip := range descriptionDenylist {
		if strings.Contains(lower, skip) {
			return false
		}
	}
	return true
}

// looksLikeReviewQuote reports whether a paragraph reads like an attributed
// press quote: quotation marks plus an en/em dash attribution.
func looksLikeReviewQuote(text string) bool {
	if len(text) <= quotedParaMinLen {
		return false
	}
	if !strings.ContainsAny(text, `"“”`) {
		return false
	}
	return strings.Contains(text, "–") || strings.Contains(text, "—")
}

// VenueMatcher recognizes venue names in free text by a fixed set of
// case-insensitive name prefixes, each terminated at a comma, pipe or
// newline.
type VenueMatcher struct {
	re *regexp.Regexp
}

// NewVenueMatcher builds a matcher for the given venue-name prefixes.
// An empty prefix list yields a matcher that matches nothing.
func NewVenueMatcher(prefixes []string) *VenueMatcher {
	alts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(p)+`[^|,\n]*`)
	}
	if len(alts) == 0 {
		return &VenueMatcher{}
	}
	return &VenueMatcher{
		re: regexp.MustCompile(`(?i)(` + strings.Join(alts, "|") + `)`),
	}
}

// First returns the first venue token in the given text, trimmed, or "".
func (m *VenueMatcher) First(text string) string {
	if m.re == nil {
		return ""
	}
	return strings.TrimSpace(m.re.FindString(text))
}
