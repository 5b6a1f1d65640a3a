package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/darrenkjr/filmharvest/internal/config"
	"github.com/darrenkjr/filmharvest/internal/film"
)

// FilmExtractor produces a Film record from one film-detail document. Every
// field has its own ordered fallback rules; a document missing every
// optional element still yields a valid record with empty fields.
type FilmExtractor struct {
	synopsisPolicy string
}

// NewFilmExtractor creates an extractor with the given synopsis policy
// (config.SynopsisJoinAll or config.SynopsisSecondParagraph). The policy is
// chosen once at pipeline construction.
func NewFilmExtractor(synopsisPolicy string) *FilmExtractor {
	return &FilmExtractor{synopsisPolicy: synopsisPolicy}
}

// Extract pulls structured facts out of a film-detail document. It never
// fails: absent fields are left as empty strings.
func (e *FilmExtractor) Extract(doc *goquery.Document, filmURL string) film.Film {
	f := film.Film{
		FilmURL: filmURL,
		FilmID:  film.IDFromURL(filmURL),
	}

	f.Title = extractTitle(doc)
	e.classifyLinks(doc, &f)

	pageText := doc.Text()
	f.Year = MatchYear(pageText)
	f.Runtime = MatchRuntime(pageText)
	f.ViewerAdvice = MatchViewerAdvice(pageText)

	paragraphs := qualifyingParagraphs(doc)
	if len(paragraphs) > 0 {
		f.Description = paragraphs[0]
		f.Synopsis = e.synopsis(paragraphs)
	}
	f.ReviewQuotes = extractReviewQuotes(doc, paragraphs)

	return f
}

// extractTitle prefers the page's single top-level heading, then anything
// tagged with a title-ish class.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find(".title, .film-title").First().Text())
}

// classifyLinks scans every hyperlink on the page and files its text under
// the field its target pattern identifies. Director and premiere status keep
// the last match; the list fields accumulate deduplicated, order-preserving
// members.
func (e *FilmExtractor) classifyLinks(doc *goquery.Document, f *film.Film) {
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}

		switch {
		case strings.Contains(href, directorSearch):
			f.Director = text
		case strings.Contains(href, originSearch):
			f.Countries = film.AppendListItem(f.Countries, text)
		case strings.Contains(href, languageSearch):
			f.Languages = film.AppendListItem(f.Languages, text)
		case strings.Contains(href, genreSearch):
			f.Genres = film.AppendListItem(f.Genres, text)
		case strings.Contains(href, premiereSearch):
			f.PremiereStatus = text
		case strings.Contains(href, StrandPath):
			f.Strands = film.AppendListItem(f.Strands, text)
		}
	})
}

// qualifyingParagraphs collects every paragraph-level text block that passes
// the description scan rules, in document order.
func qualifyingParagraphs(doc *goquery.Document) []string {
	var out []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if isQualifyingParagraph(text) {
			out = append(out, text)
		}
	})
	return out
}

// synopsis derives the long-form synopsis from the qualifying paragraphs
// according to the configured policy.
func (e *FilmExtractor) synopsis(paragraphs []string) string {
	if e.synopsisPolicy == config.SynopsisSecondParagraph {
		if len(paragraphs) > 1 {
			return paragraphs[1]
		}
		return ""
	}
	return strings.Join(paragraphs, " ")
}

// extractReviewQuotes unions quote-like elements with quote-like qualifying
// paragraphs, truncated to the first three and joined with " | ".
func extractReviewQuotes(doc *goquery.Document, paragraphs []string) string {
	var quotes []string

	doc.Find("blockquote, q").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > quoteMinLen {
			quotes = append(quotes, text)
		}
	})

	for _, p := range paragraphs {
		if looksLikeReviewQuote(p) {
			quotes = append(quotes, p)
		}
	}

	if len(quotes) > maxReviewQuotes {
		quotes = quotes[:maxReviewQuotes]
	}
	return strings.Join(quotes, reviewQuoteJoiner)
}
