package scraper

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darrenkjr/filmharvest/internal/config"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("testdata/fixtures/" + name)
	require.NoError(t, err, "failed to load test fixture")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	return doc
}

func parseHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestExtractFilm(t *testing.T) {
	doc := loadFixture(t, "film_page.html")
	e := NewFilmExtractor(config.SynopsisJoinAll)

	f := e.Extract(doc, "https://miff.com.au/program/film/echoes-2025")

	assert.Equal(t, "https://miff.com.au/program/film/echoes-2025", f.FilmURL)
	assert.Equal(t, "echoes-2025", f.FilmID)
	assert.Equal(t, "Echoes", f.Title)
	assert.Equal(t, "Jane Doe", f.Director)
	assert.Equal(t, "2025", f.Year)
	assert.Equal(t, "104 mins", f.Runtime)
	assert.Equal(t, "Australia, Japan", f.Countries)
	assert.Equal(t, "English, Japanese", f.Languages)
	assert.Equal(t, "Drama, Thriller", f.Genres)
	// Premiere status keeps the last match.
	assert.Equal(t, "Australian Premiere", f.PremiereStatus)
	assert.Equal(t, "Headliners", f.Strands)
	assert.Equal(t, "Contains flashing lights and loud sounds", f.ViewerAdvice)

	assert.True(t, strings.HasPrefix(f.Description, "A haunting meditation"), "description = %q", f.Description)
	// join-all policy: every qualifying paragraph, space-joined.
	assert.Contains(t, f.Synopsis, "A haunting meditation")
	assert.Contains(t, f.Synopsis, "fragments of a long-buried family secret")
	// Boilerplate paragraphs never qualify.
	assert.NotContains(t, f.Synopsis, "Presented by")
	assert.NotContains(t, f.Synopsis, "Tickets on sale")

	quotes := strings.Split(f.ReviewQuotes, " | ")
	require.Len(t, quotes, 2)
	assert.Equal(t, "An unmissable, transcendent piece of cinema.", quotes[0])
	assert.Contains(t, quotes[1], "The Saturday Paper")
}

func TestExtractFilmSecondParagraphPolicy(t *testing.T) {
	doc := loadFixture(t, "film_page.html")
	e := NewFilmExtractor(config.SynopsisSecondParagraph)

	f := e.Extract(doc, "https://miff.com.au/program/film/echoes-2025")

	assert.True(t, strings.HasPrefix(f.Synopsis, "As she captures"), "synopsis = %q", f.Synopsis)
	assert.NotEqual(t, f.Description, f.Synopsis)
}

func TestExtractFilmTotality(t *testing.T) {
	// A document missing every optional element still yields a record with
	// empty fields and the URL-derived identity.
	doc := parseHTML(t, "<html><body></body></html>")
	e := NewFilmExtractor(config.SynopsisJoinAll)

	f := e.Extract(doc, "https://miff.com.au/program/film/bare")

	assert.Equal(t, "bare", f.FilmID)
	assert.Empty(t, f.Title)
	assert.Empty(t, f.Director)
	assert.Empty(t, f.Year)
	assert.Empty(t, f.Runtime)
	assert.Empty(t, f.Countries)
	assert.Empty(t, f.Languages)
	assert.Empty(t, f.Genres)
	assert.Empty(t, f.PremiereStatus)
	assert.Empty(t, f.Strands)
	assert.Empty(t, f.Description)
	assert.Empty(t, f.Synopsis)
	assert.Empty(t, f.ViewerAdvice)
	assert.Empty(t, f.ReviewQuotes)
}

func TestExtractFilmTitleFallsBackToTitleClass(t *testing.T) {
	doc := parseHTML(t, `<html><body><div class="film-title">Night Shift</div></body></html>`)
	e := NewFilmExtractor(config.SynopsisJoinAll)

	f := e.Extract(doc, "/program/film/night-shift")
	assert.Equal(t, "Night Shift", f.Title)
}

func TestExtractFilmScenario(t *testing.T) {
	// Search links plus the slash-delimited year and runtime tokens.
	doc := parseHTML(t, `<html><body>
		<a href="/program/search?director=Jane+Doe">Jane Doe</a>
		<a href="/program/search?genre=Drama">Drama</a>
		<a href="/program/search?genre=Thriller">Thriller</a>
		<p>/ 2025 / 104 mins /</p>
	</body></html>`)
	e := NewFilmExtractor(config.SynopsisJoinAll)

	f := e.Extract(doc, "/program/film/x")

	assert.Equal(t, "Jane Doe", f.Director)
	assert.Equal(t, "Drama, Thriller", f.Genres)
	assert.Equal(t, "2025", f.Year)
	assert.Equal(t, "104 mins", f.Runtime)
}

func TestExtractFilmReviewQuoteCap(t *testing.T) {
	doc := parseHTML(t, `<html><body>
		<blockquote>First quote, comfortably long enough.</blockquote>
		<blockquote>Second quote, comfortably long enough.</blockquote>
		<blockquote>Third quote, comfortably long enough.</blockquote>
		<blockquote>Fourth quote, comfortably long enough.</blockquote>
	</body></html>`)
	e := NewFilmExtractor(config.SynopsisJoinAll)

	f := e.Extract(doc, "/program/film/x")
	assert.Len(t, strings.Split(f.ReviewQuotes, " | "), 3)
}
