// Package scraper provides HTTP fetching and HTML extraction for a film
// festival's public program site.
//
// The scraper package discovers film-detail URLs from the paginated program
// listing, extracts Film records from film-detail pages using ordered
// per-field fallback rules, and extracts Session records from either the
// ticketing panel embedded in a film page or the per-date schedule-grid
// pages. Extraction is best-effort throughout: missing containers and
// unparseable fields produce empty values, never errors.
package scraper
