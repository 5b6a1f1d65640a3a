// Package pipeline orchestrates the harvest: discover film pages, extract
// film and session records, deduplicate sessions, and reconcile the two
// record sets into one denormalized row per session.
//
// Execution is strictly sequential and best-effort: a failure on one page is
// logged and skipped, never aborting the run, so the output is always the
// maximal partial dataset the site allowed. All accumulation happens in a
// Run owned by the caller; there is no process-global state.
package pipeline
