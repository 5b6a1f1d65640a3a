// Package film provides the record types produced by the harvest pipeline.
//
// The film package defines Film (one program entry), Session (one scheduled
// screening) and CombinedRecord (the denormalized one-row-per-session join of
// the two). Film identity is derived solely from the trailing path segment of
// the film's canonical URL, so it stays stable across re-scrapes of the same
// page regardless of title changes.
package film
