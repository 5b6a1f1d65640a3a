// Package dataset persists harvest results as CSV files and reads them
// back for browsing. Columns are addressed by header name on the way in,
// so files survive column reordering by spreadsheet tools.
package dataset
