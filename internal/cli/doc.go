// Package cli wires the filmharvest commands: scrape runs the harvest and
// writes the CSV dataset, browse and stats consume a written dataset.
package cli
