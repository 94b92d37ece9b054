// Package extract pulls company facts out of parsed web pages using ordered
// heuristic cascades. Every exported extractor is deterministic for a given
// document, metadata and clock, and never returns an error: missing
// evidence is reported through Outcome.Found.
package extract
