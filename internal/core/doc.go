// Package core draws GDP-by-country maps from a delimited data file.
//
// The package holds the domain logic and nothing else; the CLI in cmd/gdpmap
// and the HTTP server in cmd/server are thin wrappers around [Service].
//
// # Pipeline
//
// A render runs four steps, each usable on its own:
//
//  1. [LoadTable] reads the file into a [Table] keyed by the country name column.
//  2. [Reconcile] splits the map's codes into those whose name is a table key
//     and those that are not.
//  3. [Resolve] turns the matched codes into log10 values for one year, or
//     files them under "no data" when the year is absent or empty.
//  4. A [MapRenderer] draws the three series and the service moves the
//     result into place.
//
// Nothing is cached between calls: every render reads the file again.
//
// # Errors
//
// Data problems are reported as typed errors ([FileAccessError], [SchemaError],
// [ParseError], [NumericDomainError]). [MapError] turns any error into a
// [UserMessage] with a support code.
//
// # History
//
// When a database is configured, each map written to disk is recorded by a
// [HistoryStore]. [StartHistoryPruner] removes old records.
package core
