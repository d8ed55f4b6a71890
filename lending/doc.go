// Package lending provides the imperative shell of the lending library.
//
// The Service orchestrates checkout, return and the on-demand due-date sweep:
// it resolves items and borrowers through the Catalog port, takes the locks of every involved item,
// lets the pure decision functions of package core produce transitions, commits them,
// forwards the resulting events to the borrower's notification log and appends them to the journal.
//
// The SeriesCoordinator plans and commits series checkouts and returns all-or-nothing.
// The Registry covers registration and lookups: books, book copies, series, borrowers and search.
//
// Observability follows the same dependency-free port pattern as the journal engines:
// Logger, ContextualLogger, MetricsCollector and TracingCollector can be implemented by any backend,
// see package oteladapters for OpenTelemetry.
package lending
