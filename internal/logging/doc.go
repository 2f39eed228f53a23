// Package logging provides structured logging for mailpurge.
//
// It centralizes slog handler construction and the attribute keys used
// across the codebase so log records stay consistent and greppable.
// Diagnostics go to stderr; the run summary is printed to stdout by the
// CLI and never routed through the logger.
package logging
