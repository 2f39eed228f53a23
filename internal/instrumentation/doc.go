// Package instrumentation provides OpenTelemetry metrics for mailpurge.
//
// A run records how many messages it matched and deleted, how many
// per-message errors it hit and how many API calls it issued. Because the
// program is a one-shot CLI there is nothing to scrape, so metrics are
// disabled by default and, when enabled via INSTRUMENTATION_ENABLED,
// exported to stdout and flushed once at process end.
package instrumentation
