// Package sweep implements the search-and-act pipeline.
//
// A run lists every message matching a Gmail query one page at a time and
// applies the requested action to each message, accumulating a Summary of
// matched and deleted counts plus the per-message errors encountered.
// Execution is strictly sequential; a failed delete is recorded and the
// run continues, while a failed list call aborts the run with the partial
// summary. The package also carries the mailbox maintenance loops
// (mark-all-read, archive-all) built on the same client.
package sweep
