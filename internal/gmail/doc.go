// Package gmail provides the narrow Gmail API surface used by mailpurge.
//
// The Client interface covers paginated message listing, single and batch
// deletion, metadata retrieval and label operations. The production
// implementation adapts *gmail.Service from google.golang.org/api; tests
// substitute a fake that records calls.
package gmail
