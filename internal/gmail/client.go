package gmail

import "context"

// Client is the narrow Gmail surface required by mailpurge.
type Client interface {
	// List returns one page of messages matching q. Pass the
	// NextPageToken of the previous page to advance; an empty token
	// requests the first page.
	List(ctx context.Context, q Query, pageToken string, pageSize int64) (ListPage, error)

	// GetMetadata fetches the given headers of a single message.
	GetMetadata(ctx context.Context, id MessageID, headers []string) (MessageMeta, error)

	// Delete permanently removes a single message.
	Delete(ctx context.Context, id MessageID) error

	// BatchDelete permanently removes up to MaxBatchSize messages in one
	// call.
	BatchDelete(ctx context.Context, ids []MessageID) error

	// BatchModify applies label changes to up to MaxBatchSize messages.
	BatchModify(ctx context.Context, ids []MessageID, ops ModifyOps) error

	// EnsureLabel returns the ID of the named label, creating it if it
	// does not exist yet.
	EnsureLabel(ctx context.Context, name string) (LabelID, error)
}

// MaxBatchSize is the Gmail API limit on ids per batchDelete/batchModify
// request.
const MaxBatchSize = 1000
