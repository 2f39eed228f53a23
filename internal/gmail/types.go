package gmail

// MessageID identifies a single mail message. IDs are opaque and owned by
// the remote API.
type MessageID string

// LabelID identifies a Gmail label.
type LabelID string

// Query is a raw Gmail search expression. Syntax correctness is the remote
// API's responsibility; no local validation is attempted.
type Query struct {
	Raw string
}

// ListPage is one page of search results together with the continuation
// token for the next page. An empty NextPageToken means the listing is
// exhausted.
type ListPage struct {
	IDs           []MessageID
	NextPageToken string
}

// MessageMeta carries the requested metadata headers of one message.
type MessageMeta struct {
	ID      MessageID
	Headers map[string]string
}

// From returns the From header, if it was requested.
func (m MessageMeta) From() string { return m.Headers["From"] }

// Subject returns the Subject header, if it was requested.
func (m MessageMeta) Subject() string { return m.Headers["Subject"] }

// ModifyOps describes the label changes applied by BatchModify.
type ModifyOps struct {
	AddLabels    []LabelID
	RemoveLabels []LabelID
}

// Well-known system labels.
const (
	LabelUnread LabelID = "UNREAD"
	LabelInbox  LabelID = "INBOX"
)
