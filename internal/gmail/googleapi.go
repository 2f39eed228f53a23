package gmail

import (
	"context"
	"fmt"
	"net/http"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// user addresses the authenticated mailbox in every API call.
const user = "me"

// googleClient adapts *gmail.Service to the Client interface.
type googleClient struct {
	svc *gmailapi.Service
}

// NewClient builds a Client over the Gmail API using an HTTP client that
// already carries OAuth credentials.
func NewClient(ctx context.Context, hc *http.Client, opts ...option.ClientOption) (Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(hc)}, opts...)
	svc, err := gmailapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &googleClient{svc: svc}, nil
}

func (g *googleClient) List(ctx context.Context, q Query, pageToken string, pageSize int64) (ListPage, error) {
	call := g.svc.Users.Messages.List(user).Q(q.Raw)
	if pageSize > 0 {
		call = call.MaxResults(pageSize)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	res, err := call.Context(ctx).Do()
	if err != nil {
		return ListPage{}, err
	}
	page := ListPage{NextPageToken: res.NextPageToken}
	for _, m := range res.Messages {
		page.IDs = append(page.IDs, MessageID(m.Id))
	}
	return page, nil
}

func (g *googleClient) GetMetadata(ctx context.Context, id MessageID, headers []string) (MessageMeta, error) {
	call := g.svc.Users.Messages.Get(user, string(id)).Format("metadata")
	if len(headers) > 0 {
		call = call.MetadataHeaders(headers...)
	}
	msg, err := call.Context(ctx).Do()
	if err != nil {
		return MessageMeta{}, err
	}
	meta := MessageMeta{ID: id, Headers: map[string]string{}}
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			meta.Headers[h.Name] = h.Value
		}
	}
	return meta, nil
}

func (g *googleClient) Delete(ctx context.Context, id MessageID) error {
	return g.svc.Users.Messages.Delete(user, string(id)).Context(ctx).Do()
}

func (g *googleClient) BatchDelete(ctx context.Context, ids []MessageID) error {
	if len(ids) > MaxBatchSize {
		return fmt.Errorf("batch delete of %d ids exceeds the %d id limit", len(ids), MaxBatchSize)
	}
	req := &gmailapi.BatchDeleteMessagesRequest{Ids: toStrings(ids)}
	return g.svc.Users.Messages.BatchDelete(user, req).Context(ctx).Do()
}

func (g *googleClient) BatchModify(ctx context.Context, ids []MessageID, ops ModifyOps) error {
	if len(ids) > MaxBatchSize {
		return fmt.Errorf("batch modify of %d ids exceeds the %d id limit", len(ids), MaxBatchSize)
	}
	req := &gmailapi.BatchModifyMessagesRequest{Ids: toStrings(ids)}
	for _, l := range ops.AddLabels {
		req.AddLabelIds = append(req.AddLabelIds, string(l))
	}
	for _, l := range ops.RemoveLabels {
		req.RemoveLabelIds = append(req.RemoveLabelIds, string(l))
	}
	return g.svc.Users.Messages.BatchModify(user, req).Context(ctx).Do()
}

func (g *googleClient) EnsureLabel(ctx context.Context, name string) (LabelID, error) {
	res, err := g.svc.Users.Labels.List(user).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list labels: %w", err)
	}
	for _, l := range res.Labels {
		if l.Name == name {
			return LabelID(l.Id), nil
		}
	}
	created, err := g.svc.Users.Labels.Create(user, &gmailapi.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create label %q: %w", name, err)
	}
	return LabelID(created.Id), nil
}

func toStrings(ids []MessageID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
