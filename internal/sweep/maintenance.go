package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailpurge/mailpurge/internal/gmail"
	"github.com/mailpurge/mailpurge/internal/logging"
	"github.com/mailpurge/mailpurge/internal/rate"
)

// MarkAllRead removes the UNREAD label from every unread message, one page
// at a time, and returns how many messages were modified. A failed list or
// modify call aborts with the count reached so far.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	log := s.Log.With(logging.Operation("mark-read"))
	q := gmail.Query{Raw: "is:unread"}
	ops := gmail.ModifyOps{RemoveLabels: []gmail.LabelID{gmail.LabelUnread}}

	total := 0
	pageToken := ""
	for {
		if err := rate.Wait(ctx, s.Rate); err != nil {
			return total, err
		}
		page, err := s.Client.List(ctx, q, pageToken, s.pageSize())
		if err != nil {
			return total, fmt.Errorf("list unread messages: %w", err)
		}
		s.Metrics.RecordAPICall(ctx, "messages.list")
		if len(page.IDs) == 0 {
			break
		}

		if err := rate.Wait(ctx, s.Rate); err != nil {
			return total, err
		}
		if err := s.Client.BatchModify(ctx, page.IDs, ops); err != nil {
			return total, fmt.Errorf("mark page as read: %w", err)
		}
		s.Metrics.RecordAPICall(ctx, "messages.batchModify")
		total += len(page.IDs)
		log.Info("page marked as read", logging.Count(len(page.IDs)))

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	log.Info("mark-read complete", logging.Count(total))
	return total, nil
}

// ArchiveAll moves every inbox message out of the inbox and applies a
// fresh archive_<timestamp> label so the run can be undone by hand. It
// returns the number of archived messages and the label name. The now
// function defaults to time.Now.
func (s *Service) ArchiveAll(ctx context.Context, now func() time.Time) (int, string, error) {
	if now == nil {
		now = time.Now
	}
	name := "archive_" + now().Format("20060102_150405")
	log := s.Log.With(logging.Operation("archive-all"))

	if err := rate.Wait(ctx, s.Rate); err != nil {
		return 0, name, err
	}
	label, err := s.Client.EnsureLabel(ctx, name)
	if err != nil {
		return 0, name, fmt.Errorf("ensure archive label: %w", err)
	}

	q := gmail.Query{Raw: "in:inbox"}
	ops := gmail.ModifyOps{
		AddLabels:    []gmail.LabelID{label},
		RemoveLabels: []gmail.LabelID{gmail.LabelInbox},
	}

	total := 0
	pageToken := ""
	for {
		if err := rate.Wait(ctx, s.Rate); err != nil {
			return total, name, err
		}
		page, err := s.Client.List(ctx, q, pageToken, s.pageSize())
		if err != nil {
			return total, name, fmt.Errorf("list inbox messages: %w", err)
		}
		s.Metrics.RecordAPICall(ctx, "messages.list")
		if len(page.IDs) == 0 {
			break
		}

		if err := rate.Wait(ctx, s.Rate); err != nil {
			return total, name, err
		}
		if err := s.Client.BatchModify(ctx, page.IDs, ops); err != nil {
			return total, name, fmt.Errorf("archive page: %w", err)
		}
		s.Metrics.RecordAPICall(ctx, "messages.batchModify")
		total += len(page.IDs)
		log.Info("page archived", logging.Count(len(page.IDs)), slog.String("label", name))

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	log.Info("archive-all complete", logging.Count(total), slog.String("label", name))
	return total, name, nil
}
