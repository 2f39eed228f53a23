package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mailpurge/mailpurge/internal/gmail"
	"github.com/mailpurge/mailpurge/internal/instrumentation"
	"github.com/mailpurge/mailpurge/internal/logging"
	"github.com/mailpurge/mailpurge/internal/rate"
)

const defaultPageSize = 500

// metadataHeaders are the headers fetched for --show-headers.
var metadataHeaders = []string{"From", "Subject"}

// Spec describes one pipeline run.
type Spec struct {
	// Query is the Gmail search expression. Required.
	Query string

	// Delete removes every matched message. When false the run is a
	// dry-run listing and no delete calls are issued.
	Delete bool

	// Batch collects ids during pagination and deletes them in chunks of
	// gmail.MaxBatchSize after the listing completes, instead of one
	// delete call per message.
	Batch bool

	// ShowHeaders fetches and logs From/Subject for every matched
	// message.
	ShowHeaders bool
}

// Service drives the search-and-act pipeline over the Gmail client.
// Rate and Metrics are optional.
type Service struct {
	Client   gmail.Client
	Log      *slog.Logger
	Rate     rate.Limiter
	Metrics  *instrumentation.Metrics
	PageSize int64
}

// NewService returns a Service with the default page size.
func NewService(client gmail.Client, log *slog.Logger) *Service {
	return &Service{Client: client, Log: log, PageSize: defaultPageSize}
}

func (s *Service) pageSize() int64 {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return defaultPageSize
}

// Run enumerates every message matching spec.Query and applies the
// requested action, returning the run summary.
//
// A per-message delete failure is recorded in the summary and the run
// continues. A failed list call is fatal: Run returns the summary
// accumulated so far together with the error. Zero matches is a normal
// run with an all-zero summary.
func (s *Service) Run(ctx context.Context, spec Spec) (Summary, error) {
	var sum Summary
	if strings.TrimSpace(spec.Query) == "" {
		return sum, errors.New("search query must not be empty")
	}

	q := gmail.Query{Raw: spec.Query}
	log := s.Log.With(logging.Operation("sweep"), slog.String(logging.KeyQuery, spec.Query))
	log.Debug("run starting", slog.Bool("delete", spec.Delete), slog.Bool("batch", spec.Batch))

	var pending []gmail.MessageID // ids awaiting batch deletion
	pageToken := ""
	for {
		if err := rate.Wait(ctx, s.Rate); err != nil {
			return sum, err
		}
		page, err := s.Client.List(ctx, q, pageToken, s.pageSize())
		if err != nil {
			return sum, fmt.Errorf("list messages: %w", err)
		}
		s.Metrics.RecordAPICall(ctx, "messages.list")
		log.Debug("page listed", logging.Count(len(page.IDs)))

		for _, id := range page.IDs {
			sum.Matched++
			s.Metrics.RecordMatched(ctx, 1)
			if spec.ShowHeaders {
				s.showHeaders(ctx, log, id, &sum)
			}
			if !spec.Delete {
				continue
			}
			if spec.Batch {
				pending = append(pending, id)
				continue
			}
			if err := s.deleteOne(ctx, log, id, &sum); err != nil {
				return sum, err
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	if spec.Delete && spec.Batch {
		if err := s.deleteBatches(ctx, log, pending, &sum); err != nil {
			return sum, err
		}
	}

	log.Info("run complete",
		slog.Int("matched", sum.Matched),
		slog.Int("deleted", sum.Deleted),
		slog.Int("errors", len(sum.Errors)))
	return sum, nil
}

// deleteOne issues a single delete call. API failures are recorded in the
// summary; only context cancellation aborts the run.
func (s *Service) deleteOne(ctx context.Context, log *slog.Logger, id gmail.MessageID, sum *Summary) error {
	if err := rate.Wait(ctx, s.Rate); err != nil {
		return err
	}
	if err := s.Client.Delete(ctx, id); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("delete failed", logging.MessageID(string(id)), logging.Err(err))
		sum.Errors = append(sum.Errors, MessageError{ID: id, Kind: KindDeleteFailed, Err: err})
		s.Metrics.RecordMessageError(ctx, string(KindDeleteFailed))
		return nil
	}
	s.Metrics.RecordAPICall(ctx, "messages.delete")
	sum.Deleted++
	s.Metrics.RecordDeleted(ctx, 1)
	return nil
}

// deleteBatches removes the collected ids in chunks of gmail.MaxBatchSize.
// A failed chunk records an error for every id in it and the remaining
// chunks are still attempted.
func (s *Service) deleteBatches(ctx context.Context, log *slog.Logger, ids []gmail.MessageID, sum *Summary) error {
	for start := 0; start < len(ids); start += gmail.MaxBatchSize {
		end := min(start+gmail.MaxBatchSize, len(ids))
		chunk := ids[start:end]
		if err := rate.Wait(ctx, s.Rate); err != nil {
			return err
		}
		if err := s.Client.BatchDelete(ctx, chunk); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("batch delete failed", logging.Count(len(chunk)), logging.Err(err))
			for _, id := range chunk {
				sum.Errors = append(sum.Errors, MessageError{ID: id, Kind: KindDeleteFailed, Err: err})
				s.Metrics.RecordMessageError(ctx, string(KindDeleteFailed))
			}
			continue
		}
		s.Metrics.RecordAPICall(ctx, "messages.batchDelete")
		sum.Deleted += len(chunk)
		s.Metrics.RecordDeleted(ctx, len(chunk))
		log.Info("batch deleted", logging.Count(len(chunk)))
	}
	return nil
}

func (s *Service) showHeaders(ctx context.Context, log *slog.Logger, id gmail.MessageID, sum *Summary) {
	if err := rate.Wait(ctx, s.Rate); err != nil {
		return
	}
	meta, err := s.Client.GetMetadata(ctx, id, metadataHeaders)
	if err != nil {
		log.Warn("metadata fetch failed", logging.MessageID(string(id)), logging.Err(err))
		sum.Errors = append(sum.Errors, MessageError{ID: id, Kind: KindMetadataFailed, Err: err})
		s.Metrics.RecordMessageError(ctx, string(KindMetadataFailed))
		return
	}
	s.Metrics.RecordAPICall(ctx, "messages.get")
	log.Info("matched message",
		logging.MessageID(string(id)),
		slog.String("from", meta.From()),
		slog.String("subject", meta.Subject()))
}
