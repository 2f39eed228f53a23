package sweep

import (
	"fmt"
	"io"

	"github.com/mailpurge/mailpurge/internal/gmail"
)

// ErrorKind classifies a per-message failure recorded in a Summary.
type ErrorKind string

const (
	// KindDeleteFailed marks a message whose delete call failed.
	KindDeleteFailed ErrorKind = "delete_failed"

	// KindMetadataFailed marks a message whose header fetch failed.
	KindMetadataFailed ErrorKind = "metadata_failed"
)

// MessageError records one failed per-message action.
type MessageError struct {
	ID   gmail.MessageID
	Kind ErrorKind
	Err  error
}

// Summary aggregates the result of one pipeline run. It is owned by the
// run that produced it and holds errors in encounter order.
type Summary struct {
	Matched int
	Deleted int
	Errors  []MessageError
}

// Write renders the summary in the human-readable form printed at the end
// of a run.
func (s Summary) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Matched messages: %d\n", s.Matched); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Deleted messages: %d\n", s.Deleted); err != nil {
		return err
	}
	if len(s.Errors) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Errors (%d):\n", len(s.Errors)); err != nil {
		return err
	}
	for _, e := range s.Errors {
		if _, err := fmt.Fprintf(w, "  %s: %s: %v\n", e.ID, e.Kind, e.Err); err != nil {
			return err
		}
	}
	return nil
}
