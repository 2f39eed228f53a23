package sweep

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryWrite(t *testing.T) {
	var sb strings.Builder
	sum := Summary{Matched: 5, Deleted: 3, Errors: []MessageError{
		{ID: "m-001", Kind: KindDeleteFailed, Err: errors.New("permission denied")},
		{ID: "m-004", Kind: KindMetadataFailed, Err: errors.New("404")},
	}}
	require.NoError(t, sum.Write(&sb))

	out := sb.String()
	assert.Contains(t, out, "Matched messages: 5")
	assert.Contains(t, out, "Deleted messages: 3")
	assert.Contains(t, out, "Errors (2):")
	assert.Contains(t, out, "m-001: delete_failed: permission denied")
	assert.Contains(t, out, "m-004: metadata_failed: 404")
}

func TestSummaryWriteNoErrors(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Summary{Matched: 2, Deleted: 2}.Write(&sb))
	assert.NotContains(t, sb.String(), "Errors")
}
