package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   nil,
			want: []string{"sweep"},
		},
		{
			name: "bare flags get the sweep command",
			in:   []string{"--search", "invoice", "--delete"},
			want: []string{"sweep", "--search", "invoice", "--delete"},
		},
		{
			name: "explicit subcommand untouched",
			in:   []string{"auth"},
			want: []string{"auth"},
		},
		{
			name: "version flag untouched",
			in:   []string{"--version"},
			want: []string{"--version"},
		},
		{
			name: "help flag untouched",
			in:   []string{"--help"},
			want: []string{"--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultArgs(tt.in))
		})
	}
}

func TestSweepRequiresSearch(t *testing.T) {
	cmd := newSweepCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "--search is required")
}
