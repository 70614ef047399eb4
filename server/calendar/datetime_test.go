package calendar

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		loc     *time.Location
		want    string // RFC3339 rendering of the expected instant
		wantErr bool
	}{
		{
			name:  "RFC3339 with offset",
			input: "2025-04-24T14:00:00+05:30",
			loc:   time.UTC,
			want:  "2025-04-24T14:00:00+05:30",
		},
		{
			name:  "RFC3339 with Z",
			input: "2025-04-24T08:30:00Z",
			loc:   kolkata,
			want:  "2025-04-24T08:30:00Z",
		},
		{
			name:  "offset-less interpreted in location",
			input: "2025-04-24T14:00:00",
			loc:   kolkata,
			want:  "2025-04-24T14:00:00+05:30",
		},
		{
			name:  "space-separated wall clock",
			input: "2025-04-24 14:00:00",
			loc:   kolkata,
			want:  "2025-04-24T14:00:00+05:30",
		},
		{
			name:  "date only",
			input: "2025-04-24",
			loc:   kolkata,
			want:  "2025-04-24T00:00:00+05:30",
		},
		{
			name:  "fractional seconds",
			input: "2025-04-24T14:00:00.500+05:30",
			loc:   time.UTC,
			want:  "2025-04-24T14:00:00+05:30",
		},
		{
			name:  "nil location defaults to UTC",
			input: "2025-04-24T14:00:00",
			loc:   nil,
			want:  "2025-04-24T14:00:00Z",
		},
		{
			name:    "gibberish",
			input:   "not a date",
			loc:     time.UTC,
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			loc:     time.UTC,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input, tt.loc)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want, err := time.Parse(time.RFC3339, tt.want)
			require.NoError(t, err)
			assert.True(t, got.Truncate(time.Second).Equal(want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFormatUTCBasic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "offset shifted to UTC",
			input: "2025-04-24T14:00:00+05:30",
			want:  "20250424T083000Z",
		},
		{
			name:  "already UTC",
			input: "2025-04-24T08:30:00Z",
			want:  "20250424T083000Z",
		},
		{
			name:  "negative offset crossing midnight",
			input: "2025-04-24T22:00:00-05:00",
			want:  "20250425T030000Z",
		},
	}

	utcBasicRe := regexp.MustCompile(`^\d{8}T\d{6}Z$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseDateTime(tt.input, time.UTC)
			require.NoError(t, err)
			got := FormatUTCBasic(parsed)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, utcBasicRe, got)
		})
	}
}

func TestFormatWallClock(t *testing.T) {
	parsed, err := ParseDateTime("2025-04-24T14:00:00+05:30", time.UTC)
	require.NoError(t, err)

	// Wall clock stays in the datetime's own zone; no offset marker.
	assert.Equal(t, "2025-04-24T14:00:00", FormatWallClock(parsed))
}
