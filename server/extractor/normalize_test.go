package extractor

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exerrors "github.com/calevents/calevents/server/internal/errors"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return NewNormalizer(loc, slog.Default())
}

func TestNormalizeValidArray(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `[
  {
    "title": "Lunch Meeting",
    "description": "🍽️ Lunch with team",
    "start": "2025-04-24T14:00:00+05:30",
    "end": "2025-04-24T15:00:00+05:30",
    "location": "Cafe Coffee Day, Mumbai"
  }
]`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Lunch Meeting", records[0].Title)
	assert.Equal(t, "2025-04-24T14:00:00+05:30", records[0].Start)
	assert.Equal(t, "2025-04-24T15:00:00+05:30", records[0].End)
	assert.Equal(t, "Cafe Coffee Day, Mumbai", records[0].Location)
}

func TestNormalizeFencedWithEmbeddedNewlines(t *testing.T) {
	// Model output wrapped in markdown fences with literal newlines inside a
	// string value still parses after fence-stripping and repair.
	n := newTestNormalizer(t)

	raw := "```json\n" +
		"[{\"title\": \"Dinner\", \"description\": \"🍽️ Dinner\n\n📍 Home\", " +
		"\"start\": \"2025-04-24T20:00:00+05:30\", \"end\": \"2025-04-24T21:00:00+05:30\", \"location\": \"Home\"}]" +
		"\n```"

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dinner", records[0].Title)
	assert.Contains(t, records[0].Description, "🍽️ Dinner\n\n📍 Home")
}

func TestNormalizeSurroundingProse(t *testing.T) {
	n := newTestNormalizer(t)

	raw := "Here is the extracted event:\n" +
		`[{"title": "Call", "start": "2025-04-24T10:00:00+05:30", "end": "", "description": "", "location": ""}]` +
		"\nLet me know if you need anything else!"

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Call", records[0].Title)
}

func TestNormalizeSingleObjectWrapped(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `{"title": "Standup", "start": "2025-04-24T09:30:00+05:30", "end": "2025-04-24T09:45:00+05:30", "description": "", "location": ""}`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Standup", records[0].Title)
}

func TestNormalizeEmptyArrayIsNoEvents(t *testing.T) {
	n := newTestNormalizer(t)

	_, err := n.Normalize("[]")
	require.Error(t, err)
	assert.True(t, exerrors.IsCode(err, exerrors.ErrCodeNoEvents))
}

func TestNormalizeGarbageIsParseError(t *testing.T) {
	n := newTestNormalizer(t)

	_, err := n.Normalize("I could not find any events, sorry!")
	require.Error(t, err)
	assert.True(t, exerrors.IsCode(err, exerrors.ErrCodeParse))

	// The parse error carries the cleaned raw text for diagnosis.
	exErr := err.(*exerrors.ExtractionError)
	assert.Contains(t, exErr.Raw, "could not find")
}

func TestNormalizeMissingEndDefaultsToOneHour(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `[{"title": "Lunch", "start": "2025-04-24T13:00:00+05:30", "description": "", "location": ""}]`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-04-24T13:00:00+05:30", records[0].Start)
	assert.Equal(t, "2025-04-24T14:00:00+05:30", records[0].End)
}

func TestNormalizeEndBeforeStartDefaultsToOneHour(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `[{"title": "Odd", "start": "2025-04-24T13:00:00+05:30", "end": "2025-04-24T09:00:00+05:30", "description": "", "location": ""}]`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-04-24T14:00:00+05:30", records[0].End)
}

func TestNormalizeOffsetLessStartUsesLocation(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `[{"title": "Gym", "start": "2025-04-24T07:00:00", "description": "", "location": ""}]`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	// Interpreted in Asia/Kolkata, not shifted to UTC.
	assert.Equal(t, "2025-04-24T07:00:00+05:30", records[0].Start)
}

func TestNormalizeDropsRecordWithoutStart(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `[
  {"title": "Keep me", "start": "2025-04-24T10:00:00+05:30", "description": "", "location": ""},
  {"title": "Drop me", "start": "", "description": "", "location": ""}
]`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Keep me", records[0].Title)
}

func TestNormalizeAllRecordsDroppedIsNoEvents(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `[{"title": "No time", "start": "", "description": "", "location": ""}]`

	_, err := n.Normalize(raw)
	require.Error(t, err)
	assert.True(t, exerrors.IsCode(err, exerrors.ErrCodeNoEvents))
}

func TestNormalizeDefaultTitle(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `[{"title": "", "start": "2025-04-24T10:00:00+05:30", "description": "", "location": ""}]`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Event", records[0].Title)
}

func TestNormalizeAppendsAttribution(t *testing.T) {
	n := newTestNormalizer(t)

	raw := `[{"title": "Lunch", "start": "2025-04-24T13:00:00+05:30", "description": "🍽️ Lunch with team", "location": ""}]`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, strings.HasSuffix(records[0].Description, "\n\n"+AttributionStamp),
		"description must end with the attribution stamp after a blank line, got %q", records[0].Description)
}

func TestNormalizeKeepsExistingAttribution(t *testing.T) {
	n := newTestNormalizer(t)

	desc := "🍽️ Lunch\\n\\n------\\nEvent created by https://calevents.vercel.app "
	raw := `[{"title": "Lunch", "start": "2025-04-24T13:00:00+05:30", "description": "` + desc + `", "location": ""}]`

	records, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, strings.Count(records[0].Description, "Event created by"))
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "json fence", input: "```json\n[]\n```", want: "[]"},
		{name: "bare fence", input: "```\n[]\n```", want: "[]"},
		{name: "uppercase fence", input: "```JSON\n[]\n```", want: "[]"},
		{name: "no fence", input: "  []  ", want: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.input))
		})
	}
}

func TestExtractBalancedArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare array",
			input: `[1, 2, 3]`,
			want:  `[1, 2, 3]`,
		},
		{
			name:  "array with prose around",
			input: `Sure! [1, [2], 3] done`,
			want:  `[1, [2], 3]`,
		},
		{
			name:  "brackets inside strings ignored",
			input: `[{"title": "a ] tricky [ one"}]`,
			want:  `[{"title": "a ] tricky [ one"}]`,
		},
		{
			name:  "escaped quote inside string",
			input: `[{"title": "say \" ] hi"}]`,
			want:  `[{"title": "say \" ] hi"}]`,
		},
		{
			name:  "no array",
			input: `{"a": 1}`,
			want:  "",
		},
		{
			name:  "unbalanced",
			input: `[1, 2`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractBalancedArray(tt.input))
		})
	}
}

func TestRepairControlCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "raw newline inside string",
			input: "{\"a\": \"x\ny\"}",
			want:  `{"a": "x\ny"}`,
		},
		{
			name:  "raw tab inside string",
			input: "{\"a\": \"x\ty\"}",
			want:  `{"a": "x\ty"}`,
		},
		{
			name:  "newline outside strings untouched",
			input: "{\n\"a\": \"b\"\n}",
			want:  "{\n\"a\": \"b\"\n}",
		},
		{
			name:  "already escaped stays escaped",
			input: `{"a": "x\ny"}`,
			want:  `{"a": "x\ny"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairControlCharacters(tt.input))
		})
	}
}
