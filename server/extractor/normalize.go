package extractor

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/calevents/calevents/server/calendar"
	exerrors "github.com/calevents/calevents/server/internal/errors"
)

// DefaultEventDuration is applied when the model omits the end time.
const DefaultEventDuration = time.Hour

// offsetLayout renders datetimes with an explicit numeric UTC offset, never a
// bare Z, for Apple Calendar compatibility.
const offsetLayout = "2006-01-02T15:04:05-07:00"

var (
	codeFencePattern = regexp.MustCompile("(?i)```json|```")

	// stringValuePattern matches a complete JSON string literal, including
	// ones that illegally contain raw control characters. (?s) lets escaped
	// pairs span line breaks.
	stringValuePattern = regexp.MustCompile(`(?s)"((?:[^"\\]|\\.)*)"`)
)

// Normalizer turns raw model output into validated event records.
// All failure modes surface as *errors.ExtractionError; it never panics past
// its own boundary.
type Normalizer struct {
	loc    *time.Location
	logger *slog.Logger
}

// NewNormalizer creates a normalizer. Offset-less datetimes in model output
// are interpreted in loc.
func NewNormalizer(loc *time.Location, logger *slog.Logger) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{loc: loc, logger: logger}
}

// Normalize cleans, parses, and validates the raw model reply.
// Returns ErrCodeNoEvents for an empty extraction and ErrCodeParse, carrying
// the cleaned text, when no repair produces valid JSON.
func (n *Normalizer) Normalize(raw string) (records []EventRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = exerrors.Parse("normalizer panic", nil, raw)
			n.logger.Error("normalizer recovered from panic", "panic", r)
		}
	}()

	cleaned := StripCodeFences(raw)
	// A reply that is already a bare object must not have a nested array
	// value mistaken for the top-level array.
	if !strings.HasPrefix(cleaned, "{") {
		if candidate := ExtractBalancedArray(cleaned); candidate != "" {
			cleaned = candidate
		}
	}
	cleaned = RepairControlCharacters(cleaned)

	parsed, perr := parseEventJSON(cleaned)
	if perr != nil {
		return nil, exerrors.Parse("model output is not valid JSON", perr, cleaned)
	}

	if len(parsed) == 0 {
		return nil, exerrors.NoEvents("No events extracted from your input").WithRaw(cleaned)
	}

	records = make([]EventRecord, 0, len(parsed))
	for i, rec := range parsed {
		validated, verr := n.validateRecord(rec)
		if verr != nil {
			// A defective element is dropped with a warning; the rest of the
			// batch survives.
			n.logger.Warn("dropping unusable event record",
				slog.Int("index", i),
				slog.String("title", rec.Title),
				slog.String("error", verr.Error()))
			continue
		}
		records = append(records, validated)
	}

	if len(records) == 0 {
		return nil, exerrors.NoEvents("No events extracted from your input").WithRaw(cleaned)
	}
	return records, nil
}

// StripCodeFences removes surrounding markdown code-fence markers and trims
// whitespace.
func StripCodeFences(s string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(s, ""))
}

// ExtractBalancedArray returns the first balanced top-level JSON array
// literal in s, or "" when none exists. Bracket counting is string-aware, so
// brackets inside quoted values do not confuse it.
func ExtractBalancedArray(s string) string {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// RepairControlCharacters re-escapes raw newline, carriage-return, and tab
// characters occurring strictly inside quoted string values. Models emit
// literal line breaks inside descriptions often enough that this best-effort
// pass pays for itself; it makes no claim of fixing arbitrary malformed JSON.
func RepairControlCharacters(s string) string {
	return stringValuePattern.ReplaceAllStringFunc(s, func(match string) string {
		inner := match[1 : len(match)-1]
		inner = strings.ReplaceAll(inner, "\n", `\n`)
		inner = strings.ReplaceAll(inner, "\r", `\r`)
		inner = strings.ReplaceAll(inner, "\t", `\t`)
		return `"` + inner + `"`
	})
}

// parseEventJSON parses cleaned text as an array of event records, wrapping a
// single object into a one-element array.
func parseEventJSON(s string) ([]EventRecord, error) {
	var records []EventRecord
	arrErr := json.Unmarshal([]byte(s), &records)
	if arrErr == nil {
		return records, nil
	}

	var single EventRecord
	if err := json.Unmarshal([]byte(s), &single); err == nil {
		return []EventRecord{single}, nil
	}
	return nil, arrErr
}

// validateRecord applies the default-filling policy to one parsed element.
// A record without a parseable start time is rejected.
func (n *Normalizer) validateRecord(rec EventRecord) (EventRecord, error) {
	if strings.TrimSpace(rec.Title) == "" {
		rec.Title = "Event"
	}

	start, err := calendar.ParseDateTime(strings.TrimSpace(rec.Start), n.loc)
	if err != nil {
		return rec, exerrors.InvalidArgument("event has no usable start time")
	}
	rec.Start = start.Format(offsetLayout)

	end, endErr := calendar.ParseDateTime(strings.TrimSpace(rec.End), n.loc)
	if endErr != nil || end.Before(start) {
		end = start.Add(DefaultEventDuration)
	}
	rec.End = end.Format(offsetLayout)

	rec.Location = strings.TrimSpace(rec.Location)
	rec.EnsureAttribution()

	return rec, nil
}
