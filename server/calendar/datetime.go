// Package calendar builds calendar invite links and ICS documents from
// extracted event records. All generators are pure: identical input yields
// byte-identical output.
package calendar

import (
	"time"

	"github.com/pkg/errors"
)

const (
	// utcBasicFormat is the compact datetime layout required by the Google
	// Calendar dates parameter and by ICS DTSTART/DTEND: YYYYMMDDTHHMMSS.
	utcBasicFormat = "20060102T150405"

	// wallClockFormat is the offset-less layout used by the Outlook local
	// variant: YYYY-MM-DDTHH:mm:ss.
	wallClockFormat = "2006-01-02T15:04:05"
)

// parseLayouts are the accepted datetime layouts, most specific first.
// Offset-bearing layouts are tried before offset-less ones so an explicit
// offset always wins.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDateTime parses an ISO-8601 (or loosely formatted) datetime string.
// Strings without a usable offset are interpreted in loc rather than being
// shifted to UTC; loc defaults to UTC when nil.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unparsable datetime %q", s)
}

// FormatUTCBasic converts a datetime to the UTC-basic form YYYYMMDDTHHMMSSZ.
// The input is shifted to UTC first; fractional seconds are dropped.
func FormatUTCBasic(t time.Time) string {
	return t.UTC().Format(utcBasicFormat) + "Z"
}

// FormatWallClock renders the wall-clock time in the datetime's own zone,
// without any offset marker. Used for Outlook clients that misinterpret
// Z-suffixed times.
func FormatWallClock(t time.Time) string {
	return t.Format(wallClockFormat)
}
