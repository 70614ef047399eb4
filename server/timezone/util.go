// Package timezone provides timezone utilities for the calevents service.
//
// Relative expressions in user input ("tomorrow", "in 10 days") are resolved
// against the caller's zone, so consistent parsing and fallback behavior here
// is what keeps extracted events from drifting to the server's clock.
package timezone

import (
	"fmt"
	"time"
)

// UTC is the coordinated universal time timezone.
var UTC = time.UTC

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Kolkata").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// MustParseTimezone parses a timezone or panics if invalid.
// Use this for constants that are known to be valid at compile time.
func MustParseTimezone(tz string) *time.Location {
	loc, err := ParseTimezone(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	if tz == "" || tz == "UTC" {
		return true
	}

	_, err := time.LoadLocation(tz)
	return err == nil
}

// Resolve returns the location for the requested timezone, falling back to
// the configured default when the request carries none or an invalid value.
func Resolve(requested, fallback string) *time.Location {
	if requested != "" {
		if loc, err := ParseTimezone(requested); err == nil {
			return loc
		}
	}
	if loc, err := ParseTimezone(fallback); err == nil {
		return loc
	}
	return UTC
}

// NowInTimezone returns the current time in the given timezone.
func NowInTimezone(tz *time.Location) time.Time {
	if tz == nil {
		tz = UTC
	}
	return time.Now().In(tz)
}

// FormatPromptTime renders a time the way the extraction prompt anchors the
// current datetime: "2006-01-02 15:04:05" wall-clock in the user's zone.
func FormatPromptTime(t time.Time, tz *time.Location) string {
	if tz == nil {
		tz = UTC
	}
	return t.In(tz).Format("2006-01-02 15:04:05")
}
