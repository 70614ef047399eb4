// Package extractor implements the prompt-driven extraction pipeline:
// prompt construction, LLM response normalization, and orchestration of
// calendar link generation.
package extractor

import (
	"strings"

	"github.com/calevents/calevents/server/calendar"
)

// AttributionStamp is the fixed line appended, after a blank line, to every
// event description.
const AttributionStamp = "------\nEvent created by https://calevents.vercel.app "

// EventRecord is the normalized structured representation of one calendar
// event as produced by the extraction pipeline.
type EventRecord struct {
	// Title is a short, context-specific summary. Defaults to "Event".
	Title string `json:"title"`
	// Description lists every actionable fact from the input, one per line,
	// each line emoji-prefixed, lines separated by a blank line, terminated
	// by the attribution stamp.
	Description string `json:"description"`
	// Start and End are ISO-8601 datetimes with explicit UTC offset.
	Start string `json:"start"`
	End   string `json:"end"`
	// Location is a free-form place string, may be empty.
	Location string `json:"location"`
	// Notification is an optional relative-offset description such as
	// "30 minutes before start". Metadata only; nothing is scheduled here.
	Notification string `json:"notification,omitempty"`
}

// EventWithLinks is an EventRecord enriched with the generated calendar links.
type EventWithLinks struct {
	EventRecord
	calendar.Links
}

// HasAttribution reports whether the description already carries the stamp.
func (e *EventRecord) HasAttribution() bool {
	return strings.Contains(e.Description, "Event created by")
}

// EnsureAttribution appends the attribution stamp after a blank line when the
// description does not already end with it.
func (e *EventRecord) EnsureAttribution() {
	if e.HasAttribution() {
		return
	}
	desc := strings.TrimRight(e.Description, " \n\r\t")
	if desc == "" {
		e.Description = AttributionStamp
		return
	}
	e.Description = desc + "\n\n" + AttributionStamp
}
