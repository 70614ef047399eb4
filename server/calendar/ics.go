package calendar

import (
	"fmt"
	"strings"
)

// BuildICS renders an event as an iCalendar document. Output is deterministic:
// no DTSTAMP or generated UID, so identical records produce identical bytes.
func BuildICS(e Event) string {
	var builder strings.Builder

	builder.WriteString("BEGIN:VCALENDAR\r\n")
	builder.WriteString("VERSION:2.0\r\n")
	builder.WriteString("PRODID:-//calevents//calevents//EN\r\n")
	builder.WriteString("BEGIN:VEVENT\r\n")
	builder.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeText(e.Title)))
	builder.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeText(e.Description)))
	builder.WriteString(fmt.Sprintf("DTSTART:%s\r\n", FormatUTCBasic(e.Start)))
	builder.WriteString(fmt.Sprintf("DTEND:%s\r\n", FormatUTCBasic(e.End)))
	builder.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeText(e.Location)))
	builder.WriteString("END:VEVENT\r\n")
	builder.WriteString("END:VCALENDAR\r\n")

	return builder.String()
}

// escapeText escapes TEXT property values per RFC 5545 §3.3.11.
func escapeText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}
