package calendar

import (
	"fmt"
	"net/url"
	"time"
)

const (
	googleCalendarBase  = "https://calendar.google.com/calendar/render?action=TEMPLATE"
	outlookCalendarBase = "https://outlook.live.com/calendar/0/deeplink/compose?path=/calendar/action/compose&rru=addevent"
)

// Event is the normalized input to the link generators.
type Event struct {
	Title       string
	Description string
	Location    string

	// Start and End are the parsed, offset-aware datetimes.
	Start time.Time
	End   time.Time

	// StartRaw and EndRaw are the original offset-bearing strings from the
	// event record. The Outlook UTC variant passes them through untouched.
	StartRaw string
	EndRaw   string
}

// Links holds every generated link for one event.
type Links struct {
	Google       string `json:"google_link"`
	Outlook      string `json:"outlook_link"`
	OutlookLocal string `json:"outlook_link_local"`
	ICS          string `json:"ics_link"`
}

// Generate builds all four links for an event. icsBase is the URL prefix of
// the ICS retrieval endpoint (e.g. "/api/v1/ics" or an absolute instance URL).
func Generate(e Event, icsBase string) Links {
	return Links{
		Google:       GoogleLink(e),
		Outlook:      OutlookLink(e),
		OutlookLocal: OutlookLinkLocal(e),
		ICS:          ICSLink(e, icsBase),
	}
}

// GoogleLink builds a Google Calendar render URL. The dates parameter is the
// UTC-basic start/end pair separated by a literal slash.
func GoogleLink(e Event) string {
	return fmt.Sprintf("%s&text=%s&dates=%s/%s&details=%s&location=%s",
		googleCalendarBase,
		url.QueryEscape(e.Title),
		FormatUTCBasic(e.Start),
		FormatUTCBasic(e.End),
		url.QueryEscape(e.Description),
		url.QueryEscape(e.Location),
	)
}

// OutlookLink builds an Outlook deeplink using the original offset-bearing
// datetime strings as startdt/enddt.
func OutlookLink(e Event) string {
	return fmt.Sprintf("%s&subject=%s&body=%s&startdt=%s&enddt=%s&location=%s",
		outlookCalendarBase,
		url.QueryEscape(e.Title),
		url.QueryEscape(e.Description),
		url.QueryEscape(e.StartRaw),
		url.QueryEscape(e.EndRaw),
		url.QueryEscape(e.Location),
	)
}

// OutlookLinkLocal builds the Outlook deeplink variant that renders start and
// end as offset-less wall-clock times. Some Outlook clients shift Z-suffixed
// times to the wrong zone; this variant sidesteps that.
func OutlookLinkLocal(e Event) string {
	return fmt.Sprintf("%s&subject=%s&body=%s&startdt=%s&enddt=%s&location=%s",
		outlookCalendarBase,
		url.QueryEscape(e.Title),
		url.QueryEscape(e.Description),
		url.QueryEscape(FormatWallClock(e.Start)),
		url.QueryEscape(FormatWallClock(e.End)),
		url.QueryEscape(e.Location),
	)
}

// ICSLink builds the server-side ICS retrieval URL for an event. The event
// parameters ride in the query string so the endpoint stays stateless.
func ICSLink(e Event, icsBase string) string {
	name := e.Title
	if name == "" {
		name = "event"
	}
	params := url.Values{
		"title":       {e.Title},
		"description": {e.Description},
		"start":       {e.StartRaw},
		"end":         {e.EndRaw},
		"location":    {e.Location},
	}
	return fmt.Sprintf("%s/%s?%s", icsBase, url.PathEscape(name), params.Encode())
}
