package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calevents/calevents/server/calendar"
	"github.com/calevents/calevents/server/timezone"
)

// GetICS serves a downloadable iCalendar document built from query
// parameters. The endpoint is stateless: every field of the event rides in
// the URL, so links generated earlier keep working forever.
// GET /api/v1/ics/:eventId?title=...&description=...&start=...&end=...&location=...
func (s *APIV1Service) GetICS(c echo.Context) error {
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if start == "" || end == "" {
		return c.String(http.StatusBadRequest, "Missing start or end time")
	}

	title := c.QueryParam("title")
	if title == "" {
		title = "Event"
	}

	// Offset-less datetimes are treated as already being in the configured
	// default zone, never shifted.
	loc := timezone.Resolve("", s.Profile.DefaultTimezone)
	startTime, err := calendar.ParseDateTime(start, loc)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid start time")
	}
	endTime, err := calendar.ParseDateTime(end, loc)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid end time")
	}

	content := calendar.BuildICS(calendar.Event{
		Title:       title,
		Description: c.QueryParam("description"),
		Location:    c.QueryParam("location"),
		Start:       startTime,
		End:         endTime,
		StartRaw:    start,
		EndRaw:      end,
	})

	c.Response().Header().Set("Content-Disposition", `inline; filename=event.ics`)
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}
