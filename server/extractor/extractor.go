package extractor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/calevents/calevents/plugin/llm"
	"github.com/calevents/calevents/server/calendar"
	exerrors "github.com/calevents/calevents/server/internal/errors"
	"github.com/calevents/calevents/server/internal/observability"
	"github.com/calevents/calevents/server/timezone"
)

// Request is one extraction request.
type Request struct {
	// Text is the raw input to extract events from.
	Text string `json:"text"`
	// Timezone is the caller's IANA timezone; the configured fallback is
	// used when empty or invalid.
	Timezone string `json:"timezone,omitempty"`
	// CurrentTime is the caller's clock (ISO-8601), preferred over server
	// wall-clock to avoid client/server skew.
	CurrentTime string `json:"currentTime,omitempty"`
}

// Result is a successful extraction: validated records with links attached,
// plus the cleaned raw model output for diagnosis.
type Result struct {
	Events []EventWithLinks
	Raw    string
}

// Extractor wires prompt building, the LLM call, normalization, and link
// generation. Stateless across requests; safe for concurrent use.
type Extractor struct {
	completion      llm.CompletionService
	prompts         *PromptBuilder
	defaultTimezone string
	icsBase         string
	now             func() time.Time
}

// NewExtractor creates the extraction orchestrator. completion may be nil
// when no credential is configured; every Extract call then fails with a
// configuration error.
func NewExtractor(completion llm.CompletionService, defaultTimezone, icsBase string) *Extractor {
	return &Extractor{
		completion:      completion,
		prompts:         NewPromptBuilder(),
		defaultTimezone: defaultTimezone,
		icsBase:         icsBase,
		now:             time.Now,
	}
}

// Extract runs the full pipeline for one request. All failure modes are
// *errors.ExtractionError; NoEvents and Parse errors carry the raw model
// output.
func (x *Extractor) Extract(ctx context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, exerrors.InvalidArgument("text is required")
	}

	if x.completion == nil {
		return nil, exerrors.Configuration("LLM API key not set.")
	}

	loc := timezone.Resolve(req.Timezone, x.defaultTimezone)
	now := x.resolveNow(req.CurrentTime, loc)
	nowStr := timezone.FormatPromptTime(now, loc)

	logger := x.requestLogger(ctx)
	logger.Info("starting extraction",
		slog.String(observability.LogFieldTimezone, loc.String()),
		slog.Int(observability.LogFieldInputLen, len(text)),
		slog.String("prompt_version", PromptVersion))

	prompt := x.prompts.Build(text, nowStr, loc.String())

	// Single attempt, fail fast. The provider's own timeout bounds the call.
	raw, err := x.completion.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, exerrors.Timeout("LLM call canceled or timed out")
		}
		return nil, exerrors.Upstream("LLM API error", err)
	}

	records, err := NewNormalizer(loc, slog.Default()).Normalize(raw)
	if err != nil {
		return nil, err
	}

	events := make([]EventWithLinks, 0, len(records))
	for _, rec := range records {
		events = append(events, EventWithLinks{
			EventRecord: rec,
			Links:       calendar.Generate(x.calendarEvent(rec, loc), x.icsBase),
		})
	}

	logger.Info("extraction complete",
		slog.Int(observability.LogFieldEventCount, len(events)))

	return &Result{Events: events, Raw: StripCodeFences(raw)}, nil
}

// resolveNow prefers the client-supplied timestamp over the server clock.
func (x *Extractor) resolveNow(currentTime string, loc *time.Location) time.Time {
	if currentTime != "" {
		if t, err := calendar.ParseDateTime(currentTime, loc); err == nil {
			return t
		}
	}
	return x.now()
}

// calendarEvent converts a validated record into the link generators' input.
// Record datetimes are normalizer output and always parse; the zero time
// would only appear if that invariant broke.
func (x *Extractor) calendarEvent(rec EventRecord, loc *time.Location) calendar.Event {
	start, _ := calendar.ParseDateTime(rec.Start, loc)
	end, _ := calendar.ParseDateTime(rec.End, loc)
	return calendar.Event{
		Title:       rec.Title,
		Description: rec.Description,
		Location:    rec.Location,
		Start:       start,
		End:         end,
		StartRaw:    rec.Start,
		EndRaw:      rec.End,
	}
}

func (x *Extractor) requestLogger(ctx context.Context) *observability.RequestContext {
	if reqCtx, ok := observability.FromContext(ctx); ok {
		return reqCtx
	}
	name := "none"
	if x.completion != nil {
		name = x.completion.Name()
	}
	return observability.NewRequestContext(slog.Default(), name)
}
