package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/calevents/calevents/server/extractor"
	exerrors "github.com/calevents/calevents/server/internal/errors"
	"github.com/calevents/calevents/server/internal/observability"
)

// ExtractResponse is the uniform envelope of the extraction endpoint. Every
// outcome, success or failure, renders this shape; nothing propagates as a
// bare fault.
type ExtractResponse struct {
	Events    []extractor.EventWithLinks `json:"events"`
	Error     string                     `json:"error,omitempty"`
	GeminiRaw string                     `json:"gemini_raw,omitempty"`
}

// Extract handles one extraction request.
// POST /api/v1/extract
func (s *APIV1Service) Extract(c echo.Context) error {
	var req extractor.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ExtractResponse{
			Events: []extractor.EventWithLinks{},
			Error:  "invalid request body",
		})
	}

	reqCtx := observability.NewRequestContext(slog.Default(), s.providerName())
	ctx := observability.WithRequestContext(c.Request().Context(), reqCtx)

	result, err := s.Extractor.Extract(ctx, req)
	if err != nil {
		return s.renderExtractionError(c, reqCtx, err)
	}

	reqCtx.Info("extraction request served",
		slog.Int(observability.LogFieldEventCount, len(result.Events)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))

	return c.JSON(http.StatusOK, ExtractResponse{
		Events:    result.Events,
		GeminiRaw: result.Raw,
	})
}

// renderExtractionError maps the error taxonomy onto the uniform envelope.
// NoEventsExtracted and parse failures are expected outcomes and render 200;
// configuration and upstream failures render 500.
func (s *APIV1Service) renderExtractionError(c echo.Context, reqCtx *observability.RequestContext, err error) error {
	resp := ExtractResponse{Events: []extractor.EventWithLinks{}}

	exErr, ok := err.(*exerrors.ExtractionError)
	if !ok {
		reqCtx.Error("extraction failed", err)
		resp.Error = "Cannot extract events from your input"
		return c.JSON(http.StatusInternalServerError, resp)
	}

	reqCtx.Warn("extraction did not produce events",
		slog.String(observability.LogFieldErrorCode, string(exErr.Code)),
		slog.String("message", exErr.Message),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))

	resp.Error = exErr.Message
	resp.GeminiRaw = exErr.Raw

	switch exErr.Code {
	case exerrors.ErrCodeNoEvents:
		return c.JSON(http.StatusOK, resp)
	case exerrors.ErrCodeParse:
		resp.Error = "Parse error: " + exErr.Message
		return c.JSON(http.StatusOK, resp)
	case exerrors.ErrCodeInvalidArgument:
		return c.JSON(http.StatusBadRequest, resp)
	default:
		// CONFIGURATION, UPSTREAM, TIMEOUT
		return c.JSON(http.StatusInternalServerError, resp)
	}
}

func (s *APIV1Service) providerName() string {
	return s.Profile.LLMProvider
}
