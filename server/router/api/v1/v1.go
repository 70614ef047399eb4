// Package v1 exposes the extraction HTTP API.
package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/calevents/calevents/internal/profile"
	"github.com/calevents/calevents/plugin/llm"
	"github.com/calevents/calevents/plugin/ocr"
	"github.com/calevents/calevents/plugin/textextract"
	"github.com/calevents/calevents/server/extractor"
	"github.com/calevents/calevents/server/middleware"
)

// ICSPath is the route prefix of the ICS retrieval endpoint. Generated
// ics_link values point below it.
const ICSPath = "/api/v1/ics"

// APIV1Service bundles the extraction pipeline and its collaborators behind
// the HTTP surface.
type APIV1Service struct {
	Profile   *profile.Profile
	Extractor *extractor.Extractor

	// OCRClient and TextExtractClient are nil when the corresponding
	// collaborator is disabled; the file endpoint then rejects that type.
	OCRClient         *ocr.Client
	TextExtractClient *textextract.Client

	rateLimiter *middleware.RateLimiter
}

// NewAPIV1Service wires the v1 API from the profile. A missing LLM credential
// does not fail construction; extraction requests surface it per request.
func NewAPIV1Service(p *profile.Profile) *APIV1Service {
	var completion llm.CompletionService
	if p.IsLLMConfigured() {
		svc, err := llm.NewCompletionService(&llm.Config{
			Provider: p.LLMProvider,
			APIKey:   p.LLMAPIKey,
			Model:    p.LLMModel,
			BaseURL:  p.LLMBaseURL,
			Timeout:  p.LLMTimeout,
		})
		if err != nil {
			slog.Error("failed to create completion service", "provider", p.LLMProvider, "error", err)
		} else {
			completion = svc
		}
	}

	icsBase := ICSPath
	if p.InstanceURL != "" {
		icsBase = p.InstanceURL + ICSPath
	}

	service := &APIV1Service{
		Profile:     p,
		Extractor:   extractor.NewExtractor(completion, p.DefaultTimezone, icsBase),
		rateLimiter: middleware.NewRateLimiter(p.RateLimitRPS),
	}

	if p.OCREnabled {
		service.OCRClient = ocr.NewClient(&ocr.Config{
			TesseractPath: p.TesseractPath,
			DataPath:      p.TessdataPath,
			Languages:     p.OCRLanguages,
		})
	}
	if p.TextExtractEnabled {
		service.TextExtractClient = textextract.NewClient(&textextract.Config{
			TikaServerURL: p.TikaServerURL,
		})
	}

	return service
}

// RegisterRoutes attaches all v1 routes to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	limited := s.rateLimiter.Middleware()
	g.POST("/extract", s.Extract, limited)
	g.POST("/extract/file", s.ExtractFile, limited)

	// ICS retrieval is cheap and cacheable; no rate limit.
	g.GET("/ics/:eventId", s.GetICS)
}
