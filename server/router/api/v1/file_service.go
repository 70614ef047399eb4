package v1

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/calevents/calevents/plugin/ocr"
	"github.com/calevents/calevents/plugin/textextract"
)

// maxUploadBytes bounds uploads before they reach the OCR or Tika
// collaborator.
const maxUploadBytes = 10 << 20 // 10 MiB

// FileTextResponse carries the plain text extracted from an upload. The
// caller feeds it back through the regular extraction endpoint.
type FileTextResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// ExtractFile extracts plain text from an uploaded image or document.
// POST /api/v1/extract/file (multipart, field "file")
func (s *APIV1Service) ExtractFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, FileTextResponse{Error: "no file received"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, FileTextResponse{Error: "file too large"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, FileTextResponse{Error: "failed to read file"})
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil || int64(len(data)) > maxUploadBytes {
		return c.JSON(http.StatusInternalServerError, FileTextResponse{Error: "failed to read file"})
	}

	mimeType := resolveMimeType(fileHeader.Header.Get("Content-Type"), fileHeader.Filename, data)

	ctx := c.Request().Context()
	var text string
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		if s.OCRClient == nil {
			return c.JSON(http.StatusServiceUnavailable, FileTextResponse{Error: "image extraction is not enabled"})
		}
		text, err = s.OCRClient.ExtractText(ctx, data, mimeType)
	case s.TextExtractClient != nil && s.TextExtractClient.IsSupported(mimeType):
		text, err = s.TextExtractClient.ExtractText(ctx, data, mimeType)
	case s.TextExtractClient == nil:
		return c.JSON(http.StatusServiceUnavailable, FileTextResponse{Error: "document extraction is not enabled"})
	default:
		return c.JSON(http.StatusBadRequest, FileTextResponse{Error: "unsupported file type: " + mimeType})
	}

	if err != nil {
		slog.Warn("file text extraction failed",
			slog.String("mime_type", mimeType),
			slog.String("filename", fileHeader.Filename),
			slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, FileTextResponse{Error: "failed to extract text from file"})
	}
	if strings.TrimSpace(text) == "" {
		return c.JSON(http.StatusUnprocessableEntity, FileTextResponse{Error: "no text extracted from file"})
	}

	return c.JSON(http.StatusOK, FileTextResponse{Text: text})
}

// resolveMimeType prefers the declared Content-Type, then image magic
// numbers, then filename extension and content sniffing.
func resolveMimeType(declared, filename string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if sniffed := ocr.SniffImageMime(data); sniffed != "" {
		return sniffed
	}
	return textextract.DetectContentType(filename, data)
}
