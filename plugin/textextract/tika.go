// Package textextract extracts plain text from uploaded documents (PDF,
// Word, plain text) through an Apache Tika server. The extraction pipeline
// consumes it as "document in, raw text out".
package textextract

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SupportedMimeTypes are the document types accepted for text extraction.
var SupportedMimeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/rtf",
	"text/plain",
	"text/rtf",
}

// Config holds the text extraction configuration.
type Config struct {
	// TikaServerURL is the URL of the Tika server (e.g., http://localhost:9998).
	TikaServerURL string
	// Timeout is the HTTP timeout for Tika server requests.
	Timeout time.Duration
}

// DefaultConfig returns the default text extraction configuration.
func DefaultConfig() *Config {
	return &Config{
		TikaServerURL: "http://localhost:9998",
		Timeout:       30 * time.Second,
	}
}

// Client provides text extraction functionality.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new text extraction client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// ExtractText extracts plain text from a document.
func (c *Client) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	if !c.IsSupported(contentType) {
		return "", errors.Errorf("unsupported content type: %s", contentType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.config.TikaServerURL+"/tika",
		bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "tika server request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("tika server returned status %d: %s", resp.StatusCode, string(body))
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response")
	}

	return strings.TrimSpace(string(text)), nil
}

// IsAvailable checks if the Tika server responds.
func (c *Client) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.TikaServerURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// IsSupported checks if a MIME type is supported.
func (c *Client) IsSupported(contentType string) bool {
	// Strip parameters like "; charset=utf-8".
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	for _, supported := range SupportedMimeTypes {
		if strings.EqualFold(contentType, supported) {
			return true
		}
	}
	return false
}

// DetectContentType resolves a document's content type from its filename
// extension, falling back to content sniffing.
func DetectContentType(filename string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
