// Package ocr extracts plain text from uploaded images using Tesseract.
// The extraction pipeline consumes it as "image in, raw text out"; anything
// beyond that (layout, confidence) is out of scope here.
package ocr

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"log/slog"
)

// SupportedMimeTypes are the image types accepted for OCR.
var SupportedMimeTypes = []string{
	"image/png",
	"image/jpeg",
	"image/jpg",
	"image/gif",
	"image/bmp",
	"image/webp",
}

// Config holds the OCR configuration.
type Config struct {
	// TesseractPath is the path to the tesseract executable.
	TesseractPath string
	// DataPath is the path to the tessdata directory (optional).
	DataPath string
	// Languages are the languages to use for OCR (e.g., "eng").
	Languages string
}

// DefaultConfig returns the default OCR configuration.
func DefaultConfig() *Config {
	return &Config{
		TesseractPath: "tesseract",
		DataPath:      "",
		Languages:     "eng",
	}
}

// Client provides OCR functionality.
type Client struct {
	config *Config
}

// NewClient creates a new OCR client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{config: config}
}

// ExtractText extracts text from an image using Tesseract OCR.
func (c *Client) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if !c.IsSupported(mimeType) {
		return "", errors.Errorf("unsupported MIME type: %s", mimeType)
	}

	tmpFile, err := os.CreateTemp("", "ocr_*.png")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)
	tmpFile.Close()

	if err := os.WriteFile(tmpPath, image, 0644); err != nil {
		return "", errors.Wrap(err, "failed to write temp file")
	}

	// Tesseract writes its output next to the given base path.
	outPath := strings.TrimSuffix(tmpPath, filepath.Ext(tmpPath))

	args := []string{tmpPath, outPath}
	if c.config.Languages != "" {
		args = append(args, "-l", c.config.Languages)
	}
	if c.config.DataPath != "" {
		args = append(args, "--tessdata-dir", c.config.DataPath)
	}

	cmd := exec.CommandContext(ctx, c.config.TesseractPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		slog.Warn("tesseract command failed", "error", err, "stderr", stderr.String())
		return "", errors.Wrap(err, "tesseract command failed")
	}

	txtPath := outPath + ".txt"
	defer os.Remove(txtPath)

	text, err := os.ReadFile(txtPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to read OCR output")
	}

	return strings.TrimSpace(string(text)), nil
}

// IsAvailable checks if Tesseract is available.
func (c *Client) IsAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, c.config.TesseractPath, "--version")
	return cmd.Run() == nil
}

// IsSupported checks if a MIME type is supported.
func (c *Client) IsSupported(mimeType string) bool {
	for _, supported := range SupportedMimeTypes {
		if strings.EqualFold(mimeType, supported) {
			return true
		}
	}
	return false
}

// imageSignature is a magic-number prefix identifying an image format.
type imageSignature struct {
	magic  []byte
	mime   string
	offset int
	check  []byte
}

var imageSignatures = []imageSignature{
	{magic: []byte{0xFF, 0xD8, 0xFF}, mime: "image/jpeg"},
	{magic: []byte{0x89, 0x50, 0x4E, 0x47}, mime: "image/png"},
	{magic: []byte{0x47, 0x49, 0x46, 0x38}, mime: "image/gif"},
	{magic: []byte{0x52, 0x49, 0x46, 0x46}, mime: "image/webp", offset: 8, check: []byte{0x57, 0x45, 0x42, 0x50}},
}

// SniffImageMime guesses an image MIME type from magic numbers. Returns ""
// when the data matches no known image format. Used when an upload arrives
// without a usable Content-Type.
func SniffImageMime(data []byte) string {
	for _, sig := range imageSignatures {
		if len(data) < len(sig.magic) {
			continue
		}
		if !bytes.Equal(data[:len(sig.magic)], sig.magic) {
			continue
		}
		if sig.check != nil {
			if len(data) < sig.offset+len(sig.check) || !bytes.Equal(data[sig.offset:sig.offset+len(sig.check)], sig.check) {
				continue
			}
		}
		return sig.mime
	}
	return ""
}
