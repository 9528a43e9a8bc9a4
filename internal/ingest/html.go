// Package ingest holds local preprocessing helpers that run before content
// is handed to the platform client: HTML cleanup and caller-controlled
// chunking.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/code-sleuth/vektara-go/pkg/util"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/rs/zerolog"
)

var ErrNotHTML = errors.New("file is not an HTML document")

// HTMLConverter converts HTML pages into Markdown so the indexed text is
// free of markup noise.
type HTMLConverter struct {
	converter *md.Converter
	logger    zerolog.Logger
}

// NewHTMLConverter creates a converter with default rules.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{
		converter: md.NewConverter("", true, nil),
		logger:    util.NewLogger(zerolog.ErrorLevel),
	}
}

// ToMarkdown converts an HTML string to Markdown.
func (h *HTMLConverter) ToMarkdown(html string) (string, error) {
	markdown, err := h.converter.ConvertString(html)
	if err != nil {
		h.logger.Err(err).Msg("failed to convert HTML to markdown")
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}

// ConvertFile reads an .html/.htm file and returns its Markdown rendition.
func (h *HTMLConverter) ConvertFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
	default:
		return "", fmt.Errorf("%w: %s", ErrNotHTML, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return h.ToMarkdown(string(raw))
}
