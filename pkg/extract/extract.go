// Package extract turns uploaded submission files into plain text for
// scoring. The scoring pipeline treats extracted text as opaque; decoding of
// rich formats (PDF, slide decks) sits behind the TextExtractor interface so
// an external implementation can be plugged in.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat indicates the file's extension has no registered extractor.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// TextExtractor produces plain text from a stored submission file.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// PlainTextExtractor reads UTF-8 text formats directly from disk.
type PlainTextExtractor struct{}

// NewPlainTextExtractor constructs the extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract returns the file's contents for supported text formats.
func (e *PlainTextExtractor) Extract(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("extract text: %w", err)
		}
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("extract text: %s is not valid utf-8", filepath.Base(path))
		}
		return strings.TrimSpace(string(raw)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Source names one file to combine along with its storage location.
type Source struct {
	Name string
	Path string
}

// Combine extracts every source and concatenates the results, labelling each
// block with its file name. Per-file extraction failures are skipped so one
// unreadable upload does not void the rest; the combined text is empty only
// when nothing at all could be extracted.
func Combine(extractor TextExtractor, sources []Source) string {
	b := strings.Builder{}
	for _, src := range sources {
		text, err := extractor.Extract(src.Path)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n\n=== %s ===\n\n%s", src.Name, text)
	}
	return strings.TrimSpace(b.String())
}
