package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPlainTextExtractor(t *testing.T) {
	dir := t.TempDir()
	extractor := NewPlainTextExtractor()

	path := writeFile(t, dir, "notes.txt", "  our findings  \n")
	text, err := extractor.Extract(path)
	require.NoError(t, err)
	require.Equal(t, "our findings", text)

	_, err = extractor.Extract(filepath.Join(dir, "deck.pptx"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = extractor.Extract(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestCombineLabelsEachSourceAndSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	extractor := NewPlainTextExtractor()

	first := writeFile(t, dir, "pitch.txt", "the pitch")
	second := writeFile(t, dir, "data.md", "the data")

	combined := Combine(extractor, []Source{
		{Name: "pitch.txt", Path: first},
		{Name: "deck.pptx", Path: filepath.Join(dir, "deck.pptx")},
		{Name: "data.md", Path: second},
	})

	require.Contains(t, combined, "=== pitch.txt ===")
	require.Contains(t, combined, "the pitch")
	require.Contains(t, combined, "=== data.md ===")
	require.Contains(t, combined, "the data")
	require.NotContains(t, combined, "deck.pptx")
}

func TestCombineEmptyWhenNothingExtractable(t *testing.T) {
	extractor := NewPlainTextExtractor()
	combined := Combine(extractor, []Source{{Name: "gone.txt", Path: "/nonexistent/gone.txt"}})
	require.Empty(t, combined)
}
