package localdisk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config describes where uploaded files are written.
type Config struct {
	Root   string
	Folder string
}

// Service implements the FileStorage interface on the local filesystem.
type Service struct {
	root   string
	folder string
	logger zerolog.Logger
}

// New constructs a disk storage instance rooted at cfg.Root.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if strings.TrimSpace(cfg.Root) == "" {
		return nil, fmt.Errorf("storage root must be provided")
	}

	dir := filepath.Join(cfg.Root, strings.Trim(cfg.Folder, "/"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare storage directory: %w", err)
	}

	return &Service{
		root:   cfg.Root,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "localdisk").Logger(),
	}, nil
}

// Upload writes the file under the storage root and returns its path.
func (s *Service) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	target := filepath.Join(s.root, s.folder, uniqueName(name))

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Info().Str("path", target).Msg("file stored on disk")

	return target, nil
}

func uniqueName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, base)

	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("upload-%d", time.Now().Unix())
	}

	return fmt.Sprintf("%s-%d%s", base, time.Now().UnixNano(), ext)
}
