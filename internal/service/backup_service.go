package service

import (
	"archive/zip"
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/store"
)

//go:embed schemas/*.schema.json
var backupSchemas embed.FS

const (
	backupMetadataName = "backup_metadata.json"
	backupVersion      = "1.0"
)

var (
	// ErrBackupInvalid indicates the uploaded archive is not a usable backup.
	ErrBackupInvalid = errors.New("backup archive is invalid")
	// ErrBackupEmpty indicates the archive held none of the known data files.
	ErrBackupEmpty = errors.New("backup archive contains no data files")
)

type backupMetadata struct {
	BackupID   string   `json:"backup_id"`
	BackupDate string   `json:"backup_date"`
	Version    string   `json:"version"`
	Files      []string `json:"files"`
}

// BackupService exports the flat-file data set as a zip archive and restores
// archives after validating every entry against its JSON schema.
type BackupService interface {
	Export(ctx context.Context) ([]byte, string, error)
	Restore(ctx context.Context, archive []byte) (dto.RestoreReport, error)
}

type backupService struct {
	store   *store.Store
	schemas map[string]*jsonschema.Schema
	logger  zerolog.Logger
	now     func() time.Time
}

// NewBackupService constructs the backup service. Schema compilation failures
// are programming errors and panic at startup.
func NewBackupService(s *store.Store, logger zerolog.Logger) BackupService {
	schemas := make(map[string]*jsonschema.Schema, len(store.DataFiles()))
	for _, name := range store.DataFiles() {
		schemaName := strings.TrimSuffix(name, ".json") + ".schema.json"
		raw, err := backupSchemas.ReadFile("schemas/" + schemaName)
		if err != nil {
			panic(fmt.Sprintf("backup schema missing for %s: %v", name, err))
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, bytes.NewReader(raw)); err != nil {
			panic(fmt.Sprintf("backup schema unreadable for %s: %v", name, err))
		}
		schema, err := compiler.Compile(schemaName)
		if err != nil {
			panic(fmt.Sprintf("backup schema invalid for %s: %v", name, err))
		}
		schemas[name] = schema
	}

	return &backupService{
		store:   s,
		schemas: schemas,
		logger:  logger.With().Str("component", "backup_service").Logger(),
		now:     time.Now,
	}
}

func (s *backupService) Export(_ context.Context) ([]byte, string, error) {
	buf := bytes.NewBuffer(nil)
	zw := zip.NewWriter(buf)

	metadata := backupMetadata{
		BackupID:   uuid.NewString(),
		BackupDate: s.now().Format(time.RFC3339),
		Version:    backupVersion,
		Files:      store.DataFiles(),
	}

	for _, name := range store.DataFiles() {
		raw, err := os.ReadFile(s.store.Path(name))
		if err != nil {
			if os.IsNotExist(err) {
				raw = []byte("[]")
			} else {
				return nil, "", fmt.Errorf("read %s: %w", name, err)
			}
		}

		entry, err := zw.Create(name)
		if err != nil {
			return nil, "", err
		}
		if _, err := entry.Write(raw); err != nil {
			return nil, "", err
		}
	}

	entry, err := zw.Create(backupMetadataName)
	if err != nil {
		return nil, "", err
	}
	if err := json.NewEncoder(entry).Encode(metadata); err != nil {
		return nil, "", err
	}

	if err := zw.Close(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("pitchscore_backup_%s.zip", s.now().Format("20060102_150405"))
	s.logger.Info().Str("file", filename).Int("bytes", buf.Len()).Msg("backup exported")

	return buf.Bytes(), filename, nil
}

func (s *backupService) Restore(_ context.Context, archive []byte) (dto.RestoreReport, error) {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return dto.RestoreReport{}, fmt.Errorf("%w: %v", ErrBackupInvalid, err)
	}

	report := dto.RestoreReport{RestoredFiles: []string{}}
	payloads := make(map[string][]byte)

	for _, f := range reader.File {
		raw, err := readZipEntry(f)
		if err != nil {
			return dto.RestoreReport{}, fmt.Errorf("%w: %s: %v", ErrBackupInvalid, f.Name, err)
		}

		if f.Name == backupMetadataName {
			var metadata backupMetadata
			if err := json.Unmarshal(raw, &metadata); err == nil {
				report.BackupDate = metadata.BackupDate
			}
			continue
		}

		schema, known := s.schemas[f.Name]
		if !known {
			continue
		}

		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return dto.RestoreReport{}, fmt.Errorf("%w: %s: %v", ErrBackupInvalid, f.Name, err)
		}
		if err := schema.Validate(decoded); err != nil {
			return dto.RestoreReport{}, fmt.Errorf("%w: %s: %v", ErrBackupInvalid, f.Name, err)
		}

		payloads[f.Name] = raw
	}

	if len(payloads) == 0 {
		return dto.RestoreReport{}, ErrBackupEmpty
	}

	// All entries validated before any file is replaced, so a bad archive
	// never leaves the data set half restored.
	for _, name := range store.DataFiles() {
		raw, ok := payloads[name]
		if !ok {
			continue
		}
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return dto.RestoreReport{}, fmt.Errorf("%w: %s: %v", ErrBackupInvalid, name, err)
		}
		if err := s.store.Save(name, generic); err != nil {
			return dto.RestoreReport{}, err
		}
		report.RestoredFiles = append(report.RestoredFiles, name)
	}

	s.logger.Info().
		Strs("files", report.RestoredFiles).
		Str("backup_date", report.BackupDate).
		Msg("backup restored")

	return report, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
