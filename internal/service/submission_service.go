package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/observability"
	"github.com/contestops/pitchscore-api/internal/repository"
)

var (
	// ErrUploadTooLarge indicates the payload exceeded the configured limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage abstracts upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// SubmissionService manages contest entries and their uploaded files.
type SubmissionService interface {
	Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	List(ctx context.Context) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, id uint) (dto.SubmissionResponse, error)
	Upload(ctx context.Context, submissionID uint, file *multipart.FileHeader) (dto.UploadResponse, error)
	ListFiles(ctx context.Context, submissionID uint) ([]dto.UploadResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	schools     repository.SchoolRepository
	files       repository.SubmissionFileRepository
	storage     FileStorage
	validator   *validator.Validate
	logger      zerolog.Logger
	maxSize     int64
	tracer      trace.Tracer
	now         func() time.Time
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(
	submissions repository.SubmissionRepository,
	schools repository.SchoolRepository,
	files repository.SubmissionFileRepository,
	storage FileStorage,
	validate *validator.Validate,
	maxSizeMB int,
	logger zerolog.Logger,
) SubmissionService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &submissionService{
		submissions: submissions,
		schools:     schools,
		files:       files,
		storage:     storage,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		maxSize:     int64(maxSizeMB) * 1024 * 1024,
		tracer:      otel.Tracer("github.com/contestops/pitchscore-api/internal/service/submission"),
		now:         time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	school, err := s.schools.GetByID(ctx, payload.SchoolID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SubmissionResponse{}, ErrSchoolNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		SchoolID:         payload.SchoolID,
		ThemeTitle:       payload.ThemeTitle,
		ThemeDescription: payload.ThemeDescription,
		Status:           models.SubmissionStatusPending,
		SubmittedAt:      s.now(),
	}
	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}
	submission.SchoolName = school.Name

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("school_id", submission.SchoolID).
		Str("theme", submission.ThemeTitle).
		Msg("submission registered")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) List(ctx context.Context) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissions.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		out = append(out, dto.NewSubmissionResponse(submission))
	}
	return out, nil
}

func (s *submissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}
	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) Upload(ctx context.Context, submissionID uint, file *multipart.FileHeader) (dto.UploadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "submission.upload")
	defer span.End()

	span.SetAttributes(
		attribute.Int("submission.id", int(submissionID)),
		attribute.Int64("upload.max_bytes", s.maxSize),
	)

	start := s.now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	if _, err := s.submissions.GetByID(ctx, submissionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.RecordError(ErrSubmissionNotFound)
			span.SetStatus(codes.Error, "submission missing")
			return dto.UploadResponse{}, ErrSubmissionNotFound
		}
		return dto.UploadResponse{}, err
	}

	if file == nil {
		err := errors.New("file is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.UploadResponse{}, err
	}

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return dto.UploadResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return dto.UploadResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.UploadResponse{}, ErrUploadTooLarge
	}

	fileType := detectFileType(file.Filename, buf.Bytes())
	span.SetAttributes(attribute.String("upload.detected_type", fileType))
	if !isAllowedFileType(fileType) {
		observability.UploadRejected().WithLabelValues("type").Inc()
		span.RecordError(ErrUploadTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return dto.UploadResponse{}, ErrUploadTypeNotAllowed
	}

	sanitizedName := sanitizeFileName(file.Filename)
	path, err := s.storage.Upload(ctx, sanitizedName, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.UploadResponse{}, err
	}

	record := models.SubmissionFile{
		SubmissionID: submissionID,
		FileName:     sanitizedName,
		FilePath:     path,
		FileType:     fileType,
		FileSize:     int64(buf.Len()),
	}
	if err := s.files.Create(ctx, &record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.UploadResponse{}, err
	}

	observability.UploadRequests().WithLabelValues(fileType).Inc()
	span.SetStatus(codes.Ok, "stored")

	return dto.NewUploadResponse(record), nil
}

func (s *submissionService) ListFiles(ctx context.Context, submissionID uint) ([]dto.UploadResponse, error) {
	if _, err := s.submissions.GetByID(ctx, submissionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	files, err := s.files.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UploadResponse, 0, len(files))
	for _, f := range files {
		out = append(out, dto.NewUploadResponse(f))
	}
	return out, nil
}

// detectFileType sniffs the payload and resolves markdown by extension since
// markdown bodies sniff as plain text.
func detectFileType(name string, payload []byte) string {
	mime := mimetype.Detect(payload)
	detected := strings.ToLower(strings.TrimSpace(mime.String()))
	if idx := strings.Index(detected, ";"); idx >= 0 {
		detected = strings.TrimSpace(detected[:idx])
	}

	ext := strings.ToLower(filepath.Ext(name))
	if detected == "text/plain" && (ext == ".md" || ext == ".markdown") {
		return "text/markdown"
	}
	return detected
}

func isAllowedFileType(m string) bool {
	switch m {
	case "text/plain", "text/markdown":
		return true
	default:
		return false
	}
}

func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = "upload"
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".txt"
	}
	return base + ext
}
