package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/repository"
	"github.com/contestops/pitchscore-api/internal/store"
)

type storageStub struct {
	uploaded bytes.Buffer
	lastName string
}

func (s *storageStub) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	s.uploaded.Reset()
	s.lastName = name
	if _, err := s.uploaded.ReadFrom(reader); err != nil {
		return "", err
	}
	return "/data/uploads/" + name, nil
}

type submissionFixture struct {
	service SubmissionService
	schools repository.SchoolRepository
	files   repository.SubmissionFileRepository
	storage *storageStub
	school  models.School
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	require.NoError(t, st.Ensure())

	schools := repository.NewSchoolRepository(st)
	submissions := repository.NewSubmissionRepository(st)
	files := repository.NewSubmissionFileRepository(st)
	storage := &storageStub{}

	school := models.School{Name: "Aoba High"}
	require.NoError(t, schools.Create(context.Background(), &school))

	svc := NewSubmissionService(submissions, schools, files, storage, validator.New(), 1, zerolog.Nop())

	return &submissionFixture{service: svc, schools: schools, files: files, storage: storage, school: school}
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSubmissionCreateProjectsSchoolName(t *testing.T) {
	fx := newSubmissionFixture(t)

	resp, err := fx.service.Create(context.Background(), dto.SubmissionCreateRequest{
		SchoolID:   fx.school.ID,
		ThemeTitle: "Reviving the shopping arcade",
	})
	require.NoError(t, err)
	require.Equal(t, "Aoba High", resp.SchoolName)
	require.Equal(t, models.SubmissionStatusPending, resp.Status)
	require.False(t, resp.SubmittedAt.IsZero())
}

func TestSubmissionCreateUnknownSchool(t *testing.T) {
	fx := newSubmissionFixture(t)

	_, err := fx.service.Create(context.Background(), dto.SubmissionCreateRequest{
		SchoolID:   999,
		ThemeTitle: "Orphan entry",
	})
	require.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestSubmissionCreateValidation(t *testing.T) {
	fx := newSubmissionFixture(t)

	_, err := fx.service.Create(context.Background(), dto.SubmissionCreateRequest{SchoolID: fx.school.ID})
	require.Error(t, err)
}

func TestUploadAcceptsPlainText(t *testing.T) {
	fx := newSubmissionFixture(t)
	sub, err := fx.service.Create(context.Background(), dto.SubmissionCreateRequest{
		SchoolID:   fx.school.ID,
		ThemeTitle: "Arcade revival",
	})
	require.NoError(t, err)

	file := buildFileHeader(t, "Pitch Document.txt", []byte("We surveyed 40 shop owners."))
	resp, err := fx.service.Upload(context.Background(), sub.ID, file)
	require.NoError(t, err)

	require.Equal(t, "pitch-document.txt", resp.FileName)
	require.Equal(t, "text/plain", resp.FileType)
	require.Equal(t, int64(len("We surveyed 40 shop owners.")), resp.FileSize)

	stored, err := fx.files.ListBySubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "/data/uploads/pitch-document.txt", stored[0].FilePath)
}

func TestUploadResolvesMarkdownByExtension(t *testing.T) {
	fx := newSubmissionFixture(t)
	sub, err := fx.service.Create(context.Background(), dto.SubmissionCreateRequest{
		SchoolID:   fx.school.ID,
		ThemeTitle: "Arcade revival",
	})
	require.NoError(t, err)

	file := buildFileHeader(t, "notes.md", []byte("# Findings\n\nFoot traffic fell 30%."))
	resp, err := fx.service.Upload(context.Background(), sub.ID, file)
	require.NoError(t, err)
	require.Equal(t, "text/markdown", resp.FileType)
}

func TestUploadRejectsBinaryPayload(t *testing.T) {
	fx := newSubmissionFixture(t)
	sub, err := fx.service.Create(context.Background(), dto.SubmissionCreateRequest{
		SchoolID:   fx.school.ID,
		ThemeTitle: "Arcade revival",
	})
	require.NoError(t, err)

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	file := buildFileHeader(t, "image.png", pngHeader)

	_, err = fx.service.Upload(context.Background(), sub.ID, file)
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	fx := newSubmissionFixture(t)
	sub, err := fx.service.Create(context.Background(), dto.SubmissionCreateRequest{
		SchoolID:   fx.school.ID,
		ThemeTitle: "Arcade revival",
	})
	require.NoError(t, err)

	file := buildFileHeader(t, "huge.txt", bytes.Repeat([]byte("a"), 2*1024*1024))
	_, err = fx.service.Upload(context.Background(), sub.ID, file)
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestUploadUnknownSubmission(t *testing.T) {
	fx := newSubmissionFixture(t)

	file := buildFileHeader(t, "pitch.txt", []byte("text"))
	_, err := fx.service.Upload(context.Background(), 42, file)
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestListFilesForSubmission(t *testing.T) {
	fx := newSubmissionFixture(t)
	sub, err := fx.service.Create(context.Background(), dto.SubmissionCreateRequest{
		SchoolID:   fx.school.ID,
		ThemeTitle: "Arcade revival",
	})
	require.NoError(t, err)

	for _, name := range []string{"part-one.txt", "part-two.txt"} {
		file := buildFileHeader(t, name, []byte("chapter text"))
		_, err := fx.service.Upload(context.Background(), sub.ID, file)
		require.NoError(t, err)
	}

	files, err := fx.service.ListFiles(context.Background(), sub.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
}
