package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/contestops/pitchscore-api/internal/dto"
	"github.com/contestops/pitchscore-api/internal/handler"
	"github.com/contestops/pitchscore-api/internal/service"
)

type mockRankingService struct {
	entries     []dto.RankingEntry
	details     []dto.DetailResponse
	certs       dto.CertificateResponse
	err         error
	lastID      uint
	lastFlagged bool
}

func (m *mockRankingService) Ranking(_ context.Context) ([]dto.RankingEntry, error) {
	return m.entries, m.err
}

func (m *mockRankingService) Details(_ context.Context, resultID uint) ([]dto.DetailResponse, error) {
	m.lastID = resultID
	return m.details, m.err
}

func (m *mockRankingService) SetSpecialAward(_ context.Context, resultID uint, flagged bool) error {
	m.lastID = resultID
	m.lastFlagged = flagged
	return m.err
}

func (m *mockRankingService) Certificates(_ context.Context, resultID uint) (dto.CertificateResponse, error) {
	m.lastID = resultID
	return m.certs, m.err
}

func newRankingApp(svc service.RankingService) *fiber.App {
	app := fiber.New()
	handler.NewRankingHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/results"))
	return app
}

func TestRankingHandler_Ranking(t *testing.T) {
	svc := &mockRankingService{entries: []dto.RankingEntry{
		{Rank: 1, ResultID: 2, SchoolName: "Kita Tech", TotalScore: 55, MaxScore: 60, Awards: []string{"🏆 Top Award"}},
		{Rank: 2, ResultID: 1, SchoolName: "Aoba High", TotalScore: 40, MaxScore: 60},
	}}
	app := newRankingApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool               `json:"success"`
		Data    []dto.RankingEntry `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Len(t, body.Data, 2)
	require.Equal(t, "Kita Tech", body.Data[0].SchoolName)
	require.Equal(t, []string{"🏆 Top Award"}, body.Data[0].Awards)
}

func TestRankingHandler_SpecialAwardToggle(t *testing.T) {
	svc := &mockRankingService{}
	app := newRankingApp(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/results/4/special-award", strings.NewReader(`{"flagged": true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(4), svc.lastID)
	require.True(t, svc.lastFlagged)
}

func TestRankingHandler_SpecialAwardUnknownResult(t *testing.T) {
	svc := &mockRankingService{err: service.ErrResultNotFound}
	app := newRankingApp(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/results/4/special-award", strings.NewReader(`{"flagged": false}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRankingHandler_DetailsInvalidID(t *testing.T) {
	app := newRankingApp(&mockRankingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/zero/details", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRankingHandler_Certificates(t *testing.T) {
	svc := &mockRankingService{certs: dto.CertificateResponse{
		ResultID:     9,
		SchoolName:   "Aoba High",
		Awards:       []string{"🥇 Excellence Award"},
		Certificates: map[string]string{"🥇 Excellence Award": "# 🥇 Certificate of Achievement"},
	}}
	app := newRankingApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/9/certificates", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.CertificateResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, uint(9), body.Data.ResultID)
	require.Contains(t, body.Data.Certificates["🥇 Excellence Award"], "Certificate of Achievement")
}

func TestRankingHandler_RankingError(t *testing.T) {
	svc := &mockRankingService{err: errors.New("boom")}
	app := newRankingApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
