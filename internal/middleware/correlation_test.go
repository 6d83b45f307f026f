package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newCorrelationApp() *fiber.App {
	app := fiber.New()
	app.Use(CorrelationID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetCorrelationID(c))
	})
	return app
}

func TestCorrelationIDEchoesIncomingHeader(t *testing.T) {
	app := newCorrelationApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCorrelationID, "pass-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "pass-123", resp.Header.Get(HeaderCorrelationID))
}

func TestCorrelationIDFallsBackToRequestID(t *testing.T) {
	app := newCorrelationApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-456")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "req-456", resp.Header.Get(HeaderCorrelationID))
}

func TestCorrelationIDMintsWhenAbsent(t *testing.T) {
	app := newCorrelationApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(resp.Header.Get(HeaderCorrelationID)))
}
