package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS_PreflightAllowsClientHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(CORS())
	app.Post("/api/v1/wizards/*", func(c fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/wizards/add-space/k1/submit", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Draft-Key, Idempotency-Key")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	allowed := resp.Header.Get("Access-Control-Allow-Headers")
	for _, h := range []string{"Content-Type", "X-Draft-Key", "Idempotency-Key"} {
		assert.Contains(t, allowed, h)
	}
}
