package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"venue-market/internal/auth/repository"
	"venue-market/internal/auth/service"
	"venue-market/internal/common/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const phone = "+91 98765-43210"

func newTestApp(t *testing.T, exposeCodes bool) *fiber.App {
	t.Helper()
	return newTestAppWithCodes(t, service.NewOTPStore(time.Minute, 2, 0), exposeCodes)
}

func newTestAppWithCodes(t *testing.T, codes *service.OTPStore, exposeCodes bool) *fiber.App {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))

	h := NewAuthHandler(repo, service.NewSessionManager(), codes, zap.NewNop(), exposeCodes)
	app := fiber.New()
	h.Routes(app)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App) (string, map[string]any) {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/otp/request", "", map[string]string{"phone": phone})
	require.Equal(t, http.StatusOK, status)
	code, ok := body["dev_code"].(string)
	require.True(t, ok)

	status, body = call(t, app, http.MethodPost, "/otp/verify", "", map[string]string{"phone": phone, "code": code})
	require.Equal(t, http.StatusOK, status)
	return body["token"].(string), body
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t, true)

	token, body := login(t, app)
	assert.NotEmpty(t, token)
	assert.Equal(t, true, body["created"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "+919876543210", user["phone"])

	status, me := call(t, app, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, user["id"], me["id"])

	_, body = login(t, app)
	assert.Equal(t, false, body["created"])
}

func TestRequestCode_Validation(t *testing.T) {
	app := newTestApp(t, false)

	status, _ := call(t, app, http.MethodPost, "/otp/request", "", map[string]string{"phone": "123"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := call(t, app, http.MethodPost, "/otp/request", "", map[string]string{"phone": phone})
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "dev_code")
}

func TestRequestCode_Cooldown(t *testing.T) {
	app := newTestAppWithCodes(t, service.NewOTPStore(time.Minute, 2, time.Minute), false)

	status, _ := call(t, app, http.MethodPost, "/otp/request", "", map[string]string{"phone": phone})
	require.Equal(t, http.StatusOK, status)

	status, body := call(t, app, http.MethodPost, "/otp/request", "", map[string]string{"phone": phone})
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.NotEmpty(t, body["error"])
}

func TestVerifyCode_Failures(t *testing.T) {
	app := newTestApp(t, true)

	status, _ := call(t, app, http.MethodPost, "/otp/verify", "", map[string]string{"phone": phone, "code": "12"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodPost, "/otp/verify", "", map[string]string{"phone": phone, "code": "123456"})
	assert.Equal(t, http.StatusUnauthorized, status)

	_, body := call(t, app, http.MethodPost, "/otp/request", "", map[string]string{"phone": phone})
	wrong := "000000"
	if body["dev_code"] == wrong {
		wrong = "111111"
	}
	status, _ = call(t, app, http.MethodPost, "/otp/verify", "", map[string]string{"phone": phone, "code": wrong})
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = call(t, app, http.MethodPost, "/otp/verify", "", map[string]string{"phone": phone, "code": wrong})
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestUpdateMe(t *testing.T) {
	app := newTestApp(t, true)
	token, _ := login(t, app)

	status, body := call(t, app, http.MethodPatch, "/me", token, map[string]string{"name": " Asha "})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Asha", body["name"])

	status, _ = call(t, app, http.MethodPatch, "/me", token, map[string]string{"email": "not an email"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = call(t, app, http.MethodPatch, "/me", token, map[string]string{"email": "asha@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Asha", body["name"])
	assert.Equal(t, "asha@example.com", body["email"])

	status, _ = call(t, app, http.MethodPatch, "/me", "", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, true)
	token, _ := login(t, app)

	status, _ := call(t, app, http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, app, http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
