package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"venue-market/internal/auth/models"
	"venue-market/internal/auth/repository"
	"venue-market/internal/auth/service"
	"venue-market/internal/common/form"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Auth Handler
// ============================================================

type AuthHandler struct {
	repo     *repository.Repository
	sessions *service.SessionManager
	codes    *service.OTPStore
	logger   *zap.Logger
	// exposeCodes echoes issued codes back to the client; development only.
	exposeCodes bool
}

func NewAuthHandler(repo *repository.Repository, sessions *service.SessionManager, codes *service.OTPStore, logger *zap.Logger, exposeCodes bool) *AuthHandler {
	return &AuthHandler{
		repo:        repo,
		sessions:    sessions,
		codes:       codes,
		logger:      logger,
		exposeCodes: exposeCodes,
	}
}

func (h *AuthHandler) Routes(r fiber.Router) {
	r.Post("/otp/request", h.RequestCode)
	r.Post("/otp/verify", h.VerifyCode)
	r.Get("/me", h.Me)
	r.Patch("/me", h.UpdateMe)
	r.Post("/logout", h.Logout)
}

type codeRequest struct {
	Phone string `json:"phone"`
}

type verifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type profileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type loginResponse struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Created bool         `json:"created"`
}

// RequestCode issues a one-time code for a phone number.
func (h *AuthHandler) RequestCode(c fiber.Ctx) error {
	var req codeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	phone := form.NormalizePhone(req.Phone)
	if !form.ValidPhone(phone) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid phone number"})
	}

	code, err := h.codes.Issue(phone)
	if errors.Is(err, service.ErrTooSoon) {
		return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{"error": "code requested too recently, try again shortly"})
	}
	if err != nil {
		h.logger.Error("issue code", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue code"})
	}

	resp := fiber.Map{"sent": true}
	if h.exposeCodes {
		h.logger.Debug("otp issued", zap.String("phone", phone), zap.String("code", code))
		resp["dev_code"] = code
	}
	return c.JSON(resp)
}

// VerifyCode exchanges a valid code for a session, registering the phone on
// first login.
func (h *AuthHandler) VerifyCode(c fiber.Ctx) error {
	var req verifyRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	phone := form.NormalizePhone(req.Phone)
	code := strings.TrimSpace(req.Code)
	if phone == "" || len(code) != service.CodeLength || !form.AllDigits(code) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "phone and 6-digit code required"})
	}

	if err := h.codes.Verify(phone, code); err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyAttempts):
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, request a new code"})
		case errors.Is(err, service.ErrCodeExpired), errors.Is(err, service.ErrNoCode):
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "code expired, request a new one"})
		default:
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid code"})
		}
	}

	user, created, err := h.repo.GetOrCreate(c.Context(), phone)
	if err != nil {
		h.logger.Error("load user", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load user"})
	}
	if created {
		h.logger.Info("user registered", zap.String("user_id", user.ID))
	}

	return c.JSON(loginResponse{
		Token:   h.sessions.Issue(user.ID),
		User:    user,
		Created: created,
	})
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	user, err := h.repo.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(user)
}

// UpdateMe changes the fields present in the body; absent fields keep their
// value.
func (h *AuthHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	var req profileRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	user, err := h.repo.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	}
	name, email := user.Name, user.Email
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email = strings.TrimSpace(*req.Email)
		if email != "" && !form.ValidEmail(email) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
		}
	}

	user, err = h.repo.UpdateProfile(c.Context(), userID, name, email)
	if err != nil {
		h.logger.Error("update profile", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update profile"})
	}
	return c.JSON(user)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token, ok := bearer(c)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	h.sessions.Revoke(token)
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Helpers
// ============================================================

func (h *AuthHandler) authorize(c fiber.Ctx) (string, bool) {
	token, ok := bearer(c)
	if !ok {
		return "", false
	}
	return h.sessions.Resolve(token)
}

func bearer(c fiber.Ctx) (string, bool) {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(auth, "Bearer "), true
}
