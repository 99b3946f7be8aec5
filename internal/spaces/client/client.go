package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"venue-market/internal/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Upstream JSON client
// ============================================================

// upstream is the HTTP plumbing the venue and booking clients share.
type upstream struct {
	name    string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func newUpstream(name, baseURL string, timeout time.Duration, logger *zap.Logger) upstream {
	if logger == nil {
		logger = zap.NewNop()
	}
	return upstream{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// UpstreamError is a non-2xx answer from a downstream service.
type UpstreamError struct {
	Service string
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s service status %d: %s", e.Service, e.Status, e.Message)
}

// UserMessage passes validation messages through; anything else is hidden
// behind the generic submit message.
func (e *UpstreamError) UserMessage() string {
	if e.Status >= 400 && e.Status < 500 && e.Message != "" {
		return e.Message
	}
	return ""
}

// post sends body as JSON to path and decodes a 2xx answer into T. The
// Idempotency-Key comes from ctx when the caller attached one, so retries of
// one submission share it; otherwise every call gets a fresh key.
func post[T any](ctx context.Context, u upstream, path string, body any) (*T, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	key, ok := wizard.IdempotencyKey(ctx)
	if !ok {
		key = uuid.NewString()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", key)

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		u.logger.Warn("upstream rejected payload",
			zap.String("service", u.name),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("idempotency_key", key))
		return nil, &UpstreamError{Service: u.name, Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		return body.Message
	}
	return strings.TrimSpace(string(data))
}
