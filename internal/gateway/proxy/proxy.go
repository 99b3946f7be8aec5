package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// ============================================================
// Proxy Handler
// ============================================================

// forwardedHeaders are copied from the client request to the upstream one.
var forwardedHeaders = []string{"Content-Type", "Authorization", "X-Draft-Key", "Idempotency-Key"}

type Proxy struct {
	client *http.Client
	logger *zap.Logger
}

func New(timeout time.Duration, logger *zap.Logger) *Proxy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Proxy{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Mount forwards every request under a wildcard route to base+upstreamPath,
// appending whatever the wildcard matched and the query string.
func (p *Proxy) Mount(base, upstreamPath string) fiber.Handler {
	base = strings.TrimRight(base, "/")
	return func(c fiber.Ctx) error {
		target := base + upstreamPath
		if rest := c.Params("*"); rest != "" {
			target += "/" + rest
		}
		if q := string(c.Request().URI().QueryString()); q != "" {
			target += "?" + q
		}
		return p.Forward(c, target)
	}
}

// Forward sends the request as is to targetURL and copies the answer back.
func (p *Proxy) Forward(c fiber.Ctx, targetURL string) error {
	p.logger.Debug("proxy",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("target", targetURL),
		zap.Int("content_length", len(c.Body())))

	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		p.logger.Error("build upstream request", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}
	for _, h := range forwardedHeaders {
		if v := c.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("upstream unreachable", zap.String("target", targetURL), zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return p.copyResponse(c, resp)
}

func (p *Proxy) copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Warn("read upstream response", zap.Error(err))
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if hopByHop(key) {
			continue
		}
		for _, v := range values {
			c.Response().Header.Add(key, v)
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}

func hopByHop(header string) bool {
	switch http.CanonicalHeaderKey(header) {
	case "Connection", "Keep-Alive", "Transfer-Encoding", "Content-Length", "Upgrade":
		return true
	}
	return false
}
