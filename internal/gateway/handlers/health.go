package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe reports that the process is up.
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

// ReadinessProbe is ready once every upstream answers its liveness probe.
// upstreams maps a service name to its base URL.
func ReadinessProbe(upstreams map[string]string, timeout time.Duration) fiber.Handler {
	client := &http.Client{Timeout: timeout}
	return func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()

		var (
			mu     sync.Mutex
			wg     sync.WaitGroup
			status = make(map[string]string, len(upstreams))
		)
		for name, base := range upstreams {
			wg.Add(1)
			go func(name, base string) {
				defer wg.Done()
				state := probe(ctx, client, strings.TrimRight(base, "/")+"/health/live")
				mu.Lock()
				status[name] = state
				mu.Unlock()
			}(name, base)
		}
		wg.Wait()

		ready := true
		for _, s := range status {
			if s != "up" {
				ready = false
			}
		}
		code, state := http.StatusOK, "ready"
		if !ready {
			code, state = http.StatusServiceUnavailable, "degraded"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":    state,
			"upstreams": status,
		})
	}
}

func probe(ctx context.Context, client *http.Client, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "down"
	}
	resp, err := client.Do(req)
	if err != nil {
		return "down"
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "down"
	}
	return "up"
}
