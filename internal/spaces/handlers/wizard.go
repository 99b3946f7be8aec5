package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"venue-market/internal/wizard"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Wizard Handler
// ============================================================

type flowEntry struct {
	flow     wizard.Flow
	registry *wizard.Registry
}

// WizardHandler exposes every registered flow under /wizards/:flow.
type WizardHandler struct {
	flows  map[string]flowEntry
	logger *zap.Logger
}

func NewWizardHandler(logger *zap.Logger) *WizardHandler {
	return &WizardHandler{
		flows:  make(map[string]flowEntry),
		logger: logger,
	}
}

func (h *WizardHandler) Register(flow wizard.Flow, registry *wizard.Registry) {
	h.flows[flow.Name] = flowEntry{flow: flow, registry: registry}
}

// Routes mounts the wizard endpoints on r.
func (h *WizardHandler) Routes(r fiber.Router) {
	r.Post("/wizards/:flow", h.Open)
	r.Get("/wizards/:flow/:key", h.State)
	r.Patch("/wizards/:flow/:key/document", h.Update)
	r.Post("/wizards/:flow/:key/next", h.Next)
	r.Post("/wizards/:flow/:key/previous", h.Previous)
	r.Post("/wizards/:flow/:key/steps/:index", h.GoTo)
	r.Post("/wizards/:flow/:key/submit", h.Submit)
	r.Post("/wizards/:flow/:key/close", h.Close)
	r.Delete("/wizards/:flow/:key", h.Discard)
}

type openRequest struct {
	DraftKey string `json:"draft_key"`
}

type stateResponse struct {
	Flow     string `json:"flow"`
	DraftKey string `json:"draft_key"`
	wizard.State
	Completion wizard.Report `json:"completion"`
}

// Open resumes the draft named by the X-Draft-Key header or the body's
// draft_key, or starts a new one under a fresh key.
func (h *WizardHandler) Open(c fiber.Ctx) error {
	entry, ok := h.flow(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown flow"})
	}

	key := c.Get("X-Draft-Key")
	if key == "" && len(c.Body()) > 0 {
		var req openRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
		key = req.DraftKey
	}
	status := http.StatusOK
	if key == "" {
		key = uuid.NewString()
		status = http.StatusCreated
	} else if _, err := uuid.Parse(key); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid draft key"})
	}

	ctrl, err := entry.registry.Open(c.Context(), key)
	if err != nil {
		h.logger.Error("open wizard", zap.String("flow", entry.flow.Name), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open draft"})
	}
	return c.Status(status).JSON(h.state(entry, key, ctrl))
}

func (h *WizardHandler) State(c fiber.Ctx) error {
	return h.with(c, func(entry flowEntry, key string, ctrl *wizard.Controller) error {
		return c.JSON(h.state(entry, key, ctrl))
	})
}

// Update merges the request body, a JSON object, into the document.
func (h *WizardHandler) Update(c fiber.Ctx) error {
	return h.with(c, func(entry flowEntry, key string, ctrl *wizard.Controller) error {
		partial, err := wizard.DecodeDocument(c.Body())
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body must be a JSON object"})
		}
		if err := ctrl.Update(c.Context(), partial); err != nil {
			return h.fail(c, err)
		}
		return c.JSON(h.state(entry, key, ctrl))
	})
}

func (h *WizardHandler) Next(c fiber.Ctx) error {
	return h.with(c, func(entry flowEntry, key string, ctrl *wizard.Controller) error {
		ctrl.Next()
		return c.JSON(h.state(entry, key, ctrl))
	})
}

func (h *WizardHandler) Previous(c fiber.Ctx) error {
	return h.with(c, func(entry flowEntry, key string, ctrl *wizard.Controller) error {
		ctrl.Previous()
		return c.JSON(h.state(entry, key, ctrl))
	})
}

func (h *WizardHandler) GoTo(c fiber.Ctx) error {
	return h.with(c, func(entry flowEntry, key string, ctrl *wizard.Controller) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid step index"})
		}
		if err := ctrl.GoTo(index); err != nil {
			return h.fail(c, err)
		}
		return c.JSON(h.state(entry, key, ctrl))
	})
}

func (h *WizardHandler) Submit(c fiber.Ctx) error {
	return h.with(c, func(entry flowEntry, key string, ctrl *wizard.Controller) error {
		if err := ctrl.Submit(c.Context()); err != nil {
			return h.fail(c, err)
		}
		h.logger.Info("wizard submitted", zap.String("flow", entry.flow.Name), zap.String("draft_key", key))
		return c.JSON(h.state(entry, key, ctrl))
	})
}

// Close abandons the live instance, cancelling a submit still in flight.
// The persisted draft stays.
func (h *WizardHandler) Close(c fiber.Ctx) error {
	entry, ok := h.flow(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown flow"})
	}
	entry.registry.Close(c.Params("key"))
	return c.SendStatus(http.StatusNoContent)
}

func (h *WizardHandler) Discard(c fiber.Ctx) error {
	return h.with(c, func(entry flowEntry, key string, ctrl *wizard.Controller) error {
		if err := ctrl.Discard(c.Context()); err != nil {
			return h.fail(c, err)
		}
		return c.JSON(h.state(entry, key, ctrl))
	})
}

// ============================================================
// Helpers
// ============================================================

func (h *WizardHandler) flow(c fiber.Ctx) (flowEntry, bool) {
	entry, ok := h.flows[c.Params("flow")]
	return entry, ok
}

func (h *WizardHandler) with(c fiber.Ctx, fn func(flowEntry, string, *wizard.Controller) error) error {
	entry, ok := h.flow(c)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown flow"})
	}
	key := c.Params("key")
	if _, err := uuid.Parse(key); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid draft key"})
	}
	ctrl, err := entry.registry.Open(c.Context(), key)
	if err != nil {
		h.logger.Error("open wizard", zap.String("flow", entry.flow.Name), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open draft"})
	}
	return fn(entry, key, ctrl)
}

func (h *WizardHandler) state(entry flowEntry, key string, ctrl *wizard.Controller) stateResponse {
	s := ctrl.Snapshot()
	return stateResponse{
		Flow:       entry.flow.Name,
		DraftKey:   key,
		State:      s,
		Completion: wizard.Score(s.Document, entry.flow.Checklist),
	}
}

func (h *WizardHandler) fail(c fiber.Ctx, err error) error {
	var submitErr *wizard.SubmitError
	switch {
	case errors.As(err, &submitErr):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": submitErr.Message})
	case errors.Is(err, wizard.ErrStepOutOfRange):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, wizard.ErrStepLocked), errors.Is(err, wizard.ErrSubmitting):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, wizard.ErrClosed):
		return c.Status(http.StatusGone).JSON(fiber.Map{"error": "draft closed, reopen it"})
	default:
		h.logger.Error("wizard operation failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
