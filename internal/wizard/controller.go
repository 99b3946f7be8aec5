package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ============================================================
// Collaborators
// ============================================================

// Repository persists the draft of one wizard instance. Load returns
// (nil, nil) when no draft exists.
type Repository interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
	Clear(ctx context.Context) error
}

// Submitter hands the finished document to the service that creates the
// real record.
type Submitter interface {
	Submit(ctx context.Context, doc Document) error
}

type SubmitterFunc func(ctx context.Context, doc Document) error

func (f SubmitterFunc) Submit(ctx context.Context, doc Document) error {
	return f(ctx, doc)
}

// ============================================================
// Errors
// ============================================================

var (
	ErrClosed         = errors.New("wizard closed")
	ErrSubmitting     = errors.New("submit in progress")
	ErrStepOutOfRange = errors.New("step out of range")
	ErrStepLocked     = errors.New("step not reachable yet")
)

const defaultSubmitMessage = "We couldn't submit your details. Please try again."

// SubmitError is the one failure a wizard surfaces to its user. The document
// and the persisted draft are unchanged, so resubmitting is safe.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// UserMessager lets a submitter error carry its own user-facing text.
type UserMessager interface {
	UserMessage() string
}

// ============================================================
// Controller
// ============================================================

type Config struct {
	// Key is the draft key; it seeds the idempotency key of each submit.
	Key       string
	Steps     []Step
	Defaults  func() Document
	Repo      Repository
	Submitter Submitter
	Logger    *zap.Logger
}

// Controller owns one wizard instance: its document, navigation state and
// draft persistence. It is safe for concurrent use.
type Controller struct {
	key       string
	steps     []Step
	defaults  func() Document
	repo      Repository
	submitter Submitter
	logger    *zap.Logger

	// life is cancelled by Close; in-flight submits hang off it.
	life   context.Context
	cancel context.CancelFunc

	// persist orders every repository write. Taken before mu, never after.
	persist sync.Mutex

	mu         sync.Mutex
	doc        Document
	current    int
	highest    int
	submitting bool
	closed     bool
}

func New(cfg Config) (*Controller, error) {
	if len(cfg.Steps) == 0 {
		return nil, fmt.Errorf("wizard: no steps")
	}
	if cfg.Defaults == nil {
		return nil, fmt.Errorf("wizard: defaults required")
	}
	if cfg.Repo == nil {
		return nil, fmt.Errorf("wizard: repository required")
	}
	if cfg.Submitter == nil {
		return nil, fmt.Errorf("wizard: submitter required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	life, cancel := context.WithCancel(context.Background())
	return &Controller{
		key:       cfg.Key,
		steps:     cfg.Steps,
		defaults:  cfg.Defaults,
		repo:      cfg.Repo,
		submitter: cfg.Submitter,
		logger:    logger,
		life:      life,
		cancel:    cancel,
		doc:       cfg.Defaults(),
	}, nil
}

// Initialize loads the persisted draft, falling back to the defaults when
// there is none or it cannot be read.
func (c *Controller) Initialize(ctx context.Context) {
	doc, err := c.repo.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case err != nil:
		c.logger.Debug("draft unreadable, using defaults", zap.Error(err))
		c.doc = c.defaults()
	case doc == nil:
		c.doc = c.defaults()
	default:
		c.doc = doc.WithDefaults(c.defaults())
	}
	c.current, c.highest = 0, 0
}

// Update merges partial into the document and writes the whole document
// through to the repository. The merge stands even if the save fails.
// Concurrent updates reach the repository in the order they were merged.
func (c *Controller) Update(ctx context.Context, partial Document) error {
	c.persist.Lock()
	defer c.persist.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitting
	}
	c.doc.Merge(partial.Clone())
	snapshot := c.doc.Clone()
	c.mu.Unlock()

	if err := c.repo.Save(ctx, snapshot); err != nil {
		c.logger.Warn("draft save failed", zap.Error(err))
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Next moves one step forward. It does not check the current step's
// completeness; callers gate on CanAdvance.
func (c *Controller) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current < len(c.steps)-1 {
		c.current++
		if c.current > c.highest {
			c.highest = c.current
		}
	}
	return c.current
}

func (c *Controller) Previous() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current > 0 {
		c.current--
	}
	return c.current
}

// GoTo jumps to index. Any step up to the highest one reached is open; the
// step right after the current one opens once the current step is complete.
func (c *Controller) GoTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.steps) {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, index)
	}
	switch {
	case index <= c.highest:
	case index == c.current+1 && c.steps[c.current].complete(c.doc):
		c.highest = index
	default:
		return fmt.Errorf("%w: %d", ErrStepLocked, index)
	}
	c.current = index
	return nil
}

// CanAdvance reports whether the current step is complete.
func (c *Controller) CanAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.current].complete(c.doc)
}

func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) IsTerminal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current == len(c.steps)-1
}

// Document returns a copy of the current document.
func (c *Controller) Document() Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Submit sends the document to the submitter. On success the draft is
// cleared and the wizard starts over; on failure nothing changes and a
// *SubmitError is returned. Closing the controller mid-flight cancels the
// request and drops its result. The request context carries an idempotency
// key that stays the same while the submitted document does.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitting
	}
	c.submitting = true
	snapshot := c.doc.Clone()
	c.mu.Unlock()

	reqCtx, cancel := context.WithCancel(WithIdempotencyKey(ctx, submissionKey(c.key, snapshot)))
	stop := context.AfterFunc(c.life, cancel)
	err := c.submitter.Submit(reqCtx, snapshot)
	stop()
	cancel()

	// a save started before the submit may still be writing
	c.persist.Lock()
	defer c.persist.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if c.closed {
		c.logger.Debug("submit finished after close, result dropped", zap.Error(err))
		return ErrClosed
	}
	if err != nil {
		c.logger.Warn("submit failed", zap.Error(err))
		return &SubmitError{Message: userMessage(err), Err: err}
	}

	if err := c.repo.Clear(ctx); err != nil {
		c.logger.Warn("clear draft after submit failed", zap.Error(err))
	}
	c.doc = c.defaults()
	c.current, c.highest = 0, 0
	return nil
}

// Discard drops the draft and starts over. It is irreversible.
func (c *Controller) Discard(ctx context.Context) error {
	c.persist.Lock()
	defer c.persist.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.submitting {
		return ErrSubmitting
	}
	if err := c.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	c.doc = c.defaults()
	c.current, c.highest = 0, 0
	return nil
}

// Submitting reports whether a submit is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Close ends the instance's lifetime. The persisted draft is kept.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
}

// ============================================================
// Snapshot
// ============================================================

type State struct {
	Current    int              `json:"current_step"`
	Highest    int              `json:"highest_step"`
	Steps      []StepDescriptor `json:"steps"`
	CanAdvance bool             `json:"can_advance"`
	Submitting bool             `json:"submitting"`
	Document   Document         `json:"document"`
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Current:    c.current,
		Highest:    c.highest,
		Steps:      Describe(c.steps),
		CanAdvance: c.steps[c.current].complete(c.doc),
		Submitting: c.submitting,
		Document:   c.doc.Clone(),
	}
}

func userMessage(err error) string {
	var m UserMessager
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The request timed out. Please try again."
	}
	return defaultSubmitMessage
}
