package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-market/internal/spaces/models"
	"venue-market/internal/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Venue Submitter
// ============================================================

// Creator is the venue service.
type Creator interface {
	CreateVenue(ctx context.Context, payload models.Payload) (*models.Created, error)
}

// InvalidDraftError is returned when the document cannot be read as a form.
type InvalidDraftError struct{ Err error }

func (e *InvalidDraftError) Error() string       { return fmt.Sprintf("invalid draft: %v", e.Err) }
func (e *InvalidDraftError) Unwrap() error       { return e.Err }
func (e *InvalidDraftError) UserMessage() string { return "Some answers could not be read. Please review your details." }

// Submitter turns an add-space document into a venue.
type Submitter struct {
	creator Creator
	timeout time.Duration
	logger  *zap.Logger
}

func NewSubmitter(creator Creator, timeout time.Duration, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{creator: creator, timeout: timeout, logger: logger}
}

func (s *Submitter) Submit(ctx context.Context, doc wizard.Document) error {
	form, err := DecodeForm(doc)
	if err != nil {
		return &InvalidDraftError{Err: err}
	}
	payload := Transform(form)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	created, err := s.creator.CreateVenue(ctx, payload)
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	s.logger.Info("venue created",
		zap.String("venue_id", created.ID),
		zap.String("venue_name", payload.VenueName),
		zap.Int("photos", len(payload.Photos)))
	return nil
}

// ============================================================
// Simulated Creator
// ============================================================

var ErrSimulatedFailure = errors.New("simulated venue service failure")

// SimulatedCreator stands in for the venue service: it waits, then accepts
// the payload or fails on demand.
type SimulatedCreator struct {
	Delay time.Duration
	Fail  bool
}

func (s *SimulatedCreator) CreateVenue(ctx context.Context, _ models.Payload) (*models.Created, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if s.Fail {
		return nil, ErrSimulatedFailure
	}
	return &models.Created{ID: uuid.NewString(), Status: "pending_review"}, nil
}
