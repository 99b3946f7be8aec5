package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-market/internal/booking/models"
	"venue-market/internal/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ============================================================
// Booking Submitter
// ============================================================

type Creator interface {
	CreateBooking(ctx context.Context, req models.Request) (*models.Confirmation, error)
}

// UnavailableError means the date was taken after the user picked it.
type UnavailableError struct{ Date string }

func (e *UnavailableError) Error() string { return fmt.Sprintf("date %s unavailable", e.Date) }
func (e *UnavailableError) UserMessage() string {
	return "That date is no longer available. Please pick another one."
}

type Submitter struct {
	rules   Rules
	creator Creator
	logger  *zap.Logger
}

func NewSubmitter(rules Rules, creator Creator, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{rules: rules, creator: creator, logger: logger}
}

func (s *Submitter) Submit(ctx context.Context, doc wizard.Document) error {
	f, err := DecodeForm(doc)
	if err != nil {
		return fmt.Errorf("decode booking: %w", err)
	}
	req := Transform(f)

	if !s.rules.CalendarFor(req.VenueID).Selectable(req.EventDate) {
		return &UnavailableError{Date: req.EventDate}
	}

	conf, err := s.creator.CreateBooking(ctx, req)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	s.logger.Info("booking requested",
		zap.String("booking_id", conf.BookingID),
		zap.String("venue_id", req.VenueID),
		zap.String("event_date", req.EventDate))
	return nil
}

// ============================================================
// Simulated Creator
// ============================================================

var ErrSimulatedFailure = errors.New("simulated booking service failure")

type SimulatedCreator struct {
	Delay time.Duration
	Fail  bool
}

func (s *SimulatedCreator) CreateBooking(ctx context.Context, _ models.Request) (*models.Confirmation, error) {
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
	return &models.Confirmation{BookingID: uuid.NewString(), Status: "requested"}, nil
}
