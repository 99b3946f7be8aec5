package service

import (
	"time"

	"venue-market/internal/booking/models"
	"venue-market/internal/common/form"
	"venue-market/internal/wizard"
)

// ============================================================
// Booking Flow
// ============================================================

const FlowName = "booking"

var TimeSlots = []string{"morning", "evening", "full_day"}

// Availability answers what the booking flow needs to know about a venue.
type Availability interface {
	BookedDays(venueID string) []time.Time
	MaxGuests(venueID string) (int, bool)
}

var Checklist = wizard.Checklist{
	{Label: "Event date", Key: "event_date"},
	{Label: "Time slot", Key: "time_slot"},
	{Label: "Guests", Key: "guests"},
	{Label: "Event type", Key: "event_type"},
	{Label: "Name", Key: "name"},
	{Label: "Phone", Key: "phone"},
	{Label: "Email", Key: "email"},
}

func Defaults() wizard.Document {
	return wizard.Document{
		"venue_id":   "",
		"event_date": "",
		"time_slot":  "",
		"guests":     "",
		"event_type": "",
		"name":       "",
		"phone":      "",
		"email":      "",
		"notes":      "",
	}
}

// Rules holds what the step predicates check against.
type Rules struct {
	Availability Availability
	Now          func() time.Time
	Horizon      int
}

// CalendarFor builds the calendar of one venue as of now.
func (r Rules) CalendarFor(venueID string) Calendar {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return Calendar{
		Today:   now(),
		Horizon: r.Horizon,
		Booked:  r.Availability.BookedDays(venueID),
	}
}

func (r Rules) Steps() []wizard.Step {
	return []wizard.Step{
		{
			Title:    "Event details",
			Fields:   []string{"venue_id", "event_date", "time_slot", "guests", "event_type"},
			Complete: withForm(r.detailsComplete),
		},
		{
			Title:    "Your details",
			Fields:   []string{"name", "phone", "email", "notes"},
			Complete: withForm(contactComplete),
		},
		{
			Title: "Review",
		},
	}
}

func (r Rules) Flow() wizard.Flow {
	return wizard.Flow{
		Name:      FlowName,
		Steps:     r.Steps(),
		Defaults:  Defaults,
		Checklist: Checklist,
	}
}

func DecodeForm(doc wizard.Document) (models.Form, error) {
	var f models.Form
	err := doc.Decode(&f)
	return f, err
}

func withForm(pred func(models.Form) bool) func(wizard.Document) bool {
	return func(doc wizard.Document) bool {
		f, err := DecodeForm(doc)
		if err != nil {
			return false
		}
		return pred(f)
	}
}

func (r Rules) detailsComplete(f models.Form) bool {
	venueID := f.VenueID.Trim()
	maxGuests, ok := r.Availability.MaxGuests(venueID)
	if !ok {
		return false
	}
	if !r.CalendarFor(venueID).Selectable(f.EventDate.Trim()) {
		return false
	}
	guests := form.ParseInt(f.Guests.String())
	if !guests.OK || guests.Value < 1 || guests.Value > maxGuests {
		return false
	}
	return validSlot(f.TimeSlot.Trim()) && !f.EventType.Empty()
}

func contactComplete(f models.Form) bool {
	return !f.Name.Empty() && form.ValidPhone(f.Phone.Trim()) && form.ValidEmail(f.Email.Trim())
}

func validSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Transform builds the booking request from a finished form.
func Transform(f models.Form) models.Request {
	return models.Request{
		VenueID:   f.VenueID.Trim(),
		EventDate: f.EventDate.Trim(),
		TimeSlot:  f.TimeSlot.Trim(),
		Guests:    form.ParseInt(f.Guests.String()).Or(0),
		EventType: f.EventType.Trim(),
		Contact: models.Contact{
			Name:  f.Name.Trim(),
			Phone: form.NormalizePhone(f.Phone.String()),
			Email: f.Email.Trim(),
		},
		Notes: f.Notes.Trim(),
	}
}
