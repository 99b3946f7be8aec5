package models

import "venue-market/internal/common/form"

// ============================================================
// Booking draft
// ============================================================

type Form struct {
	VenueID   form.Text `json:"venue_id"`
	EventDate form.Text `json:"event_date"`
	TimeSlot  form.Text `json:"time_slot"`
	Guests    form.Text `json:"guests"`
	EventType form.Text `json:"event_type"`

	Name  form.Text `json:"name"`
	Phone form.Text `json:"phone"`
	Email form.Text `json:"email"`
	Notes form.Text `json:"notes"`
}

// ============================================================
// Booking request
// ============================================================

type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Request struct {
	VenueID   string  `json:"venue_id"`
	EventDate string  `json:"event_date"`
	TimeSlot  string  `json:"time_slot"`
	Guests    int     `json:"guests"`
	EventType string  `json:"event_type"`
	Contact   Contact `json:"contact"`
	Notes     string  `json:"notes,omitempty"`
}

type Confirmation struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}
