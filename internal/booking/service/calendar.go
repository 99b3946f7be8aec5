package service

import "time"

// DateLayout is how event dates travel in documents and requests.
const DateLayout = "2006-01-02"

// Calendar decides which days a venue can be booked for. Days are compared
// by calendar date in UTC.
type Calendar struct {
	Today   time.Time
	Horizon int // days ahead that can be booked; 0 means no limit
	Booked  []time.Time
}

// Disabled reports whether day cannot be picked: it is in the past, beyond
// the horizon, or already booked.
func (c Calendar) Disabled(day time.Time) bool {
	d := truncateDay(day)
	today := truncateDay(c.Today)
	if d.Before(today) {
		return true
	}
	if c.Horizon > 0 && d.After(today.AddDate(0, 0, c.Horizon)) {
		return true
	}
	for _, b := range c.Booked {
		if truncateDay(b).Equal(d) {
			return true
		}
	}
	return false
}

// DisabledDays lists the disabled days in [from, to].
func (c Calendar) DisabledDays(from, to time.Time) []time.Time {
	var out []time.Time
	for d := truncateDay(from); !d.After(truncateDay(to)); d = d.AddDate(0, 0, 1) {
		if c.Disabled(d) {
			out = append(out, d)
		}
	}
	return out
}

// Selectable parses a DateLayout string and reports whether it may be picked.
func (c Calendar) Selectable(date string) bool {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return !c.Disabled(d)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
