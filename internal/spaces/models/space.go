package models

import (
	"encoding/json"

	"venue-market/internal/common/form"
)

// ============================================================
// Add-space draft (typed view of the wizard document)
// ============================================================

type Address struct {
	Line1    form.Text `json:"address_line1"`
	Line2    form.Text `json:"address_line2"`
	Landmark form.Text `json:"landmark"`
	City     form.Text `json:"city"`
	State    form.Text `json:"state"`
	Pincode  form.Text `json:"pincode"`
}

// Capacities maps a seating layout (standing, dining, ...) to a head count.
type Capacities map[string]form.Text

type Facilities struct {
	General  form.List `json:"facilities"`
	Catering form.List `json:"catering_drinks"`
	Music    form.List `json:"music_sound"`
}

type Photo struct {
	URL     form.Text `json:"url"`
	Caption form.Text `json:"caption"`
}

// UnmarshalJSON accepts either a bare URL or a {url, caption} record.
func (p *Photo) UnmarshalJSON(b []byte) error {
	var url form.Text
	if err := url.UnmarshalJSON(b); err == nil {
		*p = Photo{URL: url}
		return nil
	}
	type plain Photo
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Photo(v)
	return nil
}

type Price struct {
	Type  form.Text `json:"type"`
	Price form.Text `json:"price"`
}

type Package struct {
	Name     form.Text `json:"name"`
	Price    form.Text `json:"price"`
	Features form.List `json:"features"`
}

type Rules struct {
	HouseRules         form.Lines `json:"house_rules"`
	CancellationPolicy form.Text  `json:"cancellation_policy"`
}

// Form is the add-space wizard document. Embedded groups flatten into the
// document's top-level keys.
type Form struct {
	VenueName  form.Text `json:"venue_name"`
	VenueTypes form.List `json:"venue_types"`
	SpaceType  form.Text `json:"space_type"`

	Address

	Description form.Text  `json:"description"`
	Capacity    form.Text  `json:"capacity"`
	Capacities  Capacities `json:"capacities"`

	Facilities

	Photos   []Photo   `json:"photos"`
	Pricing  []Price   `json:"pricing"`
	Packages []Package `json:"packages"`

	Rules
	AllowedEvents form.List `json:"allowed_events"`

	Phone form.Text `json:"phone"`
	Email form.Text `json:"email"`
}
