package service

import (
	"venue-market/internal/common/form"
	"venue-market/internal/spaces/models"
	"venue-market/internal/wizard"
)

// ============================================================
// Add-space Flow
// ============================================================

const FlowName = "add-space"

// SpaceTypes are the accepted space_type ids.
var SpaceTypes = []string{"whole_venue", "private_space", "shared_space", "outdoor_space"}

// Checklist drives the review step's completion meter.
var Checklist = wizard.Checklist{
	{Label: "Venue name", Key: "venue_name"},
	{Label: "Venue type", Key: "venue_types"},
	{Label: "Space type", Key: "space_type"},
	{Label: "Address", Key: "address_line1"},
	{Label: "City", Key: "city"},
	{Label: "Description", Key: "description"},
	{Label: "Capacity", Key: "capacity"},
	{Label: "Seating layouts", Key: "capacities"},
	{Label: "Amenities", Key: "facilities"},
	{Label: "Photos", Key: "photos"},
	{Label: "Pricing", Key: "pricing"},
	{Label: "Phone", Key: "phone"},
	{Label: "Email", Key: "email"},
}

// Defaults is the empty add-space document.
func Defaults() wizard.Document {
	capacities := make(map[string]any, len(CapacityLayouts))
	for _, layout := range CapacityLayouts {
		capacities[layout] = ""
	}
	return wizard.Document{
		"venue_name":          "",
		"venue_types":         []any{},
		"space_type":          "",
		"address_line1":       "",
		"address_line2":       "",
		"landmark":            "",
		"city":                "",
		"state":               "",
		"pincode":             "",
		"description":         "",
		"capacity":            "",
		"capacities":          capacities,
		"facilities":          []any{},
		"catering_drinks":     []any{},
		"music_sound":         []any{},
		"photos":              []any{},
		"pricing":             []any{},
		"packages":            []any{},
		"house_rules":         "",
		"cancellation_policy": "",
		"allowed_events":      []any{},
		"phone":               "",
		"email":               "",
	}
}

func Steps() []wizard.Step {
	return []wizard.Step{
		{
			Title:    "Basics",
			Fields:   []string{"venue_name", "venue_types", "space_type"},
			Complete: withForm(basicsComplete),
		},
		{
			Title:    "Location",
			Fields:   []string{"address_line1", "address_line2", "landmark", "city", "state", "pincode"},
			Complete: withForm(locationComplete),
		},
		{
			Title:    "Capacity",
			Fields:   []string{"description", "capacity", "capacities"},
			Complete: withForm(capacityComplete),
		},
		{
			Title:  "Amenities",
			Fields: []string{"facilities", "catering_drinks", "music_sound"},
		},
		{
			Title:    "Photos",
			Fields:   []string{"photos"},
			Complete: withForm(func(f models.Form) bool { return len(PhotoEntries(f.Photos)) > 0 }),
		},
		{
			Title:    "Pricing",
			Fields:   []string{"pricing", "packages"},
			Complete: withForm(pricingComplete),
		},
		{
			Title:    "Policies",
			Fields:   []string{"house_rules", "cancellation_policy", "allowed_events", "phone", "email"},
			Complete: withForm(contactComplete),
		},
		{
			Title: "Review",
		},
	}
}

func Flow() wizard.Flow {
	return wizard.Flow{
		Name:      FlowName,
		Steps:     Steps(),
		Defaults:  Defaults,
		Checklist: Checklist,
	}
}

// DecodeForm reads the typed view of an add-space document.
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

func basicsComplete(f models.Form) bool {
	return !f.VenueName.Empty() && len(f.VenueTypes.Values()) > 0 && validSpaceType(f.SpaceType.Trim())
}

func locationComplete(f models.Form) bool {
	if f.Line1.Empty() || f.City.Empty() {
		return false
	}
	pin := f.Pincode.Trim()
	return pin == "" || (len(pin) == 6 && form.AllDigits(pin))
}

func capacityComplete(f models.Form) bool {
	capacity := form.ParseInt(f.Capacity.String())
	return !f.Description.Empty() && capacity.OK && capacity.Value > 0
}

func pricingComplete(f models.Form) bool {
	for _, p := range PricingEntries(f.Pricing) {
		if p.PricingType != "" && p.Price > 0 {
			return true
		}
	}
	return false
}

func contactComplete(f models.Form) bool {
	return form.ValidPhone(f.Phone.Trim()) && form.ValidEmail(f.Email.Trim())
}

func validSpaceType(v string) bool {
	for _, t := range SpaceTypes {
		if t == v {
			return true
		}
	}
	return false
}
