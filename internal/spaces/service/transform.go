package service

import (
	"sort"
	"strings"

	"venue-market/internal/common/form"
	"venue-market/internal/spaces/models"
)

// ============================================================
// Payload Transform
// ============================================================

// CapacityLayouts is the display order of the seating layouts.
var CapacityLayouts = []string{"standing", "dining", "theatre", "boardroom", "classroom", "u_shape", "cabaret"}

// Transform reshapes a finished add-space form into the venue service
// payload. It never fails: unreadable numbers become 0.
func Transform(f models.Form) models.Payload {
	return models.Payload{
		VenueName:     f.VenueName.Trim(),
		VenueType:     strings.Join(f.VenueTypes.Values(), ", "),
		SpaceType:     f.SpaceType.Trim(),
		Location:      JoinAddress(f.Address),
		City:          f.City.Trim(),
		Description:   f.Description.Trim(),
		Capacity:      form.ParseInt(f.Capacity.String()).Or(0),
		Phone:         f.Phone.Trim(),
		Email:         f.Email.Trim(),
		Photos:        PhotoEntries(f.Photos),
		Capacities:    CapacityEntries(f.Capacities),
		Facilities:    FacilityEntries(f.Facilities),
		Pricing:       PricingEntries(f.Pricing),
		Packages:      PackageEntries(f.Packages),
		Rules:         RuleEntries(f.Rules),
		AllowedEvents: f.AllowedEvents.Values(),
	}
}

// JoinAddress builds the one-line location, skipping blank parts.
func JoinAddress(a models.Address) string {
	parts := make([]string, 0, 6)
	for _, p := range []form.Text{a.Line1, a.Line2, a.Landmark, a.City, a.State, a.Pincode} {
		if v := p.Trim(); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

func FacilityEntries(f models.Facilities) []models.FacilityEntry {
	out := []models.FacilityEntry{}
	groups := []struct {
		category string
		names    form.List
	}{
		{models.FacilityGeneral, f.General},
		{models.FacilityCatering, f.Catering},
		{models.FacilityMusic, f.Music},
	}
	for _, g := range groups {
		for _, name := range g.names.Values() {
			out = append(out, models.FacilityEntry{Name: name, Category: g.category})
		}
	}
	return out
}

// CapacityEntries drops blank layouts. Known layouts come first in display
// order, anything else follows alphabetically.
func CapacityEntries(c models.Capacities) []models.CapacityEntry {
	out := []models.CapacityEntry{}
	seen := make(map[string]bool, len(CapacityLayouts))

	add := func(layout string) {
		v, ok := c[layout]
		if !ok || v.Empty() {
			return
		}
		out = append(out, models.CapacityEntry{
			CapacityType:  layout,
			CapacityValue: form.ParseInt(v.String()).Or(0),
		})
	}

	for _, layout := range CapacityLayouts {
		seen[layout] = true
		add(layout)
	}

	var extra []string
	for layout := range c {
		if !seen[layout] {
			extra = append(extra, layout)
		}
	}
	sort.Strings(extra)
	for _, layout := range extra {
		add(layout)
	}
	return out
}

// PhotoEntries marks the first photo in display order as primary.
func PhotoEntries(photos []models.Photo) []models.PhotoEntry {
	out := []models.PhotoEntry{}
	for _, p := range photos {
		url := p.URL.Trim()
		if url == "" {
			continue
		}
		out = append(out, models.PhotoEntry{PhotoURL: url, IsPrimary: len(out) == 0})
	}
	return out
}

func PricingEntries(prices []models.Price) []models.PricingEntry {
	out := []models.PricingEntry{}
	for _, p := range prices {
		if p.Type.Empty() && p.Price.Empty() {
			continue
		}
		out = append(out, models.PricingEntry{
			PricingType: p.Type.Trim(),
			Price:       form.ParseFloat(p.Price.String()).Or(0),
		})
	}
	return out
}

func PackageEntries(packages []models.Package) []models.PackageEntry {
	out := []models.PackageEntry{}
	for _, p := range packages {
		if p.Name.Empty() {
			continue
		}
		out = append(out, models.PackageEntry{
			Name:     p.Name.Trim(),
			Price:    form.ParseFloat(p.Price.String()).Or(0),
			Features: p.Features.Values(),
		})
	}
	return out
}

// RuleEntries turns each house rule line into a rule and appends the
// cancellation policy, if any.
func RuleEntries(r models.Rules) []models.RuleEntry {
	out := []models.RuleEntry{}
	for _, line := range r.HouseRules.Values() {
		out = append(out, models.RuleEntry{RuleType: models.RuleHouse, RuleText: line})
	}
	if policy := r.CancellationPolicy.Trim(); policy != "" {
		out = append(out, models.RuleEntry{RuleType: models.RuleCancellation, RuleText: policy})
	}
	return out
}
