package models

// ============================================================
// Venue creation payload
// ============================================================

type PhotoEntry struct {
	PhotoURL  string `json:"photo_url"`
	IsPrimary bool   `json:"is_primary"`
}

type CapacityEntry struct {
	CapacityType  string `json:"capacity_type"`
	CapacityValue int    `json:"capacity_value"`
}

type FacilityEntry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type PricingEntry struct {
	PricingType string  `json:"pricing_type"`
	Price       float64 `json:"price"`
}

type PackageEntry struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

type RuleEntry struct {
	RuleType string `json:"rule_type"`
	RuleText string `json:"rule_text"`
}

const (
	FacilityGeneral  = "general"
	FacilityCatering = "catering"
	FacilityMusic    = "music"

	RuleHouse        = "house_rule"
	RuleCancellation = "cancellation_policy"
)

// Payload is the body sent to the venue service. Slices are never nil so
// they encode as [].
type Payload struct {
	VenueName     string          `json:"venue_name"`
	VenueType     string          `json:"venue_type"`
	SpaceType     string          `json:"space_type"`
	Location      string          `json:"location"`
	City          string          `json:"city"`
	Description   string          `json:"description"`
	Capacity      int             `json:"capacity"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	Photos        []PhotoEntry    `json:"photos"`
	Capacities    []CapacityEntry `json:"capacities"`
	Facilities    []FacilityEntry `json:"facilities"`
	Pricing       []PricingEntry  `json:"pricing"`
	Packages      []PackageEntry  `json:"packages"`
	Rules         []RuleEntry     `json:"rules"`
	AllowedEvents []string        `json:"allowed_events"`
}

// Created is what the venue service answers with.
type Created struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}
