package catalog

import (
	"sort"
	"strings"
	"time"
)

// ============================================================
// Venue Catalog
// ============================================================

type Venue struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	City        string   `json:"city"`
	Location    string   `json:"location"`
	MaxGuests   int      `json:"max_guests"`
	PricePerDay float64  `json:"price_per_day"`
	Rating      float64  `json:"rating"`
	Amenities   []string `json:"amenities"`
	Photo       string   `json:"photo"`
}

// Filter narrows a search. Zero values match everything.
type Filter struct {
	Query     string
	City      string
	Type      string
	MinGuests int
	MaxPrice  float64
}

func (f Filter) Match(v Venue) bool {
	if f.City != "" && !strings.EqualFold(f.City, v.City) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(f.Type, v.Type) {
		return false
	}
	if f.MinGuests > 0 && v.MaxGuests < f.MinGuests {
		return false
	}
	if f.MaxPrice > 0 && v.PricePerDay > f.MaxPrice {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(v.Name + " " + v.Location + " " + strings.Join(v.Amenities, " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

// Catalog is a read-only venue list with per-venue booked days.
type Catalog struct {
	venues []Venue
	byID   map[string]int
	booked map[string][]time.Time
}

func New(venues []Venue, booked map[string][]time.Time) *Catalog {
	c := &Catalog{
		venues: venues,
		byID:   make(map[string]int, len(venues)),
		booked: booked,
	}
	for i, v := range venues {
		c.byID[v.ID] = i
	}
	return c
}

func (c *Catalog) Get(id string) (Venue, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Venue{}, false
	}
	return c.venues[i], true
}

// Search returns the matching venues, best rated first, one page at a time.
func (c *Catalog) Search(f Filter, page, perPage int) Page[Venue] {
	var matched []Venue
	for _, v := range c.venues {
		if f.Match(v) {
			matched = append(matched, v)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Rating > matched[j].Rating
	})
	return Paginate(matched, page, perPage)
}

// BookedDays and MaxGuests let the catalog back the booking calendar.
func (c *Catalog) BookedDays(venueID string) []time.Time {
	return c.booked[venueID]
}

func (c *Catalog) MaxGuests(venueID string) (int, bool) {
	v, ok := c.Get(venueID)
	if !ok {
		return 0, false
	}
	return v.MaxGuests, true
}
