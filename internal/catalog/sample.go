package catalog

import "time"

// Sample is the demo catalog the marketplace ships with. Booked days are
// relative to now so the calendar always has something to grey out.
func Sample(now time.Time) *Catalog {
	venues := []Venue{
		{
			ID: "v-glasshouse", Name: "The Glasshouse", Type: "Banquet Hall", City: "Bengaluru",
			Location: "MG Road, Bengaluru", MaxGuests: 300, PricePerDay: 150000, Rating: 4.7,
			Amenities: []string{"WiFi", "Parking", "In-house catering", "DJ"},
			Photo:     "https://images.example.com/venues/glasshouse.jpg",
		},
		{
			ID: "v-skydeck", Name: "Skydeck Rooftop", Type: "Rooftop", City: "Mumbai",
			Location: "Lower Parel, Mumbai", MaxGuests: 120, PricePerDay: 90000, Rating: 4.5,
			Amenities: []string{"Bar", "Sound system", "City view"},
			Photo:     "https://images.example.com/venues/skydeck.jpg",
		},
		{
			ID: "v-courtyard", Name: "Heritage Courtyard", Type: "Lawn", City: "Jaipur",
			Location: "Civil Lines, Jaipur", MaxGuests: 800, PricePerDay: 220000, Rating: 4.8,
			Amenities: []string{"Parking", "Decor", "Valet", "Catering"},
			Photo:     "https://images.example.com/venues/courtyard.jpg",
		},
		{
			ID: "v-studio9", Name: "Studio 9", Type: "Studio", City: "Bengaluru",
			Location: "Indiranagar, Bengaluru", MaxGuests: 40, PricePerDay: 18000, Rating: 4.2,
			Amenities: []string{"WiFi", "Projector", "Whiteboard"},
			Photo:     "https://images.example.com/venues/studio9.jpg",
		},
		{
			ID: "v-lakeside", Name: "Lakeside Pavilion", Type: "Banquet Hall", City: "Pune",
			Location: "Koregaon Park, Pune", MaxGuests: 450, PricePerDay: 120000, Rating: 4.4,
			Amenities: []string{"Parking", "Lake view", "Catering", "Bridal room"},
			Photo:     "https://images.example.com/venues/lakeside.jpg",
		},
		{
			ID: "v-boardroom", Name: "Tower Boardroom", Type: "Meeting Room", City: "Mumbai",
			Location: "BKC, Mumbai", MaxGuests: 20, PricePerDay: 25000, Rating: 4.1,
			Amenities: []string{"WiFi", "Video conferencing", "Coffee"},
			Photo:     "https://images.example.com/venues/boardroom.jpg",
		},
	}

	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }
	booked := map[string][]time.Time{
		"v-glasshouse": {day(2), day(3), day(9)},
		"v-skydeck":    {day(1), day(6)},
		"v-courtyard":  {day(4), day(5), day(12), day(13)},
		"v-lakeside":   {day(7)},
	}
	return New(venues, booked)
}
