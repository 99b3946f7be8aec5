package handlers

import (
	"net/http"
	"strconv"

	"venue-market/internal/booking/service"
	"venue-market/internal/catalog"
	"venue-market/internal/common/form"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Catalog Handler
// ============================================================

// availabilityWindow is how many days /availability covers when no
// range is given.
const availabilityWindow = 60

type CatalogHandler struct {
	catalog *catalog.Catalog
	rules   service.Rules
}

func NewCatalogHandler(c *catalog.Catalog, rules service.Rules) *CatalogHandler {
	return &CatalogHandler{catalog: c, rules: rules}
}

func (h *CatalogHandler) Routes(r fiber.Router) {
	r.Get("/venues", h.List)
	r.Get("/venues/:id", h.Get)
	r.Get("/venues/:id/availability", h.Availability)
}

// List searches the catalog. Unparseable numeric filters are ignored.
func (h *CatalogHandler) List(c fiber.Ctx) error {
	filter := catalog.Filter{
		Query:     c.Query("q"),
		City:      c.Query("city"),
		Type:      c.Query("type"),
		MinGuests: form.ParseInt(c.Query("min_guests")).Or(0),
		MaxPrice:  form.ParseFloat(c.Query("max_price")).Or(0),
	}
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	return c.JSON(h.catalog.Search(filter, page, perPage))
}

func (h *CatalogHandler) Get(c fiber.Ctx) error {
	v, ok := h.catalog.Get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "venue not found"})
	}
	return c.JSON(v)
}

// Availability lists the days the booking calendar greys out for a venue,
// from today through ?days= days ahead.
func (h *CatalogHandler) Availability(c fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.catalog.Get(id); !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "venue not found"})
	}

	days := availabilityWindow
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 366 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "days must be between 1 and 366"})
		}
		days = n
	}

	cal := h.rules.CalendarFor(id)
	from := cal.Today.UTC()
	to := from.AddDate(0, 0, days-1)

	disabled := []string{}
	for _, d := range cal.DisabledDays(from, to) {
		disabled = append(disabled, d.Format(service.DateLayout))
	}
	return c.JSON(fiber.Map{
		"venue_id": id,
		"from":     from.Format(service.DateLayout),
		"to":       to.Format(service.DateLayout),
		"disabled": disabled,
	})
}
