// Package domain contains the core business entities and rules for the tour
// search and booking-selection system. These entities are catalog-agnostic and
// form the foundation upon which all other components are built.
package domain

// Product represents a single bookable experience offered through the catalog.
// It carries the fields the search and selection flows consume.
type Product struct {
	// ID is the catalog identifier for this product
	ID string `json:"id"`

	// Title is the display name of the experience (e.g., "Medina Food Walk")
	Title string `json:"title"`

	// City is the city the experience takes place in
	City string `json:"city"`

	// Category is the product's category slug (e.g., "food-tours")
	Category string `json:"category"`

	// Price is the direct list price; zero means no direct price is set
	Price float64 `json:"price"`

	// HasPrice reports whether Price carries a real value.
	// The catalog omits the field entirely for some legacy products.
	HasPrice bool `json:"hasPrice"`

	// Rating is the average review rating (0-5); zero means unrated
	Rating float64 `json:"rating"`

	// Schedules are the persisted departures with their own prices
	Schedules []Schedule `json:"schedules,omitempty"`

	// TimeSlots are the offering windows a booking can target
	TimeSlots []TimeSlot `json:"timeSlots,omitempty"`
}

// Schedule represents a persisted departure of a product.
type Schedule struct {
	// ID is the catalog identifier for this schedule, empty for virtual slots
	ID string `json:"id,omitempty"`

	// Price is the price for this departure
	Price float64 `json:"price"`

	// Date is the departure date in YYYY-MM-DD format
	Date string `json:"date"`

	// Time is the departure time in HH:MM format
	Time string `json:"time"`
}

// TimeSlot represents an offering window for a product on a given day.
type TimeSlot struct {
	// StartTime is the slot start in HH:MM format
	StartTime string `json:"startTime"`

	// EndTime is the slot end in HH:MM format
	EndTime string `json:"endTime"`
}

// FallbackTimeSlot is the synthetic slot used when a product defines none.
var FallbackTimeSlot = TimeSlot{StartTime: "09:00", EndTime: "17:00"}

// DefaultTimeSlot returns the slot a fresh selection starts with: the first
// offered slot, or the synthetic fallback when the product defines none.
func (p *Product) DefaultTimeSlot() TimeSlot {
	if len(p.TimeSlots) > 0 {
		return p.TimeSlots[0]
	}
	return FallbackTimeSlot
}

// ComparisonPrice returns the price used for filtering and sorting: the
// minimum schedule price when the product has schedules, else the direct
// price. The second return value is false when neither source yields a price,
// in which case the product is treated as priceless.
func (p *Product) ComparisonPrice() (float64, bool) {
	if len(p.Schedules) > 0 {
		min := p.Schedules[0].Price
		for _, s := range p.Schedules[1:] {
			if s.Price < min {
				min = s.Price
			}
		}
		return min, true
	}
	if p.HasPrice {
		return p.Price, true
	}
	return 0, false
}

// ScheduleFor returns the persisted schedule matching the given date and
// start time, if any. A miss means the booking targets a virtual slot that
// must be materialized upstream before it can be booked.
func (p *Product) ScheduleFor(date, startTime string) (Schedule, bool) {
	for _, s := range p.Schedules {
		if s.Date == date && s.Time == startTime {
			return s, true
		}
	}
	return Schedule{}, false
}

// ProductPage is the normalized result of a catalog listing or search call.
// Both upstream response shapes (bare array and paginated envelope) are
// converted into this form at the adapter boundary.
type ProductPage struct {
	// Products is the page of results
	Products []Product `json:"products"`

	// Page is the 1-based page number this result represents
	Page int `json:"page"`

	// TotalPages is the number of pages available upstream
	TotalPages int `json:"totalPages"`

	// Total is the total number of matching products, when reported
	Total int `json:"total,omitempty"`
}
