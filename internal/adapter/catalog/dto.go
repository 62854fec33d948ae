package catalog

import "encoding/json"

// productDTO mirrors the catalog's product JSON. Price and rating are
// pointers because legacy products omit the fields entirely.
type productDTO struct {
	ID        string        `json:"_id"`
	Title     string        `json:"title"`
	City      string        `json:"city"`
	Category  string        `json:"category"`
	Price     *float64      `json:"price"`
	Rating    *float64      `json:"rating"`
	Schedules []scheduleDTO `json:"schedules"`
	TimeSlots []timeSlotDTO `json:"timeSlots"`
}

type scheduleDTO struct {
	ID    string  `json:"_id"`
	Price float64 `json:"price"`
	Date  string  `json:"date"`
	Time  string  `json:"time"`
}

type timeSlotDTO struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// paginatedListDTO is the modern shape of the simple listing endpoint.
// The legacy shape is a bare array of productDTO.
type paginatedListDTO struct {
	Products   []productDTO  `json:"products"`
	Pagination paginationDTO `json:"pagination"`
}

type paginationDTO struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// advancedSearchDTO is the response shape of the advanced search endpoint.
type advancedSearchDTO struct {
	Products   []productDTO `json:"products"`
	TotalPages int          `json:"totalPages"`
}

// categoriesDTO is the response shape of the categories endpoint. Entries
// may be bare strings or objects carrying a slug and/or name.
type categoriesDTO struct {
	Categories []json.RawMessage `json:"categories"`
}

// categoryObjectDTO is the object form of a category entry.
type categoryObjectDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// createScheduleDTO is the request body for materializing a virtual slot.
type createScheduleDTO struct {
	Price float64 `json:"price"`
	Date  string  `json:"date"`
	Time  string  `json:"time"`
}
