package domain

import "time"

// MonthGrid is the render model for one displayed calendar month: the
// leading blank cells that align day 1 with its weekday column, then one
// cell per day of the month.
type MonthGrid struct {
	// Year is the displayed year
	Year int `json:"year"`

	// Month is the displayed month (1-12)
	Month time.Month `json:"month"`

	// LeadingBlanks is the number of empty cells before day 1
	// (the weekday index of the 1st, 0 = Sunday)
	LeadingBlanks int `json:"leadingBlanks"`

	// Days holds one cell per day, 1..last day of month
	Days []DayCell `json:"days"`
}

// DayCell is a single selectable day in the grid.
type DayCell struct {
	// Day is the day of month (1-based)
	Day int `json:"day"`

	// Date is the full date at midnight UTC
	Date time.Time `json:"date"`

	// Disabled marks days strictly before today
	Disabled bool `json:"disabled"`

	// InRange marks days inside the committed or hover-previewed range
	InRange bool `json:"inRange"`
}

// BuildMonthGrid computes the grid for a month. A day is disabled iff its
// date lies strictly before today (today truncated to midnight).
func BuildMonthGrid(year int, month time.Month, today time.Time) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	today = TruncateToDay(today)

	grid := MonthGrid{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]DayCell, 0, last.Day()),
	}

	for d := 1; d <= last.Day(); d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		grid.Days = append(grid.Days, DayCell{
			Day:      d,
			Date:     date,
			Disabled: date.Before(today),
		})
	}

	return grid
}

// Grid returns the render model for the picker's displayed month, with
// range highlighting derived from the committed selection and hover preview.
func (p *Picker) Grid() MonthGrid {
	grid := BuildMonthGrid(p.year, p.month, p.Today())
	for i := range grid.Days {
		grid.Days[i].InRange = p.InPreviewRange(grid.Days[i].Date)
	}
	return grid
}
