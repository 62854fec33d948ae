package domain

import "time"

// DoubleClickWindow is the maximum interval between two clicks on the same
// day number for them to count as a double click.
const DoubleClickWindow = 300 * time.Millisecond

// Clock abstracts time.Now for the picker. Satisfied by the timeutil clocks.
type Clock interface {
	Now() time.Time
}

// SelectionPhase is the explicit state of an in-progress date selection.
// Using a phase enum instead of nullable start/end fields keeps illegal
// combinations unrepresentable.
type SelectionPhase string

// Selection phases.
const (
	// PhaseEmpty means no day has been picked yet
	PhaseEmpty SelectionPhase = "empty"

	// PhaseSinglePending means one day is picked and a range may still be opened
	PhaseSinglePending SelectionPhase = "single_pending"

	// PhaseRangeClosed means both ends of a range are set; the next click
	// starts a new selection rather than adjusting the range
	PhaseRangeClosed SelectionPhase = "range_closed"
)

// DateSelection is the finalized outcome of a picker session.
// It always satisfies Start <= End, and Start is never a past date.
type DateSelection struct {
	// Start is the first selected day, truncated to midnight
	Start time.Time `json:"start"`

	// End is the last selected day; equals Start for single-day selections
	End time.Time `json:"end"`

	// IsSingleDay is true when the selection covers exactly one day
	IsSingleDay bool `json:"isSingleDay"`

	// TimeSlot is the offering window attached to the selection
	TimeSlot TimeSlot `json:"timeSlot"`
}

// Picker translates a sequence of day clicks into a validated date selection.
// It supports a double-click fast path for single days, a two-click range
// path with automatic endpoint swapping, a transient hover preview, and
// month navigation that never disturbs the in-progress selection.
//
// Picker is not safe for concurrent use; callers serialize access per session.
type Picker struct {
	phase SelectionPhase
	start time.Time
	end   time.Time
	hover time.Time

	slot TimeSlot

	// Displayed month; navigation changes these and nothing else.
	year  int
	month time.Month

	// Double-click bookkeeping. The day comparison is by day-of-month within
	// the displayed month, not full-date equality: clicking day 15, paging to
	// the next month, and clicking day 15 again inside the window still
	// registers as a double click. That quirk is long-standing observable
	// behavior and is kept as is.
	lastClickAt  time.Time
	lastClickDay int

	clock Clock
}

// NewPicker creates a picker with the given default time slot, displaying
// the month of the current day.
func NewPicker(slot TimeSlot, clock Clock) *Picker {
	now := clock.Now()
	return &Picker{
		phase: PhaseEmpty,
		slot:  slot,
		year:  now.Year(),
		month: now.Month(),
		clock: clock,
	}
}

// NewPickerForProduct creates a picker seeded with the product's default slot.
func NewPickerForProduct(p *Product, clock Clock) *Picker {
	return NewPicker(p.DefaultTimeSlot(), clock)
}

// Phase returns the current selection phase.
func (p *Picker) Phase() SelectionPhase { return p.phase }

// Start returns the selected start day; zero in the empty phase.
func (p *Picker) Start() time.Time { return p.start }

// End returns the selected end day; zero unless the range is closed.
func (p *Picker) End() time.Time { return p.end }

// Hover returns the transient hover day; zero when none is set.
func (p *Picker) Hover() time.Time { return p.hover }

// TimeSlot returns the currently chosen time slot.
func (p *Picker) TimeSlot() TimeSlot { return p.slot }

// DisplayedMonth returns the year and month the grid currently shows.
func (p *Picker) DisplayedMonth() (int, time.Month) { return p.year, p.month }

// Today returns the current day truncated to midnight.
func (p *Picker) Today() time.Time {
	return TruncateToDay(p.clock.Now())
}

// IsDisabled reports whether a day cannot be selected because it lies
// strictly before today.
func (p *Picker) IsDisabled(date time.Time) bool {
	return TruncateToDay(date).Before(p.Today())
}

// Click processes a day click. It returns a non-nil DateSelection when the
// click confirmed the selection via the double-click fast path; otherwise
// the selection stays in progress and the caller applies it explicitly.
// Past days are rejected with ErrPastDate.
func (p *Picker) Click(date time.Time) (*DateSelection, error) {
	day := TruncateToDay(date)
	if day.Before(p.Today()) {
		return nil, ErrPastDate
	}

	now := p.clock.Now()
	isDouble := p.lastClickDay == day.Day() &&
		!p.lastClickAt.IsZero() &&
		now.Sub(p.lastClickAt) < DoubleClickWindow
	p.lastClickAt = now
	p.lastClickDay = day.Day()

	if isDouble && p.phase == PhaseSinglePending {
		// Fast path: a user wanting just one day confirms without Apply.
		p.start = day
		p.end = day
		p.phase = PhaseRangeClosed
		p.hover = time.Time{}
		sel := p.selection(day, day, true)
		return &sel, nil
	}

	switch p.phase {
	case PhaseEmpty:
		p.start = day
		p.phase = PhaseSinglePending

	case PhaseSinglePending:
		switch {
		case day.Equal(p.start):
			// Same day outside the double-click window: stays single.
		case day.Before(p.start):
			// Swap so start <= end always holds.
			p.end = p.start
			p.start = day
			p.phase = PhaseRangeClosed
		default:
			p.end = day
			p.phase = PhaseRangeClosed
		}

	case PhaseRangeClosed:
		// A closed range is not adjustable; any click starts over.
		p.start = day
		p.end = time.Time{}
		p.phase = PhaseSinglePending
	}

	p.hover = time.Time{}
	return nil, nil
}

// SetHover records a transient hover day for range preview. It only takes
// effect while exactly one end of a range is picked, and ignores past days.
// It never mutates the committed selection.
func (p *Picker) SetHover(date time.Time) {
	if p.phase != PhaseSinglePending {
		return
	}
	day := TruncateToDay(date)
	if day.Before(p.Today()) {
		return
	}
	p.hover = day
}

// ClearHover removes the hover preview.
func (p *Picker) ClearHover() {
	p.hover = time.Time{}
}

// previewEnd returns the upper bound of the highlighted range: the committed
// end, extended by the hover day when that reaches further.
func (p *Picker) previewEnd() time.Time {
	end := p.end
	if !p.hover.IsZero() && p.hover.After(end) {
		end = p.hover
	}
	return end
}

// InPreviewRange reports whether a day should render as part of the selected
// or previewed range: any day between start and max(end, hover), inclusive.
func (p *Picker) InPreviewRange(date time.Time) bool {
	if p.phase == PhaseEmpty {
		return false
	}
	day := TruncateToDay(date)
	if day.Before(p.start) {
		return false
	}
	end := p.previewEnd()
	if end.IsZero() {
		return day.Equal(p.start)
	}
	return !day.After(end)
}

// NavigateMonth moves the displayed month by delta (negative for previous).
// The in-progress selection is untouched.
func (p *Picker) NavigateMonth(delta int) {
	m := time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	p.year = m.Year()
	p.month = m.Month()
}

// SetTimeSlot attaches a slot to the selection. Slot choice is independent
// of the date state and does not affect the grid.
func (p *Picker) SetTimeSlot(slot TimeSlot) {
	p.slot = slot
}

// Apply finalizes the in-progress selection. A pending single day closes as
// a one-day range. Returns ErrEmptySelection before any day is picked.
func (p *Picker) Apply() (DateSelection, error) {
	switch p.phase {
	case PhaseEmpty:
		return DateSelection{}, ErrEmptySelection
	case PhaseSinglePending:
		return p.selection(p.start, p.start, true), nil
	default:
		return p.selection(p.start, p.end, p.end.Equal(p.start)), nil
	}
}

// Reset discards the in-progress selection and hover, returning the picker
// to the empty phase. The displayed month and time slot are kept.
func (p *Picker) Reset() {
	p.phase = PhaseEmpty
	p.start = time.Time{}
	p.end = time.Time{}
	p.hover = time.Time{}
	p.lastClickAt = time.Time{}
	p.lastClickDay = 0
}

func (p *Picker) selection(start, end time.Time, single bool) DateSelection {
	return DateSelection{
		Start:       start,
		End:         end,
		IsSingleDay: single,
		TimeSlot:    p.slot,
	}
}

// TruncateToDay truncates a time to midnight in its own location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
