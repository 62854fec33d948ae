package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/logger"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/timeutil"
)

// SelectionUseCase manages booking date-selection sessions. A session wraps
// one picker for one product; clicks, hovers, month navigation and slot
// choice mutate it, and Apply (or a double-click confirm) finalizes it into
// a DateSelection handed to the booking flow.
type SelectionUseCase interface {
	// Create opens a session for a product. The time slot defaults to the
	// product's first offered slot, or the 09:00-17:00 fallback.
	Create(ctx context.Context, productID string) (*SelectionView, error)

	// Get returns the current session state.
	Get(ctx context.Context, id string) (*SelectionView, error)

	// Click processes a day click. A double click on the same day number
	// inside the window confirms immediately; the returned view then
	// carries the finalized selection and the session is closed.
	Click(ctx context.Context, id string, date time.Time) (*SelectionView, error)

	// Hover records the hover-preview day.
	Hover(ctx context.Context, id string, date time.Time) (*SelectionView, error)

	// Navigate moves the displayed month by delta without touching the
	// in-progress selection.
	Navigate(ctx context.Context, id string, delta int) (*SelectionView, error)

	// SetSlot chooses a time slot from the product's offered slots.
	SetSlot(ctx context.Context, id string, slot domain.TimeSlot) (*SelectionView, error)

	// Reset discards the in-progress selection.
	Reset(ctx context.Context, id string) (*SelectionView, error)

	// Apply finalizes the selection, closes the session, and materializes
	// an upstream schedule when the chosen slot has none for the start day.
	Apply(ctx context.Context, id string) (*SelectionView, error)
}

// SelectionView is the render model of a session returned to the client.
type SelectionView struct {
	// ID identifies the session
	ID string `json:"id"`

	// ProductID is the product the selection is for
	ProductID string `json:"productId"`

	// Phase is the current selection phase
	Phase domain.SelectionPhase `json:"phase"`

	// Start is the selected start day (YYYY-MM-DD), empty when none
	Start string `json:"start,omitempty"`

	// End is the selected end day (YYYY-MM-DD), empty until a range closes
	End string `json:"end,omitempty"`

	// TimeSlot is the currently chosen slot
	TimeSlot domain.TimeSlot `json:"timeSlot"`

	// AvailableSlots are the slots the product offers (fallback included
	// when it offers none)
	AvailableSlots []domain.TimeSlot `json:"availableSlots"`

	// Grid is the displayed month with disabled and in-range flags
	Grid domain.MonthGrid `json:"grid"`

	// Selection is set once the session is finalized
	Selection *domain.DateSelection `json:"selection,omitempty"`

	// Schedule is the materialized upstream schedule backing the
	// selection, set on finalize
	Schedule *domain.Schedule `json:"schedule,omitempty"`
}

// selectionSession is one live picker with its product context.
type selectionSession struct {
	id      string
	product *domain.Product
	picker  *domain.Picker
	mu      sync.Mutex
}

// selectionUseCase implements SelectionUseCase with an in-process session
// registry. Sessions are short-lived UI state; they are not persisted.
type selectionUseCase struct {
	catalog  domain.CatalogClient
	clock    timeutil.Clock
	log      *logger.Logger
	mu       sync.RWMutex
	sessions map[string]*selectionSession
}

// NewSelectionUseCase creates a SelectionUseCase.
func NewSelectionUseCase(catalog domain.CatalogClient, clock timeutil.Clock, log *logger.Logger) SelectionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &selectionUseCase{
		catalog:  catalog,
		clock:    clock,
		log:      log,
		sessions: make(map[string]*selectionSession),
	}
}

// Create implements SelectionUseCase.
func (uc *selectionUseCase) Create(ctx context.Context, productID string) (*SelectionView, error) {
	product, err := uc.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	session := &selectionSession{
		id:      uuid.New().String(),
		product: product,
		picker:  domain.NewPickerForProduct(product, uc.clock),
	}

	uc.mu.Lock()
	uc.sessions[session.id] = session
	uc.mu.Unlock()

	uc.log.WithSession(session.id).Debug().Str("product_id", productID).Msg("selection session created")
	return uc.view(session), nil
}

// Get implements SelectionUseCase.
func (uc *selectionUseCase) Get(_ context.Context, id string) (*SelectionView, error) {
	session, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return uc.view(session), nil
}

// Click implements SelectionUseCase.
func (uc *selectionUseCase) Click(ctx context.Context, id string, date time.Time) (*SelectionView, error) {
	session, err := uc.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	confirmed, err := session.picker.Click(date)
	if err != nil {
		return nil, err
	}
	if confirmed == nil {
		return uc.view(session), nil
	}

	// Double-click fast path: finalized without an explicit Apply.
	return uc.finalize(ctx, session, confirmed)
}

// Hover implements SelectionUseCase.
func (uc *selectionUseCase) Hover(_ context.Context, id string, date time.Time) (*SelectionView, error) {
	session, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.picker.SetHover(date)
	return uc.view(session), nil
}

// Navigate implements SelectionUseCase.
func (uc *selectionUseCase) Navigate(_ context.Context, id string, delta int) (*SelectionView, error) {
	session, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.picker.NavigateMonth(delta)
	return uc.view(session), nil
}

// SetSlot implements SelectionUseCase.
func (uc *selectionUseCase) SetSlot(_ context.Context, id string, slot domain.TimeSlot) (*SelectionView, error) {
	session, err := uc.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if !uc.slotOffered(session.product, slot) {
		return nil, fmt.Errorf("%w: slot %s-%s is not offered for this product",
			domain.ErrInvalidRequest, slot.StartTime, slot.EndTime)
	}
	session.picker.SetTimeSlot(slot)
	return uc.view(session), nil
}

// Reset implements SelectionUseCase.
func (uc *selectionUseCase) Reset(_ context.Context, id string) (*SelectionView, error) {
	session, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.picker.Reset()
	return uc.view(session), nil
}

// Apply implements SelectionUseCase.
func (uc *selectionUseCase) Apply(ctx context.Context, id string) (*SelectionView, error) {
	session, err := uc.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	selection, err := session.picker.Apply()
	if err != nil {
		return nil, err
	}
	return uc.finalize(ctx, session, &selection)
}

// finalize attaches the selection to the view, materializes a schedule for
// virtual slots, and closes the session. Called with session.mu held.
func (uc *selectionUseCase) finalize(ctx context.Context, session *selectionSession, selection *domain.DateSelection) (*SelectionView, error) {
	view := uc.view(session)
	view.Selection = selection

	startDate := timeutil.FormatDate(selection.Start)
	if existing, ok := session.product.ScheduleFor(startDate, selection.TimeSlot.StartTime); ok {
		view.Schedule = &existing
	} else {
		price, _ := session.product.ComparisonPrice()
		created, err := uc.catalog.CreateSchedule(ctx, session.product.ID, domain.Schedule{
			Price: price,
			Date:  startDate,
			Time:  selection.TimeSlot.StartTime,
		})
		if err != nil {
			return nil, err
		}
		view.Schedule = &created
	}

	uc.mu.Lock()
	delete(uc.sessions, session.id)
	uc.mu.Unlock()

	uc.log.WithSession(session.id).Info().
		Str("product_id", session.product.ID).
		Str("start", startDate).
		Bool("single_day", selection.IsSingleDay).
		Msg("selection finalized")
	return view, nil
}

// slotOffered checks the slot against the product's offered slots, or the
// fallback when it offers none.
func (uc *selectionUseCase) slotOffered(product *domain.Product, slot domain.TimeSlot) bool {
	if len(product.TimeSlots) == 0 {
		return slot == domain.FallbackTimeSlot
	}
	for _, s := range product.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func (uc *selectionUseCase) session(id string) (*selectionSession, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	session, ok := uc.sessions[id]
	if !ok {
		return nil, domain.ErrSelectionNotFound
	}
	return session, nil
}

// view builds the render model. Called with session.mu held (or before the
// session is shared).
func (uc *selectionUseCase) view(session *selectionSession) *SelectionView {
	p := session.picker

	view := &SelectionView{
		ID:             session.id,
		ProductID:      session.product.ID,
		Phase:          p.Phase(),
		TimeSlot:       p.TimeSlot(),
		AvailableSlots: availableSlots(session.product),
		Grid:           p.Grid(),
	}
	if !p.Start().IsZero() {
		view.Start = timeutil.FormatDate(p.Start())
	}
	if !p.End().IsZero() {
		view.End = timeutil.FormatDate(p.End())
	}
	return view
}

func availableSlots(product *domain.Product) []domain.TimeSlot {
	if len(product.TimeSlots) > 0 {
		return product.TimeSlots
	}
	return []domain.TimeSlot{domain.FallbackTimeSlot}
}

// Ensure selectionUseCase implements SelectionUseCase at compile time.
var _ SelectionUseCase = (*selectionUseCase)(nil)
