package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/store"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/timeutil"
)

// SavedSearchUseCase manages named snapshots of query state. Snapshots are
// pure client convenience persisted through the search store; they are never
// synced to the upstream catalog.
type SavedSearchUseCase interface {
	// Save snapshots the query under a name and returns the stored record.
	Save(ctx context.Context, name string, query domain.SearchQuery) (domain.SavedSearch, error)

	// List returns all snapshots, newest first.
	List(ctx context.Context) ([]domain.SavedSearch, error)

	// Load returns the query state of a snapshot, fully replacing the
	// caller's current state with page reset to 1.
	Load(ctx context.Context, id string) (domain.SearchQuery, error)

	// Delete removes a snapshot by id.
	Delete(ctx context.Context, id string) error
}

// savedSearchUseCase implements SavedSearchUseCase over a SearchStore.
type savedSearchUseCase struct {
	store store.SearchStore
	clock timeutil.Clock
}

// NewSavedSearchUseCase creates a SavedSearchUseCase.
func NewSavedSearchUseCase(s store.SearchStore, clock timeutil.Clock) SavedSearchUseCase {
	return &savedSearchUseCase{store: s, clock: clock}
}

// Save implements SavedSearchUseCase.
func (uc *savedSearchUseCase) Save(ctx context.Context, name string, query domain.SearchQuery) (domain.SavedSearch, error) {
	if name == "" {
		return domain.SavedSearch{}, fmt.Errorf("%w: saved search name is required", domain.ErrInvalidRequest)
	}

	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return domain.SavedSearch{}, err
	}

	saved := domain.SavedSearch{
		ID:        uuid.New().String(),
		Name:      name,
		Query:     query,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.store.PutSavedSearch(ctx, saved); err != nil {
		return domain.SavedSearch{}, fmt.Errorf("put saved search: %w", err)
	}
	return saved, nil
}

// List implements SavedSearchUseCase.
func (uc *savedSearchUseCase) List(ctx context.Context) ([]domain.SavedSearch, error) {
	searches, err := uc.store.ListSavedSearches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	return searches, nil
}

// Load implements SavedSearchUseCase.
func (uc *savedSearchUseCase) Load(ctx context.Context, id string) (domain.SearchQuery, error) {
	saved, err := uc.store.GetSavedSearch(ctx, id)
	if err != nil {
		return domain.SearchQuery{}, err
	}
	return saved.Restore(), nil
}

// Delete implements SavedSearchUseCase.
func (uc *savedSearchUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.DeleteSavedSearch(ctx, id)
}

// Ensure savedSearchUseCase implements SavedSearchUseCase at compile time.
var _ SavedSearchUseCase = (*savedSearchUseCase)(nil)
