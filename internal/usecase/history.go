package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/store"
)

// History caps: up to 10 entries survive a write, and only the 5 most
// recent are surfaced on load.
const (
	HistoryWriteCap = 10
	HistoryLoadCap  = 5
)

// HistoryUseCase manages the free-text search history.
type HistoryUseCase interface {
	// Append records a query at the head of the history. Duplicates move to
	// the head instead of repeating; the stored list is capped at
	// HistoryWriteCap entries.
	Append(ctx context.Context, query string) error

	// Recent returns up to HistoryLoadCap entries, most recent first.
	Recent(ctx context.Context) ([]string, error)
}

// historyUseCase implements HistoryUseCase over a SearchStore.
type historyUseCase struct {
	store store.SearchStore
}

// NewHistoryUseCase creates a HistoryUseCase.
func NewHistoryUseCase(s store.SearchStore) HistoryUseCase {
	return &historyUseCase{store: s}
}

// Append implements HistoryUseCase.
func (uc *historyUseCase) Append(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("%w: history entry cannot be empty", domain.ErrInvalidRequest)
	}

	entries, err := uc.store.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	updated := make([]string, 0, len(entries)+1)
	updated = append(updated, query)
	for _, e := range entries {
		if strings.EqualFold(e, query) {
			continue
		}
		updated = append(updated, e)
	}
	if len(updated) > HistoryWriteCap {
		updated = updated[:HistoryWriteCap]
	}

	if err := uc.store.SaveHistory(ctx, updated); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Recent implements HistoryUseCase.
func (uc *historyUseCase) Recent(ctx context.Context) ([]string, error) {
	entries, err := uc.store.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if len(entries) > HistoryLoadCap {
		entries = entries[:HistoryLoadCap]
	}
	return entries, nil
}

// Ensure historyUseCase implements HistoryUseCase at compile time.
var _ HistoryUseCase = (*historyUseCase)(nil)
