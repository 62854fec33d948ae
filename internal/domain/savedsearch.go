package domain

import "time"

// SavedSearch is a named, persisted snapshot of query and filter state a
// user can reload later. It is client convenience state kept in the search
// store, never synced to the upstream catalog.
type SavedSearch struct {
	// ID uniquely identifies the snapshot
	ID string `json:"id"`

	// Name is the user-chosen label
	Name string `json:"name"`

	// Query is the full query state at save time
	Query SearchQuery `json:"query"`

	// CreatedAt is when the snapshot was taken
	CreatedAt time.Time `json:"createdAt"`
}

// Restore returns the query state this snapshot captures. Loading a saved
// search fully replaces the current state and always lands on page 1.
func (s *SavedSearch) Restore() SearchQuery {
	q := s.Query
	q.Page = 1
	q.SetDefaults()
	return q
}
