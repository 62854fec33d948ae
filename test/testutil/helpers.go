// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"testing"
	"time"
)

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, timeStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", timeStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// FutureDate returns a date string the given number of days ahead in
// YYYY-MM-DD format. Useful for staying past the picker's past-day cutoff.
func FutureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// FloatPtr returns a pointer to a float64.
// Convenience function for price range tests.
func FloatPtr(f float64) *float64 {
	return &f
}

// IntPtr returns a pointer to an int.
func IntPtr(i int) *int {
	return &i
}

// StringSlice returns a slice of strings.
// Convenience function for category filter tests.
func StringSlice(s ...string) []string {
	return s
}
