package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_ComparisonPrice(t *testing.T) {
	tests := []struct {
		name      string
		product   Product
		wantPrice float64
		wantOK    bool
	}{
		{
			name:      "minimum schedule price wins",
			product:   Product{Schedules: []Schedule{{Price: 100}, {Price: 80}, {Price: 95}}},
			wantPrice: 80,
			wantOK:    true,
		},
		{
			name:      "schedules shadow the direct price",
			product:   Product{Price: 10, HasPrice: true, Schedules: []Schedule{{Price: 90}}},
			wantPrice: 90,
			wantOK:    true,
		},
		{
			name:      "direct price without schedules",
			product:   Product{Price: 45, HasPrice: true},
			wantPrice: 45,
			wantOK:    true,
		},
		{
			name:      "zero is a real direct price",
			product:   Product{Price: 0, HasPrice: true},
			wantPrice: 0,
			wantOK:    true,
		},
		{
			name:    "no price at all",
			product: Product{},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := tt.product.ComparisonPrice()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantPrice, price)
			}
		})
	}
}

func TestProduct_DefaultTimeSlot(t *testing.T) {
	withSlots := Product{TimeSlots: []TimeSlot{
		{StartTime: "10:00", EndTime: "12:00"},
		{StartTime: "14:00", EndTime: "16:00"},
	}}
	assert.Equal(t, TimeSlot{StartTime: "10:00", EndTime: "12:00"}, withSlots.DefaultTimeSlot())

	bare := Product{}
	assert.Equal(t, FallbackTimeSlot, bare.DefaultTimeSlot())
	assert.Equal(t, "09:00", FallbackTimeSlot.StartTime)
	assert.Equal(t, "17:00", FallbackTimeSlot.EndTime)
}

func TestProduct_ScheduleFor(t *testing.T) {
	p := Product{Schedules: []Schedule{
		{ID: "s1", Price: 50, Date: "2026-09-01", Time: "10:00"},
		{ID: "s2", Price: 60, Date: "2026-09-01", Time: "14:00"},
		{ID: "s3", Price: 50, Date: "2026-09-02", Time: "10:00"},
	}}

	s, ok := p.ScheduleFor("2026-09-01", "14:00")
	assert.True(t, ok)
	assert.Equal(t, "s2", s.ID)

	_, ok = p.ScheduleFor("2026-09-01", "18:00")
	assert.False(t, ok)

	_, ok = p.ScheduleFor("2026-09-03", "10:00")
	assert.False(t, ok)
}
