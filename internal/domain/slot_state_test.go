package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var wib = time.FixedZone("WIB", 7*3600)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, wib)
}

func TestClassifySlot_Precedence(t *testing.T) {
	today := day(2026, 10, 15)
	now := time.Date(2026, 10, 15, 12, 30, 0, 0, wib)

	booked := NewBookedSlotSet("11:00 - 12:00", "15:00 - 16:00")
	selection := NewSelectionSet()
	selection.Toggle("11:00 - 12:00")
	selection.Toggle("15:00 - 16:00")
	selection.Toggle("16:00 - 17:00")

	tests := []struct {
		slot Slot
		want SlotState
	}{
		// Past перекрывает Booked и Selected
		{slot: "11:00 - 12:00", want: SlotPast},
		// слот, начавшийся в 12:00, уже идет
		{slot: "12:00 - 13:00", want: SlotPast},
		{slot: "15:00 - 16:00", want: SlotBooked},
		{slot: "16:00 - 17:00", want: SlotSelected},
		{slot: "17:00 - 18:00", want: SlotAvailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySlot(tt.slot, booked, selection, today, now))
		})
	}
}

func TestClassifySlot_PastBoundaryIsInclusive(t *testing.T) {
	today := day(2026, 10, 15)
	now := time.Date(2026, 10, 15, 13, 0, 0, 0, wib)

	assert.Equal(t, SlotPast, ClassifySlot("13:00 - 14:00", nil, nil, today, now))
	assert.Equal(t, SlotAvailable, ClassifySlot("14:00 - 15:00", nil, nil, today, now))
}

func TestClassifySlot_NonTodayIsNeverPast(t *testing.T) {
	now := time.Date(2026, 10, 15, 23, 0, 0, 0, wib)

	for _, date := range []time.Time{day(2026, 10, 14), day(2026, 10, 16), day(2025, 1, 1)} {
		for _, slot := range Catalog() {
			assert.NotEqual(t, SlotPast, ClassifySlot(slot, nil, nil, date, now), "%s %s", date, slot)
		}
	}
}

func TestClassifySlot_NowInOtherZone(t *testing.T) {
	today := day(2026, 10, 15)
	// 05:00 UTC == 12:00 WIB
	now := time.Date(2026, 10, 15, 5, 0, 0, 0, time.UTC)

	assert.Equal(t, SlotPast, ClassifySlot("12:00 - 13:00", nil, nil, today, now))
	assert.Equal(t, SlotAvailable, ClassifySlot("13:00 - 14:00", nil, nil, today, now))
}

func TestClassifyGrid_NextMondayExample(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, wib)
	nextMonday := day(2026, 10, 19)
	booked := NewBookedSlotSet("09:00 - 10:00")

	grid := ClassifyGrid(booked, NewSelectionSet(), nextMonday, now)

	counts := map[SlotState]int{}
	for _, v := range grid {
		counts[v.State]++
	}

	assert.Len(t, grid, 12)
	assert.Equal(t, 1, counts[SlotBooked])
	assert.Equal(t, 0, counts[SlotPast])
	assert.Equal(t, 11, counts[SlotAvailable])
	assert.Equal(t, SlotBooked, grid[0].State)
}

func TestSlotStateTogglable(t *testing.T) {
	assert.True(t, SlotAvailable.Togglable())
	assert.True(t, SlotSelected.Togglable())
	assert.False(t, SlotBooked.Togglable())
	assert.False(t, SlotPast.Togglable())
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(day(2026, 10, 17)))
	assert.True(t, IsWeekend(day(2026, 10, 18)))
	assert.False(t, IsWeekend(day(2026, 10, 19)))
	assert.False(t, IsWeekend(day(2026, 10, 16)))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, wib)

	assert.True(t, IsDateInPast(day(2026, 10, 14), now))
	assert.False(t, IsDateInPast(day(2026, 10, 15), now))
	assert.False(t, IsDateInPast(day(2026, 10, 16), now))
}

func TestSelectionSet(t *testing.T) {
	s := NewSelectionSet()

	assert.True(t, s.Toggle("10:00 - 11:00"))
	assert.True(t, s.Toggle("09:00 - 10:00"))
	assert.True(t, s.Toggle("12:00 - 13:00"))
	assert.Equal(t, []Slot{"10:00 - 11:00", "09:00 - 10:00", "12:00 - 13:00"}, s.Labels())

	assert.False(t, s.Toggle("09:00 - 10:00"))
	assert.Equal(t, []Slot{"10:00 - 11:00", "12:00 - 13:00"}, s.Labels())
	assert.False(t, s.Contains("09:00 - 10:00"))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Labels())
}

func TestSelectionSet_DoubleToggleRestores(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle("18:00 - 19:00")
	before := s.Labels()

	s.Toggle("19:00 - 20:00")
	s.Toggle("19:00 - 20:00")

	assert.Equal(t, before, s.Labels())
}

func TestSelectionSet_ZeroValue(t *testing.T) {
	var s SelectionSet
	assert.True(t, s.Toggle("09:00 - 10:00"))
	assert.Equal(t, 1, s.Len())
}
