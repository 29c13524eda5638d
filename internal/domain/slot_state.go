package domain

import "time"

// SlotState состояние слота в сетке. Состояния взаимоисключающие
type SlotState int

const (
	SlotAvailable SlotState = iota
	SlotSelected
	SlotBooked
	SlotPast
)

func (s SlotState) String() string {
	switch s {
	case SlotAvailable:
		return "available"
	case SlotSelected:
		return "selected"
	case SlotBooked:
		return "booked"
	case SlotPast:
		return "past"
	default:
		return "unknown"
	}
}

// Togglable returns true if the slot may be added to or removed from the selection
func (s SlotState) Togglable() bool {
	return s == SlotAvailable || s == SlotSelected
}

// SlotView слот сетки вместе с его состоянием
type SlotView struct {
	Slot  Slot
	State SlotState
}

// ClassifySlot определяет состояние слота. Правила проверяются по порядку, первое совпадение побеждает:
//  1. Past: дата совпадает с сегодняшней (по календарю) и начало слота <= now
//  2. Booked: слот есть в booked
//  3. Selected: слот есть в selection
//  4. Available
//
// Даты, отличные от сегодняшней, никогда не дают Past
func ClassifySlot(slot Slot, booked BookedSlotSet, selection *SelectionSet, date, now time.Time) SlotState {
	if IsPastSlot(slot, date, now) {
		return SlotPast
	}
	if booked.Contains(slot) {
		return SlotBooked
	}
	if selection != nil && selection.Contains(slot) {
		return SlotSelected
	}
	return SlotAvailable
}

// ClassifyGrid классифицирует весь каталог
func ClassifyGrid(booked BookedSlotSet, selection *SelectionSet, date, now time.Time) []SlotView {
	views := make([]SlotView, 0, len(slotCatalog))
	for _, slot := range slotCatalog {
		views = append(views, SlotView{
			Slot:  slot,
			State: ClassifySlot(slot, booked, selection, date, now),
		})
	}
	return views
}

// IsPastSlot проверяет правило Past. now приводится к часовому поясу date
func IsPastSlot(slot Slot, date, now time.Time) bool {
	now = now.In(date.Location())
	if !IsSameDay(date, now) {
		return false
	}

	start, err := slot.StartOn(date)
	if err != nil {
		return false
	}

	return !start.After(now)
}

// IsSameDay проверяет, что две даты относятся к одному и тому же календарному дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	now = now.In(date.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.Before(nowOnly)
}

// IsWeekend returns true for Saturday and Sunday, when the facility does not take reservations
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
