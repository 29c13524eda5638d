package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
)

// ParseBookingStatus разбирает статус без учета регистра
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// IsActive returns true if the status occupies the slot
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// Booking бронирование одного часового слота на площадке
type Booking struct {
	ID        int64
	UserID    string
	FieldType FieldType
	Date      time.Time
	TimeSlot  Slot
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot (pending or approved)
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanChangeStatus returns true if an administrator may still approve or reject the booking
func (b *Booking) CanChangeStatus() bool {
	return b.Status == StatusPending
}

// IsOwnedBy returns true if the booking was made by the user
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID != "" && b.UserID == userID
}

// BookingsFilter фильтр списка бронирований. nil-поля не ограничивают выборку
type BookingsFilter struct {
	FieldType *FieldType
	Date      *time.Time
	Status    *BookingStatus
	UserID    *string
}
