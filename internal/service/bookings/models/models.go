package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модели

// CreateBookingRequest запрос на бронирование одного слота
type CreateBookingRequest struct {
	FieldType string `json:"field_type"`
	Date      string `json:"date"`      // "2026-10-19"
	TimeSlot  string `json:"time_slot"` // "09:00 - 10:00"
}

// ListBookingsRequest фильтры списка бронирований. Пустые поля не ограничивают выборку
type ListBookingsRequest struct {
	FieldType string
	Date      string
	Status    string
	Mine      bool // только бронирования вызывающего пользователя
}

// UpdateStatusRequest запрос администратора на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse бронирование в формате Booking API
type BookingResponse struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	TimeSlot  string `json:"time_slot"`
	Date      string `json:"date"`
	FieldType string `json:"field_type"`
	User      string `json:"user"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:        b.ID,
		Status:    string(b.Status),
		TimeSlot:  b.TimeSlot.String(),
		Date:      b.Date.Format(domain.DateFormat),
		FieldType: b.FieldType.String(),
		User:      b.UserID,
		CreatedAt: formatTime(b.CreatedAt),
		UpdatedAt: formatTime(b.UpdatedAt),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
