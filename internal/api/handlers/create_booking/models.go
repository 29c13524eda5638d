package create_booking

import (
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FieldType string `json:"field_type"`
	Date      string `json:"date"`      // "2026-10-19"
	TimeSlot  string `json:"time_slot"` // "09:00 - 10:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBookingRequest) ToServiceRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		FieldType: strings.TrimSpace(r.FieldType),
		Date:      strings.TrimSpace(r.Date),
		TimeSlot:  strings.TrimSpace(r.TimeSlot),
	}
}
