package bookingapi

// Booking бронирование в формате Booking API
type Booking struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	TimeSlot  string `json:"time_slot"`
	Date      string `json:"date"`
	FieldType string `json:"field_type,omitempty"`
	User      string `json:"user"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ListFilter параметры GET /bookings. Пустые поля не передаются
type ListFilter struct {
	FieldType string
	Date      string
	Status    string
	Mine      bool // только бронирования владельца токена
}

// CreateBookingRequest тело POST /bookings
type CreateBookingRequest struct {
	FieldType string `json:"field_type"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
}

type listBookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse модель ошибки от Booking API
type ErrorResponse struct {
	Message string `json:"message"`
}
