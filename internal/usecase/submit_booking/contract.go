package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/integrations/bookingapi"
)

// BookingAPIClient интерфейс клиента Booking API
type BookingAPIClient interface {
	CreateBooking(ctx context.Context, token string, req bookingapi.CreateBookingRequest) (*bookingapi.Booking, error)
	DeleteBooking(ctx context.Context, token string, id int64) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
