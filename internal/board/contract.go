package board

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/usecase/fetch_booked_slots"
	"github.com/m04kA/SMC-CourtBooking/internal/usecase/submit_booking"
)

// AvailabilityResolver интерфейс получения занятых слотов.
// IsLatest сообщает, что seq остается последним выданным номером запроса
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *fetch_booked_slots.Request) (*fetch_booked_slots.Response, error)
	IsLatest(seq uint64) bool
}

// BookingSubmitter интерфейс пакетной отправки бронирований
type BookingSubmitter interface {
	Execute(ctx context.Context, req *submit_booking.Request) (*submit_booking.Response, error)
}

// SessionProvider возвращает текущую сессию. Нулевой AuthContext - нет сессии
type SessionProvider interface {
	Current() domain.AuthContext
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
