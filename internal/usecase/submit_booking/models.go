package submit_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модель запроса на пакетное бронирование
type Request struct {
	Auth      domain.AuthContext
	FieldType domain.FieldType
	Date      time.Time     // Дата бронирования (без времени)
	Slots     []domain.Slot // Выбранные слоты в порядке выбора
}

// BookedSlot слот, для которого сервер создал бронирование
type BookedSlot struct {
	Slot      domain.Slot
	BookingID int64
	Status    string
}

// Response модель ответа при полном успехе
type Response struct {
	FieldType domain.FieldType
	Date      time.Time
	Booked    []BookedSlot // В порядке выбора
}

// Count количество забронированных слотов
func (r *Response) Count() int {
	return len(r.Booked)
}
