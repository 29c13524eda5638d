package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модель запроса сетки слотов
type Request struct {
	FieldType domain.FieldType // Площадка
	Date      time.Time        // Дата; берутся только год, месяц и день
}

// Response сетка слотов площадки на дату
type Response struct {
	FieldType domain.FieldType
	Date      time.Time // Полночь в часовом поясе площадки
	Closed    bool      // Выходной день: слотов нет
	Slots     []domain.SlotView
}

// AvailableCount количество свободных слотов
func (r *Response) AvailableCount() int {
	n := 0
	for _, s := range r.Slots {
		if s.State == domain.SlotAvailable {
			n++
		}
	}
	return n
}
