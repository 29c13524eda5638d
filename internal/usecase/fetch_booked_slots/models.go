package fetch_booked_slots

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Request модель запроса занятых слотов
type Request struct {
	Auth      domain.AuthContext // Сессия; без действующей сессии запрос не выполняется
	FieldType domain.FieldType   // Площадка
	Date      time.Time          // Дата (без времени)
}

// Response модель ответа со снимком занятых слотов
type Response struct {
	FieldType domain.FieldType
	Date      time.Time
	Booked    domain.BookedSlotSet // Слоты в статусах pending/approved
	Sequence  uint64               // Порядковый номер запроса
	Stale     bool                 // После этого запроса был выдан более новый, ответ надо отбросить
	Skipped   bool                 // Нет сессии: запрос не выполнялся, прежний снимок не трогать
	Degraded  bool                 // Ошибка Booking API: Booked пустой
}
