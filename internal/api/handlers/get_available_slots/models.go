package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CourtBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	FieldType string          `json:"field_type"`
	Date      string          `json:"date"`
	Closed    bool            `json:"closed"`
	Available int             `json:"available"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	TimeSlot string `json:"time_slot"`
	State    string `json:"state"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			TimeSlot: slot.Slot.String(),
			State:    slot.State.String(),
		}
	}

	return &AvailableSlotsResponse{
		FieldType: resp.FieldType.String(),
		Date:      resp.Date.Format(domain.DateFormat),
		Closed:    resp.Closed,
		Available: resp.AvailableCount(),
		Slots:     slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(fieldStr, dateStr string) (*getAvailableSlots.Request, error) {
	field, err := domain.ParseFieldType(fieldStr)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	return &getAvailableSlots.Request{
		FieldType: field,
		Date:      date,
	}, nil
}
