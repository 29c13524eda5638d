package fetch_booked_slots

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/bookingapi"
)

// UseCase use case получения занятых слотов площадки на дату
type UseCase struct {
	client       BookingAPIClient
	timeProvider TimeProvider
	logger       Logger

	// seq номер последнего выданного запроса; ответы с меньшим номером устарели
	seq atomic.Uint64
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client BookingAPIClient, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет одну попытку получить занятые слоты.
// Ошибки Booking API не возвращаются: они логируются, и результатом становится пустое множество
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FetchBookedSlots: validation failed: %v", err)
		return nil, err
	}

	date := req.Date.Format(domain.DateFormat)

	// 2. Без действующей сессии ничего не делаем
	if !req.Auth.IsValid(uc.timeProvider.Now()) {
		uc.logger.Info("FetchBookedSlots: no session, skipping field=%s, date=%s", req.FieldType, date)
		return &Response{
			FieldType: req.FieldType,
			Date:      req.Date,
			Skipped:   true,
		}, nil
	}

	// 3. Выдаем порядковый номер запроса
	seq := uc.seq.Add(1)

	uc.logger.Info("FetchBookedSlots: seq=%d, field=%s, date=%s", seq, req.FieldType, date)

	resp := &Response{
		FieldType: req.FieldType,
		Date:      req.Date,
		Booked:    domain.NewBookedSlotSet(),
		Sequence:  seq,
	}

	// 4. Запрашиваем бронирования площадки на дату
	bookings, err := uc.client.ListBookings(ctx, req.Auth.Token, bookingapi.ListFilter{
		FieldType: req.FieldType.String(),
		Date:      date,
	})
	if err != nil {
		uc.logger.Error("FetchBookedSlots: failed to fetch bookings seq=%d, field=%s, date=%s: %v",
			seq, req.FieldType, date, err)
		resp.Degraded = true
	} else {
		// 5. Оставляем только занимающие слот статусы
		for _, b := range bookings {
			if !domain.BookingStatus(b.Status).IsActive() {
				continue
			}
			resp.Booked[domain.Slot(b.TimeSlot)] = struct{}{}
		}
	}

	// 6. Проверяем, не выдан ли за это время более новый запрос
	resp.Stale = !uc.IsLatest(seq)
	if resp.Stale {
		uc.logger.Info("FetchBookedSlots: response seq=%d is stale, latest=%d", seq, uc.seq.Load())
		return resp, nil
	}

	uc.logger.Info("FetchBookedSlots: seq=%d, field=%s, date=%s, booked=%d",
		seq, req.FieldType, date, resp.Booked.Len())

	return resp, nil
}

// IsLatest returns true if seq is the most recently issued request number
func (uc *UseCase) IsLatest(seq uint64) bool {
	return uc.seq.Load() == seq
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if !req.FieldType.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrUnknownFieldType)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
