package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// UseCase use case для получения сетки слотов площадки на дату
type UseCase struct {
	bookingRepo  BookingRepository
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. loc часовой пояс площадки
func NewUseCase(bookingRepo BookingRepository, loc *time.Location, logger Logger) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим дату к полуночи в часовом поясе площадки
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.loc)
	dateStr := date.Format(domain.DateFormat)
	now := uc.timeProvider.Now()

	uc.logger.Info("GetAvailableSlots: field=%s, date=%s", req.FieldType, dateStr)

	// 3. Прошедшие даты не показываем
	if domain.IsDateInPast(date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", dateStr)
		return nil, ErrDateInPast
	}

	resp := &Response{
		FieldType: req.FieldType,
		Date:      date,
		Slots:     []domain.SlotView{},
	}

	// 4. В выходные площадка закрыта
	if domain.IsWeekend(date) {
		uc.logger.Info("GetAvailableSlots: facility is closed on %s", dateStr)
		resp.Closed = true
		return resp, nil
	}

	// 5. Получаем бронирования площадки на дату
	field := req.FieldType
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		FieldType: &field,
		Date:      &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Слот занимают только pending и approved
	booked := domain.NewBookedSlotSet()
	for _, b := range bookings {
		if b.IsActive() {
			booked[b.TimeSlot] = struct{}{}
		}
	}

	// 7. Классифицируем каталог
	resp.Slots = domain.ClassifyGrid(booked, domain.NewSelectionSet(), date, now)

	uc.logger.Info("GetAvailableSlots: field=%s, date=%s, available=%d of %d",
		req.FieldType, dateStr, resp.AvailableCount(), len(resp.Slots))

	return resp, nil
}
