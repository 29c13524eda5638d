package submit_booking

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/bookingapi"
)

// UseCase use case пакетного бронирования слотов.
// Каждый слот отправляется отдельным запросом, все запросы идут параллельно и независимо
type UseCase struct {
	client       BookingAPIClient
	rollback     bool
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// rollback: при частичной неудаче удалить уже созданные в этом пакете бронирования
func NewUseCase(client BookingAPIClient, rollback bool, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		rollback:     rollback,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// outcome результат отправки одного слота
type outcome struct {
	slot    domain.Slot
	created *bookingapi.Booking
	err     error
}

// Execute отправляет все слоты и ждет завершения каждого запроса.
// Если хотя бы один запрос не прошел, возвращается *SubmitError с сообщением первой ошибки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация: при ошибке ни одного сетевого вызова
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	date := req.Date.Format(domain.DateFormat)
	uc.logger.Info("SubmitBooking: user=%s, field=%s, date=%s, slots=%d",
		req.Auth.UserID, req.FieldType, date, len(req.Slots))

	// 2. Параллельно создаем бронирование для каждого слота.
	// errgroup без контекста: неудача одного запроса не отменяет остальные
	results := make([]outcome, len(req.Slots))
	var g errgroup.Group

	for i, slot := range req.Slots {
		g.Go(func() error {
			created, err := uc.client.CreateBooking(ctx, req.Auth.Token, bookingapi.CreateBookingRequest{
				FieldType: req.FieldType.String(),
				Date:      date,
				TimeSlot:  slot.String(),
			})
			results[i] = outcome{slot: slot, created: created, err: err}
			if err != nil {
				uc.logger.Warn("SubmitBooking: slot %q failed: %v", slot, err)
			}
			return err
		})
	}

	// Wait возвращает первую по времени ошибку
	firstErr := g.Wait()

	booked := make([]BookedSlot, 0, len(results))
	failed := make([]domain.Slot, 0)
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r.slot)
			continue
		}
		bs := BookedSlot{Slot: r.slot}
		if r.created != nil {
			bs.BookingID = r.created.ID
			bs.Status = r.created.Status
		}
		booked = append(booked, bs)
	}

	// 3. Полный успех
	if firstErr == nil {
		uc.logger.Info("SubmitBooking: booked %d slots for user=%s, field=%s, date=%s",
			len(booked), req.Auth.UserID, req.FieldType, date)
		return &Response{
			FieldType: req.FieldType,
			Date:      req.Date,
			Booked:    booked,
		}, nil
	}

	// 4. Хотя бы одна ошибка: весь пакет считается неуспешным
	submitErr := &SubmitError{
		Message: userMessage(firstErr),
		Booked:  booked,
		Failed:  failed,
		Err:     firstErr,
	}

	if len(booked) > 0 {
		uc.logger.Warn("SubmitBooking: partial failure, %d of %d slots persisted on server",
			len(booked), len(req.Slots))
		if uc.rollback {
			submitErr.RolledBack, submitErr.RollbackFailed = uc.rollbackBooked(ctx, req.Auth.Token, booked)
		}
	}

	uc.logger.Error("SubmitBooking: %s", submitErr.Details())
	return nil, submitErr
}

// rollbackBooked удаляет созданные в пакете бронирования (компенсирующие запросы)
func (uc *UseCase) rollbackBooked(ctx context.Context, token string, booked []BookedSlot) (rolledBack, failed []domain.Slot) {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)

	for _, b := range booked {
		if b.BookingID == 0 {
			mu.Lock()
			failed = append(failed, b.Slot)
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			err := uc.client.DeleteBooking(ctx, token, b.BookingID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				uc.logger.Error("SubmitBooking: rollback of booking id=%d (%s) failed: %v", b.BookingID, b.Slot, err)
				failed = append(failed, b.Slot)
				return nil
			}
			rolledBack = append(rolledBack, b.Slot)
			return nil
		})
	}

	_ = g.Wait()

	return sortByCatalog(rolledBack), sortByCatalog(failed)
}

// userMessage возвращает сообщение, которое можно показать пользователю
func userMessage(err error) string {
	var apiErr *bookingapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == nil || err.Error() == "" {
		return defaultFailureMessage
	}
	return err.Error()
}

func sortByCatalog(slots []domain.Slot) []domain.Slot {
	if len(slots) == 0 {
		return nil
	}
	return domain.NewBookedSlotSet(slots...).Sorted()
}
