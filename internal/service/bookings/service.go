package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями площадок
type Service struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	metrics      Metrics
	loc          *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// loc часовой пояс площадки: в нем считаются даты и уже начавшиеся слоты
func NewService(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics Metrics,
	loc *time.Location,
	logger Logger,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		metrics:      metrics,
		loc:          loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create бронирует один слот. Новое бронирование получает статус pending
func (s *Service) Create(ctx context.Context, auth domain.AuthContext, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Create: user=%s, field=%s, date=%s, slot=%s", auth.UserID, req.FieldType, req.Date, req.TimeSlot)

	// 1. Валидация входных данных
	field, date, slot, err := s.validateCreate(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for user=%s: %v", auth.UserID, err)
		return nil, err
	}

	// 2. Создаем бронирование; занятость слота проверяет уникальный индекс
	booking, err := s.bookingRepo.Create(ctx, &domain.Booking{
		UserID:    auth.UserID,
		FieldType: field,
		Date:      date,
		TimeSlot:  slot,
		Status:    domain.StatusPending,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			s.logger.Warn("Create: slot %s on %s (%s) is taken", slot, req.Date, field)
			return nil, ErrSlotTaken
		}
		s.logger.Error("Create: repository error for user=%s: %v", auth.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	// 3. Метрики и событие
	s.metrics.BookingCreated(field.String())
	s.publish(ctx, events.ActionCreated, booking, auth.UserID)

	s.logger.Info("Create: booking id=%d created for user=%s", booking.ID, auth.UserID)
	return models.FromDomainBooking(booking), nil
}

// List возвращает бронирования по фильтрам. Доступно любому авторизованному пользователю:
// по этому списку клиенты строят сетку занятых слотов. С Mine выборка ограничена
// бронированиями вызывающего
func (s *Service) List(ctx context.Context, auth domain.AuthContext, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := s.toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter from user=%s: %v", auth.UserID, err)
		return nil, err
	}

	if req.Mine {
		userID := auth.UserID
		filter.UserID = &userID
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: user=%s, field=%s, date=%s, status=%s, mine=%t, count=%d",
		auth.UserID, req.FieldType, req.Date, req.Status, req.Mine, len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetByID возвращает бронирование владельцу или администратору
func (s *Service) GetByID(ctx context.Context, auth domain.AuthContext, id int64) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !booking.IsOwnedBy(auth.UserID) && !auth.IsAdmin() {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", auth.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListPending возвращает заявки, ожидающие решения администратора
func (s *Service) ListPending(ctx context.Context, auth domain.AuthContext) (*models.BookingListResponse, error) {
	if !auth.IsAdmin() {
		s.logger.Warn("ListPending: access denied for user=%s", auth.UserID)
		return nil, ErrAccessDenied
	}

	status := domain.StatusPending
	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{Status: &status})
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus одобряет или отклоняет заявку. Только для администратора и только из статуса pending
func (s *Service) UpdateStatus(ctx context.Context, auth domain.AuthContext, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d -> %s by user=%s", id, req.Status, auth.UserID)

	if !auth.IsAdmin() {
		s.logger.Warn("UpdateStatus: access denied for user=%s", auth.UserID)
		return nil, ErrAccessDenied
	}

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil || status == domain.StatusPending {
		return nil, ErrInvalidStatus
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanChangeStatus() {
		s.logger.Warn("UpdateStatus: booking id=%d is already %s", id, booking.Status)
		return nil, ErrStatusNotPending
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusPending, status)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return nil, ErrStatusNotPending
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, events.ActionStatusChanged, updated, auth.UserID)

	s.logger.Info("UpdateStatus: booking id=%d is now %s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование. Разрешено владельцу и администратору
func (s *Service) Delete(ctx context.Context, auth domain.AuthContext, id int64) error {
	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if !booking.IsOwnedBy(auth.UserID) && !auth.IsAdmin() {
		s.logger.Warn("Delete: access denied for user=%s to booking id=%d", auth.UserID, id)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, events.ActionDeleted, booking, auth.UserID)

	s.logger.Info("Delete: booking id=%d deleted by user=%s", id, auth.UserID)
	return nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// validateCreate проверяет площадку, дату и слот в часовом поясе площадки
func (s *Service) validateCreate(req *models.CreateBookingRequest) (domain.FieldType, time.Time, domain.Slot, error) {
	field, err := domain.ParseFieldType(req.FieldType)
	if err != nil {
		return "", time.Time{}, "", ErrInvalidField
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, s.loc)
	if err != nil {
		return "", time.Time{}, "", ErrInvalidDate
	}

	if domain.IsWeekend(date) {
		return "", time.Time{}, "", ErrWeekend
	}

	slot, err := domain.ParseSlot(req.TimeSlot)
	if err != nil {
		return "", time.Time{}, "", ErrInvalidSlot
	}

	now := s.timeProvider.Now()
	if domain.IsDateInPast(date, now) || domain.IsPastSlot(slot, date, now) {
		return "", time.Time{}, "", ErrSlotInPast
	}

	return field, date, slot, nil
}

func (s *Service) toDomainFilter(req *models.ListBookingsRequest) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	if req.FieldType != "" {
		field, err := domain.ParseFieldType(req.FieldType)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.FieldType = &field
	}

	if req.Date != "" {
		date, err := time.ParseInLocation(domain.DateFormat, req.Date, s.loc)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, ErrInvalidDate)
		}
		filter.Date = &date
	}

	if req.Status != "" {
		status, err := domain.ParseBookingStatus(req.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	return filter, nil
}

// publish отправляет событие. Ошибка брокера не отменяет уже выполненную операцию
func (s *Service) publish(ctx context.Context, action string, booking *domain.Booking, actor string) {
	event := events.NewEvent(action, booking, actor, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventPublishFailed()
		s.logger.Error("failed to publish %s event for booking id=%d: %v", event.Topic, booking.ID, err)
	}
}
