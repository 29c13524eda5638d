package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

// fakeRepo хранилище в памяти с тем же ограничением уникальности активного слота
type fakeRepo struct {
	nextID   int64
	bookings map[int64]*domain.Booking
	filters  []domain.BookingsFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[int64]*domain.Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	for _, existing := range r.bookings {
		if existing.IsActive() && existing.FieldType == b.FieldType &&
			existing.Date.Equal(b.Date) && existing.TimeSlot == b.TimeSlot {
			return nil, bookingRepo.ErrSlotTaken
		}
	}
	r.nextID++
	b.ID = r.nextID
	copied := *b
	r.bookings[b.ID] = &copied
	return b, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.filters = append(r.filters, filter)
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return nil, bookingRepo.ErrStatusConflict
	}
	b.Status = to
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type fakePublisher struct {
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return p.err
}

type countingMetrics struct {
	created      map[string]int
	publishFails int
}

func (m *countingMetrics) BookingCreated(field string) { m.created[field]++ }

func (m *countingMetrics) EventPublishFailed() { m.publishFails++ }

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

var (
	wib   = time.FixedZone("WIB", 7*60*60)
	now   = time.Date(2026, 10, 15, 10, 30, 0, 0, wib)
	user  = domain.AuthContext{UserID: "u1", Role: domain.RoleUser, Token: "t"}
	other = domain.AuthContext{UserID: "u2", Role: domain.RoleUser, Token: "t"}
	admin = domain.AuthContext{UserID: "a1", Role: domain.RoleAdmin, Token: "t"}
)

type fixture struct {
	svc       *Service
	repo      *fakeRepo
	publisher *fakePublisher
	metrics   *countingMetrics
}

func newFixture() *fixture {
	f := &fixture{
		repo:      newFakeRepo(),
		publisher: &fakePublisher{},
		metrics:   &countingMetrics{created: map[string]int{}},
	}
	f.svc = NewService(f.repo, f.publisher, f.metrics, wib, logger.NewNop())
	f.svc.timeProvider = fixedTime{now: now}
	return f
}

func createReq(date, slot string) *models.CreateBookingRequest {
	return &models.CreateBookingRequest{FieldType: "basket", Date: date, TimeSlot: slot}
}

func TestCreate(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2026-10-19", resp.Date)
	assert.Equal(t, "u1", resp.User)
	assert.Equal(t, 1, f.metrics.created["basket"])

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "booking.created", f.publisher.events[0].Topic)
}

func TestCreate_SlotTaken(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), other, createReq("2026-10-19", "09:00 - 10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// другая площадка - другой слот
	futsal := createReq("2026-10-19", "09:00 - 10:00")
	futsal.FieldType = "futsal"
	_, err = f.svc.Create(context.Background(), other, futsal)
	assert.NoError(t, err)
}

func TestCreate_RejectedSlotCanBeRebooked(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), admin, created.ID, &models.UpdateStatusRequest{Status: "rejected"})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), other, createReq("2026-10-19", "09:00 - 10:00"))
	assert.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreateBookingRequest
		wantErr error
	}{
		{name: "unknown field", req: &models.CreateBookingRequest{FieldType: "tennis", Date: "2026-10-19", TimeSlot: "09:00 - 10:00"}, wantErr: ErrInvalidField},
		{name: "bad date", req: createReq("19.10.2026", "09:00 - 10:00"), wantErr: ErrInvalidDate},
		{name: "saturday", req: createReq("2026-10-17", "09:00 - 10:00"), wantErr: ErrWeekend},
		{name: "sunday", req: createReq("2026-10-18", "09:00 - 10:00"), wantErr: ErrWeekend},
		{name: "unknown slot", req: createReq("2026-10-19", "08:00 - 09:00"), wantErr: ErrInvalidSlot},
		{name: "started today", req: createReq("2026-10-15", "10:00 - 11:00"), wantErr: ErrSlotInPast},
		{name: "yesterday", req: createReq("2026-10-14", "15:00 - 16:00"), wantErr: ErrSlotInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Create(context.Background(), user, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.repo.bookings)
		})
	}
}

func TestCreate_LaterSlotTodayAllowed(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), user, createReq("2026-10-15", "11:00 - 12:00"))
	assert.NoError(t, err)
}

func TestList_Filters(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), user, &models.ListBookingsRequest{FieldType: "Basketball", Date: "2026-10-19", Status: "approved"})
	require.NoError(t, err)

	require.Len(t, f.repo.filters, 1)
	filter := f.repo.filters[0]
	require.NotNil(t, filter.FieldType)
	assert.Equal(t, domain.FieldBasket, *filter.FieldType)
	require.NotNil(t, filter.Date)
	assert.Equal(t, "2026-10-19", filter.Date.Format(domain.DateFormat))
	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.StatusApproved, *filter.Status)

	_, err = f.svc.List(context.Background(), user, &models.ListBookingsRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_MineRestrictsToCaller(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), other, createReq("2026-10-19", "10:00 - 11:00"))
	require.NoError(t, err)

	resp, err := f.svc.List(context.Background(), user, &models.ListBookingsRequest{Mine: true})
	require.NoError(t, err)

	require.Len(t, f.repo.filters, 1)
	require.NotNil(t, f.repo.filters[0].UserID)
	assert.Equal(t, "u1", *f.repo.filters[0].UserID)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "u1", resp.Bookings[0].User)

	// без Mine выборка не ограничена пользователем
	resp, err = f.svc.List(context.Background(), user, &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Nil(t, f.repo.filters[1].UserID)
	assert.Len(t, resp.Bookings, 2)
}

func TestListPending_AdminOnly(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)

	_, err = f.svc.ListPending(context.Background(), user)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.ListPending(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), user, created.ID, &models.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.UpdateStatus(context.Background(), admin, created.ID, &models.UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(context.Background(), admin, 999, &models.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	updated, err := f.svc.UpdateStatus(context.Background(), admin, created.ID, &models.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)

	_, err = f.svc.UpdateStatus(context.Background(), admin, created.ID, &models.UpdateStatusRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrStatusNotPending)

	assert.Equal(t, "booking.status_changed", f.publisher.events[len(f.publisher.events)-1].Topic)
}

func TestDelete_OwnerOrAdmin(t *testing.T) {
	f := newFixture()
	first, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)
	second, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "10:00 - 11:00"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), other, first.ID), ErrAccessDenied)
	assert.NoError(t, f.svc.Delete(context.Background(), user, first.ID))
	assert.NoError(t, f.svc.Delete(context.Background(), admin, second.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), user, first.ID), ErrBookingNotFound)

	assert.Empty(t, f.repo.bookings)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.metrics.publishFails)
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture()
	created, err := f.svc.Create(context.Background(), user, createReq("2026-10-19", "09:00 - 10:00"))
	require.NoError(t, err)

	got, err := f.svc.GetByID(context.Background(), user, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00 - 10:00", got.TimeSlot)

	_, err = f.svc.GetByID(context.Background(), other, created.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), admin, created.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), admin, 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
