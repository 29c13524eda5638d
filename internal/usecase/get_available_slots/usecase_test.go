package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

var wib = time.FixedZone("WIB", 7*60*60)

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
	filters  []domain.BookingsFilter
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filters = append(f.filters, filter)
	return f.bookings, f.err
}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

func newUseCase(repo *fakeRepo) *UseCase {
	uc := NewUseCase(repo, wib, logger.NewNop())
	// четверг 15.10.2026, 10:30 WIB
	uc.timeProvider = fixedTime{now: time.Date(2026, 10, 15, 10, 30, 0, 0, wib)}
	return uc
}

func TestExecute_Today(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		{ID: 1, TimeSlot: "13:00 - 14:00", Status: domain.StatusApproved},
		{ID: 2, TimeSlot: "14:00 - 15:00", Status: domain.StatusPending},
		{ID: 3, TimeSlot: "15:00 - 16:00", Status: domain.StatusRejected},
	}}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		FieldType: domain.FieldFutsal,
		Date:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 12)
	assert.False(t, resp.Closed)
	assert.Equal(t, wib, resp.Date.Location())

	states := map[domain.Slot]domain.SlotState{}
	for _, s := range resp.Slots {
		states[s.Slot] = s.State
	}
	assert.Equal(t, domain.SlotPast, states["09:00 - 10:00"])
	assert.Equal(t, domain.SlotPast, states["10:00 - 11:00"])
	assert.Equal(t, domain.SlotAvailable, states["11:00 - 12:00"])
	assert.Equal(t, domain.SlotBooked, states["13:00 - 14:00"])
	assert.Equal(t, domain.SlotBooked, states["14:00 - 15:00"])
	assert.Equal(t, domain.SlotAvailable, states["15:00 - 16:00"], "rejected frees the slot")
	assert.Equal(t, 8, resp.AvailableCount())

	require.Len(t, repo.filters, 1)
	assert.Equal(t, domain.FieldFutsal, *repo.filters[0].FieldType)
	assert.Equal(t, "2026-10-15", repo.filters[0].Date.Format(domain.DateFormat))
}

func TestExecute_WeekendClosed(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		FieldType: domain.FieldBasket,
		Date:      time.Date(2026, 10, 17, 0, 0, 0, 0, wib),
	})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
	assert.Empty(t, repo.filters)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		repoErr error
		wantErr error
	}{
		{
			name:    "unknown field",
			req:     &Request{FieldType: "tennis", Date: time.Date(2026, 10, 19, 0, 0, 0, 0, wib)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     &Request{FieldType: domain.FieldBasket},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "past date",
			req:     &Request{FieldType: domain.FieldBasket, Date: time.Date(2026, 10, 14, 0, 0, 0, 0, wib)},
			wantErr: ErrDateInPast,
		},
		{
			name:    "repository failure",
			req:     &Request{FieldType: domain.FieldBasket, Date: time.Date(2026, 10, 19, 0, 0, 0, 0, wib)},
			repoErr: errors.New("connection refused"),
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(&fakeRepo{err: tt.repoErr})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
