package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-CourtBooking/internal/session"
)

var wib = time.FixedZone("WIB", 7*60*60)

func TestRenderGrid(t *testing.T) {
	date := time.Date(2026, 10, 15, 0, 0, 0, 0, wib)
	now := time.Date(2026, 10, 15, 10, 30, 0, 0, wib)

	selection := domain.NewSelectionSet()
	selection.Toggle("12:00 - 13:00")
	grid := domain.ClassifyGrid(domain.NewBookedSlotSet("11:00 - 12:00"), selection, date, now)

	var buf bytes.Buffer
	require.NoError(t, renderGrid(&buf, domain.FieldBasket, date, grid, true))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 14)
	assert.Equal(t, "Basketball court, Thursday 2026-10-15", lines[0])
	assert.Contains(t, lines[1], "failed to load bookings")

	assert.Contains(t, lines[2], "09:00 - 10:00")
	assert.Contains(t, lines[2], "past")
	assert.Contains(t, lines[3], "past", "10:00 already started")
	assert.Contains(t, lines[4], "[#]")
	assert.Contains(t, lines[5], "[x]")
	assert.Contains(t, lines[6], "[ ]")
	assert.Contains(t, lines[13], "20:00 - 21:00")
}

func TestRenderBookings(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 30, 0, 0, wib)

	var buf bytes.Buffer
	require.NoError(t, renderBookings(&buf, nil, now, wib))
	assert.Equal(t, "No bookings\n", buf.String())

	buf.Reset()
	require.NoError(t, renderBookings(&buf, []bookingapi.Booking{
		{ID: 7, Date: "2026-10-19", TimeSlot: "09:00 - 10:00", FieldType: "futsal", User: "u1", Status: "pending"},
		{ID: 3, Date: "2026-10-15", TimeSlot: "10:00 - 11:00", FieldType: "basket", User: "u2", Status: "approved"},
	}, now, wib))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "DATE", "SLOT", "FIELD", "USER", "STATUS", "WHEN"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"7", "2026-10-19", "09:00", "-", "10:00", "futsal", "u1", "pending", "upcoming"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"3", "2026-10-15", "10:00", "-", "11:00", "basket", "u2", "approved", "past"}, strings.Fields(lines[2]))
}

func TestBookingStarted(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 30, 0, 0, wib)

	tests := []struct {
		name string
		date string
		slot string
		want bool
	}{
		{name: "yesterday", date: "2026-10-14", slot: "15:00 - 16:00", want: true},
		{name: "today, running", date: "2026-10-15", slot: "10:00 - 11:00", want: true},
		{name: "today, later", date: "2026-10-15", slot: "11:00 - 12:00", want: false},
		{name: "next week", date: "2026-10-19", slot: "09:00 - 10:00", want: false},
		{name: "unparsable date", date: "19.10.2026", slot: "09:00 - 10:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bookingapi.Booking{Date: tt.date, TimeSlot: tt.slot}
			assert.Equal(t, tt.want, bookingStarted(b, now, wib))
		})
	}
}

func TestUpcomingOnly(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 30, 0, 0, wib)

	got := upcomingOnly([]bookingapi.Booking{
		{ID: 1, Date: "2026-10-14", TimeSlot: "15:00 - 16:00"},
		{ID: 2, Date: "2026-10-15", TimeSlot: "10:00 - 11:00"},
		{ID: 3, Date: "2026-10-15", TimeSlot: "12:00 - 13:00"},
		{ID: 4, Date: "2026-10-19", TimeSlot: "09:00 - 10:00"},
	}, now, wib)

	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestRenderSession(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderSession(&buf, domain.AuthContext{UserID: "admin-1", Role: domain.RoleAdmin}, wib))

	out := buf.String()
	assert.Contains(t, out, "admin-1")
	assert.Contains(t, out, "admin")
	assert.Contains(t, out, "never")
}

func TestParseDate(t *testing.T) {
	// 23:30 UTC это уже 16 октября в WIB
	now := time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "2026-10-16"},
		{in: "today", want: "2026-10-16"},
		{in: "Tomorrow", want: "2026-10-17"},
		{in: "2026-10-19", want: "2026-10-19"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDate(tt.in, now, wib)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(domain.DateFormat))
			assert.Equal(t, wib, got.Location())
		})
	}

	_, err := parseDate("19.10.2026", now, wib)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestResolveSlot(t *testing.T) {
	slot, err := resolveSlot("09:00 - 10:00")
	require.NoError(t, err)
	assert.Equal(t, domain.Slot("09:00 - 10:00"), slot)

	slot, err = resolveSlot(" 14:00 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Slot("14:00 - 15:00"), slot)

	_, err = resolveSlot("21:00")
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)
}

func TestBookingIDArg(t *testing.T) {
	id, err := bookingIDArg([]string{"42"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, args := range [][]string{nil, {"1", "2"}, {"abc"}, {"0"}} {
		_, err := bookingIDArg(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestSessionError(t *testing.T) {
	assert.Contains(t, sessionError(session.ErrNoToken).Error(), "logged in")
	assert.ErrorIs(t, sessionError(session.ErrExpired), session.ErrExpired)

	other := errors.New("disk failure")
	assert.Equal(t, other, sessionError(other))
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "slot taken", errorText(&bookingapi.APIError{StatusCode: 409, Message: "slot taken"}))
	assert.Equal(t, "invalid token: run courtctl login TOKEN",
		errorText(&bookingapi.APIError{StatusCode: 401, Message: "invalid token"}))
}
