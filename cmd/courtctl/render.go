package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-CourtBooking/internal/usecase/submit_booking"
)

// stateMarks отметки состояний в сетке
var stateMarks = map[domain.SlotState]string{
	domain.SlotAvailable: "[ ]",
	domain.SlotSelected:  "[x]",
	domain.SlotBooked:    "[#]",
	domain.SlotPast:      " - ",
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// renderGrid печатает сетку слотов площадки на дату
func renderGrid(w io.Writer, field domain.FieldType, date time.Time, grid []domain.SlotView, degraded bool) error {
	fmt.Fprintf(w, "%s, %s\n", field.DisplayName(), date.Format("Monday 2006-01-02"))
	if degraded {
		fmt.Fprintln(w, "warning: failed to load bookings, availability may be incomplete")
	}

	tw := newTabWriter(w)
	for _, v := range grid {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", stateMarks[v.State], v.Slot, v.State)
	}
	return tw.Flush()
}

// renderBookings печатает таблицу бронирований; WHEN отмечает прошедшие и предстоящие слоты
func renderBookings(w io.Writer, bookings []bookingapi.Booking, now time.Time, loc *time.Location) error {
	if len(bookings) == 0 {
		_, err := fmt.Fprintln(w, "No bookings")
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tDATE\tSLOT\tFIELD\tUSER\tSTATUS\tWHEN")
	for _, b := range bookings {
		when := "upcoming"
		if bookingStarted(b, now, loc) {
			when = "past"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", b.ID, b.Date, b.TimeSlot, b.FieldType, b.User, b.Status, when)
	}
	return tw.Flush()
}

// renderBooked печатает слоты, созданные при отправке
func renderBooked(w io.Writer, booked []submit_booking.BookedSlot) error {
	tw := newTabWriter(w)
	for _, b := range booked {
		fmt.Fprintf(tw, "  #%d\t%s\t%s\n", b.BookingID, b.Slot, b.Status)
	}
	return tw.Flush()
}

func renderSession(w io.Writer, auth domain.AuthContext, loc *time.Location) error {
	expires := "never"
	if !auth.ExpiresAt.IsZero() {
		expires = auth.ExpiresAt.In(loc).Format(time.RFC3339)
	}

	tw := newTabWriter(w)
	fmt.Fprintf(tw, "User:\t%s\n", auth.UserID)
	fmt.Fprintf(tw, "Role:\t%s\n", auth.Role)
	fmt.Fprintf(tw, "Expires:\t%s\n", expires)
	return tw.Flush()
}
