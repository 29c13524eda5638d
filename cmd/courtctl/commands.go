package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/m04kA/SMC-CourtBooking/internal/board"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-CourtBooking/internal/session"
	"github.com/m04kA/SMC-CourtBooking/internal/usecase/fetch_booked_slots"
	"github.com/m04kA/SMC-CourtBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
)

// boardFlags флаги выбора площадки и даты, общие для slots, book и watch
type boardFlags struct {
	field string
	date  string
}

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet("courtctl "+name, pflag.ContinueOnError)
}

func (a *app) addBoardFlags(fs *pflag.FlagSet) *boardFlags {
	f := &boardFlags{}
	fs.StringVarP(&f.field, "field", "f", a.cfg.Booking.DefaultField, "field type (basket|futsal)")
	fs.StringVarP(&f.date, "date", "d", "today", "date as YYYY-MM-DD, today or tomorrow")
	return f
}

// openBoard собирает доску и выбирает в ней дату. m может быть nil
func (a *app) openBoard(ctx context.Context, f *boardFlags, rollback bool, m bookingapi.Metrics) (*board.Board, error) {
	field, err := domain.ParseFieldType(f.field)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(f.date, a.now(), a.loc)
	if err != nil {
		return nil, err
	}

	client := a.newClient(m)
	resolver := fetch_booked_slots.NewUseCase(client, a.log)
	submitter := submit_booking.NewUseCase(client, rollback, a.log)
	b := board.New(resolver, submitter, a.store, field, a.loc, a.log)

	if err := b.ChangeDate(ctx, date); err != nil {
		return nil, err
	}
	return b, nil
}

func runSlots(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("slots")
	bf := a.addBoardFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := a.openBoard(ctx, bf, false, nil)
	if err != nil {
		return err
	}

	return renderGrid(a.out, b.Field(), b.Date(), b.Grid(), b.Degraded())
}

func runBook(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("book")
	bf := a.addBoardFlags(fs)
	slots := fs.StringArrayP("slot", "s", nil, `slot label such as "09:00 - 10:00" or its start time "09:00", repeatable`)
	rollback := fs.Bool("rollback", a.cfg.Booking.RollbackOnPartialFailure, "delete created bookings when part of the batch fails")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(*slots) == 0 {
		return errors.New("select at least one time slot with --slot")
	}

	b, err := a.openBoard(ctx, bf, *rollback, nil)
	if err != nil {
		return err
	}

	for _, raw := range *slots {
		slot, err := resolveSlot(raw)
		if err != nil {
			return err
		}
		if _, err := b.Toggle(slot); err != nil {
			return err
		}
	}

	res, err := b.Submit(ctx)
	if err != nil {
		var submitErr *submit_booking.SubmitError
		if errors.As(err, &submitErr) {
			if details := submitErr.Details(); details != submitErr.Message {
				fmt.Fprintf(a.out, "Details: %s\n", details)
			}
		}
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	if err := renderBooked(a.out, res.Booked); err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	return renderGrid(a.out, b.Field(), b.Date(), b.Grid(), b.Degraded())
}

func runWatch(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("watch")
	bf := a.addBoardFlags(fs)
	interval := fs.DurationP("interval", "i", time.Duration(a.cfg.Booking.WatchInterval)*time.Second, "refresh interval")
	serveMetrics := fs.Bool("metrics", a.cfg.Metrics.Enabled, "serve Prometheus metrics on metrics.addr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *interval <= 0 {
		return errors.New("--interval must be positive")
	}

	var clientMetrics bookingapi.Metrics
	if *serveMetrics {
		reg := prometheus.NewRegistry()
		clientMetrics = metrics.NewWithRegisterer(a.cfg.Metrics.ServiceName, reg)

		stopMetrics := a.startMetricsServer(reg)
		defer stopMetrics()
	}

	b, err := a.openBoard(ctx, bf, false, clientMetrics)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		fmt.Fprintf(a.out, "-- %s --\n", a.now().In(a.loc).Format("15:04:05"))
		if err := renderGrid(a.out, b.Field(), b.Date(), b.Grid(), b.Degraded()); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := b.Refresh(ctx); err != nil {
				a.log.Warn("watch: refresh failed: %v", err)
			}
		}
	}
}

// startMetricsServer поднимает listener для /metrics и возвращает функцию остановки
func (a *app) startMetricsServer(reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle(a.cfg.Metrics.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.log.Info("Metrics available at http://%s%s", a.cfg.Metrics.Addr, a.cfg.Metrics.Path)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Metrics server error: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			a.log.Error("Metrics server shutdown error: %v", err)
		}
	}
}

// listFlags фильтры списков бронирований. Пустые значения не ограничивают выборку
type listFlags struct {
	field    string
	date     string
	status   string
	upcoming bool
}

func addListFlags(fs *pflag.FlagSet, defaultStatus string) *listFlags {
	f := &listFlags{}
	fs.StringVarP(&f.field, "field", "f", "", "field type (basket|futsal), all fields if empty")
	fs.StringVarP(&f.date, "date", "d", "", "date as YYYY-MM-DD, today or tomorrow, all dates if empty")
	fs.StringVar(&f.status, "status", defaultStatus, "status (pending|approved|rejected), any if empty")
	fs.BoolVar(&f.upcoming, "upcoming", false, "hide bookings whose slot has already started")
	return f
}

// filter переводит флаги в фильтр Booking API
func (f *listFlags) filter(now time.Time, loc *time.Location) (bookingapi.ListFilter, error) {
	filter := bookingapi.ListFilter{Status: f.status}

	if f.field != "" {
		field, err := domain.ParseFieldType(f.field)
		if err != nil {
			return filter, err
		}
		filter.FieldType = field.String()
	}

	if f.date != "" {
		date, err := parseDate(f.date, now, loc)
		if err != nil {
			return filter, err
		}
		filter.Date = date.Format(domain.DateFormat)
	}

	return filter, nil
}

// listBookings запрашивает бронирования и печатает их с отметкой прошедших
func (a *app) listBookings(ctx context.Context, f *listFlags, mine bool) error {
	now := a.now()

	filter, err := f.filter(now, a.loc)
	if err != nil {
		return err
	}
	filter.Mine = mine

	token, err := a.token()
	if err != nil {
		return err
	}

	bookings, err := a.newClient(nil).ListBookings(ctx, token, filter)
	if err != nil {
		return err
	}

	if f.upcoming {
		bookings = upcomingOnly(bookings, now, a.loc)
	}

	return renderBookings(a.out, bookings, now, a.loc)
}

// runBookings общий список бронирований, по умолчанию одобренных: расписание площадок
func runBookings(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("bookings")
	lf := addListFlags(fs, string(domain.StatusApproved))
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.listBookings(ctx, lf, false)
}

func runMine(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("mine")
	lf := addListFlags(fs, "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.listBookings(ctx, lf, true)
}

func runPending(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("pending").Parse(args); err != nil {
		return err
	}

	token, err := a.token()
	if err != nil {
		return err
	}

	bookings, err := a.newClient(nil).ListPendingBookings(ctx, token)
	if err != nil {
		return err
	}

	return renderBookings(a.out, bookings, a.now(), a.loc)
}

func runDecision(status string) func(ctx context.Context, a *app, args []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		id, err := bookingIDArg(args)
		if err != nil {
			return err
		}

		token, err := a.token()
		if err != nil {
			return err
		}

		booking, err := a.newClient(nil).UpdateBookingStatus(ctx, token, id, status)
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Booking %d is now %s\n", booking.ID, booking.Status)
		return nil
	}
}

func runCancel(ctx context.Context, a *app, args []string) error {
	id, err := bookingIDArg(args)
	if err != nil {
		return err
	}

	token, err := a.token()
	if err != nil {
		return err
	}

	if err := a.newClient(nil).DeleteBooking(ctx, token, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Booking %d deleted\n", id)
	return nil
}

func runLogin(_ context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: courtctl login TOKEN")
	}

	auth, err := a.store.Save(args[0])
	if err != nil {
		return err
	}

	if !auth.IsValid(a.now()) {
		a.log.Warn("login: stored token is already expired")
	}
	return renderSession(a.out, auth, a.loc)
}

func runLogout(_ context.Context, a *app, _ []string) error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func runWhoami(_ context.Context, a *app, _ []string) error {
	auth, err := a.store.Load()
	if err != nil {
		return sessionError(err)
	}
	return renderSession(a.out, auth, a.loc)
}

// sessionError переводит ошибки сессии в подсказку для пользователя
func sessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrNoToken):
		return errors.New("you must be logged in first: run courtctl login TOKEN")
	case errors.Is(err, session.ErrExpired):
		return fmt.Errorf("session expired, log in again: %w", err)
	default:
		return err
	}
}

func bookingIDArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one booking id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking id %q", args[0])
	}
	return id, nil
}

// parseDate принимает YYYY-MM-DD, today или tomorrow; даты считаются в loc
func parseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	date, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return date, nil
}

// bookingStarted сообщает, что слот бронирования уже начался к моменту now.
// Нераспознанные дата или слот считаются не начавшимися
func bookingStarted(b bookingapi.Booking, now time.Time, loc *time.Location) bool {
	date, err := time.ParseInLocation(domain.DateFormat, b.Date, loc)
	if err != nil {
		return false
	}
	if domain.IsDateInPast(date, now) {
		return true
	}
	return domain.IsPastSlot(domain.Slot(b.TimeSlot), date, now)
}

// upcomingOnly оставляет бронирования, слот которых еще не начался
func upcomingOnly(bookings []bookingapi.Booking, now time.Time, loc *time.Location) []bookingapi.Booking {
	out := make([]bookingapi.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !bookingStarted(b, now, loc) {
			out = append(out, b)
		}
	}
	return out
}

// resolveSlot принимает полную метку или только время начала
func resolveSlot(raw string) (domain.Slot, error) {
	raw = strings.TrimSpace(raw)
	if slot, err := domain.ParseSlot(raw); err == nil {
		return slot, nil
	}
	for _, slot := range domain.Catalog() {
		if strings.HasPrefix(slot.String(), raw+" ") {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidSlot, raw)
}
