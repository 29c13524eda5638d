package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/m04kA/SMC-CourtBooking/internal/config"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-CourtBooking/internal/session"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
)

// app общие зависимости команд
type app struct {
	cfg   *config.ClientConfig
	log   *logger.Logger
	store *session.Store
	loc   *time.Location
	out   io.Writer
	now   func() time.Time
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"slots":    {usage: "show the slot grid for a field and date", run: runSlots},
	"book":     {usage: "book one or more slots", run: runBook},
	"watch":    {usage: "re-render the slot grid periodically", run: runWatch},
	"bookings": {usage: "list bookings, approved by default (schedule)", run: runBookings},
	"mine":     {usage: "list your bookings", run: runMine},
	"pending":  {usage: "list bookings awaiting a decision (admin)", run: runPending},
	"approve":  {usage: "approve a pending booking by id (admin)", run: runDecision("approved")},
	"reject":   {usage: "reject a pending booking by id (admin)", run: runDecision("rejected")},
	"cancel":   {usage: "delete a booking by id", run: runCancel},
	"login":    {usage: "store a bearer token", run: runLogin},
	"logout":   {usage: "remove the stored token", run: runLogout},
	"whoami":   {usage: "show the current session", run: runWhoami},
}

func main() {
	flags := pflag.NewFlagSet("courtctl", pflag.ExitOnError)
	flags.SetInterspersed(false)
	configPath := flags.StringP("config", "c", "courtctl.toml", "path to config file")
	flags.Usage = func() { usage(flags) }
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) == 0 {
		usage(flags)
		os.Exit(2)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage(flags)
		os.Exit(2)
	}

	// Загружаем конфигурацию
	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Логи идут в stderr, stdout остается для вывода команд
	log, err := logger.NewWithOutput("stderr", cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	loc, err := cfg.Booking.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load timezone: %v\n", err)
		os.Exit(1)
	}

	a := &app{
		cfg:   cfg,
		log:   log,
		store: session.NewStore(cfg.Session.TokenFile, log),
		loc:   loc,
		out:   os.Stdout,
		now:   time.Now,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, a, args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorText(err))
		log.Close()
		os.Exit(1)
	}
}

func usage(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: courtctl [--config FILE] <command> [flags]\n\nCommands:\n")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", name, commands[name].usage)
	}

	fmt.Fprintf(os.Stderr, "\nGlobal flags:\n%s", flags.FlagUsages())
}

// newClient создает клиента Booking API; m может быть nil
func (a *app) newClient(m bookingapi.Metrics) *bookingapi.Client {
	timeout := time.Duration(a.cfg.API.Timeout) * time.Second
	return bookingapi.NewClient(a.cfg.API.BaseURL, timeout, a.log, m)
}

// token возвращает токен действующей сессии
func (a *app) token() (string, error) {
	auth, err := a.store.Load()
	if err != nil {
		return "", sessionError(err)
	}
	return auth.Token, nil
}

// errorText сообщение для пользователя. Ошибки Booking API уже содержат текст сервера
func errorText(err error) string {
	var apiErr *bookingapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return apiErr.Message + ": run courtctl login TOKEN"
	}
	return err.Error()
}
